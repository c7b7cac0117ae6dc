package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/reporting"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentInput struct {
	Amount float64
	Method string
	PaidAt time.Time
}

type InvoiceService interface {
	CreateInvoice(ctx context.Context, bookingID uint, dueDate time.Time) (*models.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id uint, status models.InvoiceStatus) (*models.Invoice, error)
	GetInvoice(ctx context.Context, id uint) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID uint, in PaymentInput) (*models.Payment, error)
	ListPayments(ctx context.Context, invoiceID uint) ([]models.Payment, error)
}

type invoiceService struct {
	tx       repository.TxManager
	repo     repository.InvoiceRepository
	bookings repository.BookingRepository
	now      func() time.Time
}

func NewInvoiceService(tx repository.TxManager, repo repository.InvoiceRepository, bookings repository.BookingRepository) InvoiceService {
	return &invoiceService{tx: tx, repo: repo, bookings: bookings, now: time.Now}
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateInvoice bills the booking's total. Cancelled bookings are not billed.
func (s *invoiceService) CreateInvoice(ctx context.Context, bookingID uint, dueDate time.Time) (*models.Invoice, error) {
	if bookingID == 0 {
		return nil, invalid("bookingId is required")
	}
	if dueDate.IsZero() {
		return nil, invalid("dueDate is required")
	}
	booking, err := s.bookings.FindByID(ctx, nil, bookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, persistence("load booking", err)
	}
	if booking.Status == models.StatusCancelled {
		return nil, invalid("booking %d is cancelled", bookingID)
	}

	inv := &models.Invoice{
		Number:        newInvoiceNumber(),
		BookingID:     booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		Amount:        booking.TotalPrice,
		DueDate:       dueDate,
		Status:        models.InvoiceDraft,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, persistence("create invoice", err)
	}
	return inv, nil
}

// UpdateInvoiceStatus moves an invoice between statuses. A void invoice is
// final and a paid one can only be voided.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id uint, status models.InvoiceStatus) (*models.Invoice, error) {
	if !status.Valid() {
		return nil, invalid("status must be one of draft, sent, paid, void")
	}
	var result *models.Invoice
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		inv, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}
		result = inv
		if inv.Status == status {
			return nil
		}
		if inv.Status == models.InvoiceVoid || (inv.Status == models.InvoicePaid && status != models.InvoiceVoid) {
			return fmt.Errorf("%w: invoice %s to %s", ErrInvalidTransition, inv.Status, status)
		}
		if err := s.repo.UpdateStatus(ctx, tx, id, status); err != nil {
			return persistence("update invoice status", err)
		}
		inv.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *invoiceService) lock(ctx context.Context, tx *gorm.DB, id uint) (*models.Invoice, error) {
	inv, err := s.repo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvoiceNotFound
		}
		return nil, persistence("lock invoice", err)
	}
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvoiceNotFound
		}
		return nil, persistence("load invoice", err)
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list invoices", err)
	}
	return list, nil
}

// RecordPayment adds a payment and marks the invoice paid once the payments
// cover its amount. Payments beyond the outstanding balance are rejected.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID uint, in PaymentInput) (*models.Payment, error) {
	amount := reporting.RoundMoney(in.Amount)
	if amount <= 0 {
		return nil, invalid("amount must be at least 0.01")
	}
	if in.PaidAt.IsZero() {
		in.PaidAt = s.now().UTC()
	}

	var payment *models.Payment
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		inv, err := s.lock(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		switch inv.Status {
		case models.InvoiceVoid:
			return invalid("invoice %s is void", inv.Number)
		case models.InvoicePaid:
			return invalid("invoice %s is already paid", inv.Number)
		}

		existing, err := s.repo.FindPayments(ctx, tx, invoiceID)
		if err != nil {
			return persistence("list payments", err)
		}
		var paid float64
		for _, p := range existing {
			paid += p.Amount
		}
		outstanding := reporting.RoundMoney(inv.Amount - paid)
		if amount > outstanding {
			return invalid("amount exceeds the outstanding balance of %.2f", outstanding)
		}

		payment = &models.Payment{
			InvoiceID: invoiceID,
			Amount:    amount,
			Method:    strings.TrimSpace(in.Method),
			PaidAt:    in.PaidAt,
		}
		if err := s.repo.AddPayment(ctx, tx, payment); err != nil {
			return persistence("record payment", err)
		}
		if amount == outstanding {
			if err := s.repo.UpdateStatus(ctx, tx, invoiceID, models.InvoicePaid); err != nil {
				return persistence("update invoice status", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
	if _, err := s.GetInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.repo.FindPayments(ctx, nil, invoiceID)
	if err != nil {
		return nil, persistence("list payments", err)
	}
	return payments, nil
}
