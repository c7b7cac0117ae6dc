package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock InvoiceRepository ---

type mockInvoiceRepo struct {
	invoices map[uint]*models.Invoice
	payments []models.Payment
	statuses []models.InvoiceStatus
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{invoices: map[uint]*models.Invoice{}}
}

func (m *mockInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	inv.ID = uint(len(m.invoices) + 1)
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *mockInvoiceRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Invoice, error) {
	return m.FindByID(ctx, id)
}

func (m *mockInvoiceRepo) FindAll(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range m.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

func (m *mockInvoiceRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.InvoiceStatus) error {
	m.invoices[id].Status = status
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *mockInvoiceRepo) AddPayment(ctx context.Context, tx *gorm.DB, p *models.Payment) error {
	p.ID = uint(len(m.payments) + 1)
	m.payments = append(m.payments, *p)
	return nil
}

func (m *mockInvoiceRepo) FindPayments(ctx context.Context, tx *gorm.DB, invoiceID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range m.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newInvoiceFixture() (*mockInvoiceRepo, *store, InvoiceService) {
	repo := newMockInvoiceRepo()
	db := newStore()
	db.bookings[7] = &models.Booking{ID: 7, CustomerName: "Mali", CustomerEmail: "mali@example.com", TotalPrice: 1500, Status: models.StatusConfirmed}
	db.bookings[8] = &models.Booking{ID: 8, TotalPrice: 900, Status: models.StatusCancelled}
	return repo, db, NewInvoiceService(&fakeTx{}, repo, fakeBookingRepo{db})
}

func TestCreateInvoice(t *testing.T) {
	_, _, svc := newInvoiceFixture()
	ctx := context.Background()
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	inv, err := svc.CreateInvoice(ctx, 7, due)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
	assert.Len(t, inv.Number, 12)
	assert.Equal(t, 1500.0, inv.Amount)
	assert.Equal(t, models.InvoiceDraft, inv.Status)
	assert.Equal(t, "mali@example.com", inv.CustomerEmail)

	_, err = svc.CreateInvoice(ctx, 8, due)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateInvoice(ctx, 99, due)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = svc.CreateInvoice(ctx, 7, time.Time{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordPayment_MarksPaidWhenCovered(t *testing.T) {
	repo, _, svc := newInvoiceFixture()
	ctx := context.Background()
	inv, err := svc.CreateInvoice(ctx, 7, time.Now())
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: 1000, Method: "transfer"})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceDraft, repo.invoices[inv.ID].Status)

	_, err = svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: 600})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: 500, Method: "card"})
	require.NoError(t, err)
	assert.False(t, p.PaidAt.IsZero())
	assert.Equal(t, models.InvoicePaid, repo.invoices[inv.ID].Status)

	_, err = svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: 1})
	assert.ErrorIs(t, err, ErrValidation)

	payments, err := svc.ListPayments(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestRecordPayment_Rejections(t *testing.T) {
	_, _, svc := newInvoiceFixture()
	ctx := context.Background()
	inv, err := svc.CreateInvoice(ctx, 7, time.Now())
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: 0})
	assert.ErrorIs(t, err, ErrValidation)

	// Rounds to 0.00.
	_, err = svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: 0.004})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordPayment(ctx, 99, PaymentInput{Amount: 10})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = svc.UpdateInvoiceStatus(ctx, inv.ID, models.InvoiceVoid)
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: 10})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateInvoiceStatus(t *testing.T) {
	repo, _, svc := newInvoiceFixture()
	ctx := context.Background()
	inv, err := svc.CreateInvoice(ctx, 7, time.Now())
	require.NoError(t, err)

	got, err := svc.UpdateInvoiceStatus(ctx, inv.ID, models.InvoiceSent)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceSent, got.Status)

	_, err = svc.UpdateInvoiceStatus(ctx, inv.ID, models.InvoiceSent)
	require.NoError(t, err)
	assert.Len(t, repo.statuses, 1)

	_, err = svc.UpdateInvoiceStatus(ctx, inv.ID, "lost")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateInvoiceStatus(ctx, inv.ID, models.InvoiceVoid)
	require.NoError(t, err)
	_, err = svc.UpdateInvoiceStatus(ctx, inv.ID, models.InvoiceDraft)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
