// Package reporting derives financial rollups from booking rows. Every
// function is a pure single pass over the slice it is given; nothing is cached
// between calls, so the result always reflects exactly the bookings passed in.
//
// Revenue and cost figures only ever count confirmed bookings. Grouping by
// date uses the UTC calendar of Booking.EventDate.
package reporting

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
)

type Season struct {
	Key             string  `json:"key"`
	Year            int     `json:"year"`
	Quarter         int     `json:"quarter"`
	Revenue         float64 `json:"revenue"`
	FacilitatorCost float64 `json:"facilitatorCost"`
	Bookings        int     `json:"bookings"`
}

type CustomerValue struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	TotalSpent float64 `json:"totalSpent"`
	Bookings   int     `json:"bookings"`
}

type LifetimeValue struct {
	Customers     []CustomerValue `json:"customers"`
	CustomerCount int             `json:"customerCount"`
	AverageValue  float64         `json:"averageValue"`
}

type FacilitatorCost struct {
	FacilitatorID uint    `json:"facilitatorId"`
	Name          string  `json:"name"`
	TotalCost     float64 `json:"totalCost"`
	Bookings      int     `json:"bookings"`
}

type CustomerHistory struct {
	TotalCustomers     int     `json:"totalCustomers"`
	NewCustomers       int     `json:"newCustomers"`
	ReturningCustomers int     `json:"returningCustomers"`
	RetentionRate      float64 `json:"retentionRate"`
}

type MonthlyRevenue struct {
	Month           string  `json:"month"`
	Revenue         float64 `json:"revenue"`
	FacilitatorCost float64 `json:"facilitatorCost"`
	Bookings        int     `json:"bookings"`
}

type CampaignPerformance struct {
	TotalBookings     int     `json:"totalBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	CancellationRate  float64 `json:"cancellationRate"`
}

type Summary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	FacilitatorCosts    float64 `json:"facilitatorCosts"`
	GrossProfit         float64 `json:"grossProfit"`
	ConfirmedBookings   int     `json:"confirmedBookings"`
	OutstandingInvoices int     `json:"outstandingInvoices"`
}

type FinancialReport struct {
	Summary                 Summary             `json:"summary"`
	Seasons                 []Season            `json:"seasons"`
	CustomerLifetimeValue   LifetimeValue       `json:"customerLifetimeValue"`
	FacilitatorLifetimeCost []FacilitatorCost   `json:"facilitatorLifetimeCost"`
	CustomerHistory         CustomerHistory     `json:"customerHistory"`
	RevenueOverTime         []MonthlyRevenue    `json:"revenueOverTime"`
	CampaignPerformance     CampaignPerformance `json:"campaignPerformance"`
	GeneratedAt             time.Time           `json:"generatedAt"`
}

// RoundMoney rounds to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return RoundMoney(float64(part) / float64(total) * 100)
}

// Quarter returns the calendar quarter (1-4) of t in UTC.
func Quarter(t time.Time) int {
	return (int(t.UTC().Month())-1)/3 + 1
}

// MonthKey formats t as YYYY-MM in UTC. The key sorts chronologically.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func confirmed(b *models.Booking) bool { return b.Status == models.StatusConfirmed }

func TotalRevenue(bookings []models.Booking) float64 {
	var sum float64
	for i := range bookings {
		if confirmed(&bookings[i]) {
			sum += bookings[i].TotalPrice
		}
	}
	return RoundMoney(sum)
}

func FacilitatorCosts(bookings []models.Booking) float64 {
	var sum float64
	for i := range bookings {
		if confirmed(&bookings[i]) {
			sum += bookings[i].FacilitatorFee
		}
	}
	return RoundMoney(sum)
}

func GrossProfit(bookings []models.Booking) float64 {
	return RoundMoney(TotalRevenue(bookings) - FacilitatorCosts(bookings))
}

// SeasonBreakdown groups confirmed bookings by (year, quarter), oldest first.
func SeasonBreakdown(bookings []models.Booking) []Season {
	acc := make(map[string]*Season)
	for i := range bookings {
		b := &bookings[i]
		if !confirmed(b) {
			continue
		}
		year, q := b.EventDate.UTC().Year(), Quarter(b.EventDate)
		key := fmt.Sprintf("%d-Q%d", year, q)
		s, ok := acc[key]
		if !ok {
			s = &Season{Key: key, Year: year, Quarter: q}
			acc[key] = s
		}
		s.Revenue += b.TotalPrice
		s.FacilitatorCost += b.FacilitatorFee
		s.Bookings++
	}

	out := make([]Season, 0, len(acc))
	for _, s := range acc {
		s.Revenue = RoundMoney(s.Revenue)
		s.FacilitatorCost = RoundMoney(s.FacilitatorCost)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func groupCustomers(bookings []models.Booking) map[string]*CustomerValue {
	acc := make(map[string]*CustomerValue)
	for i := range bookings {
		b := &bookings[i]
		if !confirmed(b) {
			continue
		}
		c, ok := acc[b.CustomerEmail]
		if !ok {
			c = &CustomerValue{Email: b.CustomerEmail, Name: b.CustomerName}
			acc[b.CustomerEmail] = c
		}
		c.TotalSpent += b.TotalPrice
		c.Bookings++
	}
	return acc
}

// CustomerLifetimeValue groups confirmed bookings by customer email. Customers
// are ordered by spend, highest first.
func CustomerLifetimeValue(bookings []models.Booking) LifetimeValue {
	acc := groupCustomers(bookings)

	var total float64
	customers := make([]CustomerValue, 0, len(acc))
	for _, c := range acc {
		c.TotalSpent = RoundMoney(c.TotalSpent)
		total += c.TotalSpent
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(i, j int) bool {
		if customers[i].TotalSpent != customers[j].TotalSpent {
			return customers[i].TotalSpent > customers[j].TotalSpent
		}
		return customers[i].Email < customers[j].Email
	})

	ltv := LifetimeValue{Customers: customers, CustomerCount: len(customers)}
	if len(customers) > 0 {
		ltv.AverageValue = RoundMoney(total / float64(len(customers)))
	}
	return ltv
}

// FacilitatorLifetimeCost groups confirmed bookings by facilitator. Bookings
// without a facilitator are skipped.
func FacilitatorLifetimeCost(bookings []models.Booking) []FacilitatorCost {
	acc := make(map[uint]*FacilitatorCost)
	for i := range bookings {
		b := &bookings[i]
		if !confirmed(b) || b.FacilitatorID == nil {
			continue
		}
		f, ok := acc[*b.FacilitatorID]
		if !ok {
			f = &FacilitatorCost{FacilitatorID: *b.FacilitatorID, Name: b.FacilitatorName}
			acc[*b.FacilitatorID] = f
		}
		f.TotalCost += b.FacilitatorFee
		f.Bookings++
	}

	out := make([]FacilitatorCost, 0, len(acc))
	for _, f := range acc {
		f.TotalCost = RoundMoney(f.TotalCost)
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCost != out[j].TotalCost {
			return out[i].TotalCost > out[j].TotalCost
		}
		return out[i].FacilitatorID < out[j].FacilitatorID
	})
	return out
}

// CustomerHistoryOf splits customers into new (one confirmed booking) and
// returning (more than one).
func CustomerHistoryOf(bookings []models.Booking) CustomerHistory {
	var h CustomerHistory
	for _, c := range groupCustomers(bookings) {
		h.TotalCustomers++
		if c.Bookings > 1 {
			h.ReturningCustomers++
		} else {
			h.NewCustomers++
		}
	}
	h.RetentionRate = percent(h.ReturningCustomers, h.TotalCustomers)
	return h
}

// RevenueOverTime groups confirmed revenue by YYYY-MM, oldest first.
func RevenueOverTime(bookings []models.Booking) []MonthlyRevenue {
	acc := make(map[string]*MonthlyRevenue)
	for i := range bookings {
		b := &bookings[i]
		if !confirmed(b) {
			continue
		}
		key := MonthKey(b.EventDate)
		m, ok := acc[key]
		if !ok {
			m = &MonthlyRevenue{Month: key}
			acc[key] = m
		}
		m.Revenue += b.TotalPrice
		m.FacilitatorCost += b.FacilitatorFee
		m.Bookings++
	}

	out := make([]MonthlyRevenue, 0, len(acc))
	for _, m := range acc {
		m.Revenue = RoundMoney(m.Revenue)
		m.FacilitatorCost = RoundMoney(m.FacilitatorCost)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// OutstandingInvoices counts bookings still awaiting confirmation.
func OutstandingInvoices(bookings []models.Booking) int {
	n := 0
	for i := range bookings {
		if bookings[i].Status == models.StatusPending {
			n++
		}
	}
	return n
}

func CampaignPerformanceOf(bookings []models.Booking) CampaignPerformance {
	p := CampaignPerformance{TotalBookings: len(bookings)}
	for i := range bookings {
		switch bookings[i].Status {
		case models.StatusPending:
			p.PendingBookings++
		case models.StatusCancelled:
			p.CancelledBookings++
		}
	}
	p.CancellationRate = percent(p.CancelledBookings, p.TotalBookings)
	return p
}

// Build computes every rollup over the same booking set.
func Build(bookings []models.Booking, now time.Time) FinancialReport {
	confirmedCount := 0
	for i := range bookings {
		if confirmed(&bookings[i]) {
			confirmedCount++
		}
	}

	return FinancialReport{
		Summary: Summary{
			TotalRevenue:        TotalRevenue(bookings),
			FacilitatorCosts:    FacilitatorCosts(bookings),
			GrossProfit:         GrossProfit(bookings),
			ConfirmedBookings:   confirmedCount,
			OutstandingInvoices: OutstandingInvoices(bookings),
		},
		Seasons:                 SeasonBreakdown(bookings),
		CustomerLifetimeValue:   CustomerLifetimeValue(bookings),
		FacilitatorLifetimeCost: FacilitatorLifetimeCost(bookings),
		CustomerHistory:         CustomerHistoryOf(bookings),
		RevenueOverTime:         RevenueOverTime(bookings),
		CampaignPerformance:     CampaignPerformanceOf(bookings),
		GeneratedAt:             now,
	}
}
