package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/notify"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"gorm.io/gorm"
)

// fakeTx serializes transactions the way the session row lock does.
type fakeTx struct {
	mu sync.Mutex
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(nil)
}

// store is a shared in-memory database behind every fake repository.
type store struct {
	mu           sync.Mutex
	nextID       uint
	events       map[uint]*models.Event
	sessions     map[uint]*models.EventSession
	bookings     map[uint]*models.Booking
	facilitators map[uint]*models.Facilitator
	rollups      map[string]*models.RevenueRollup
	applied      map[transitionKey]bool
	failWith     error
}

func newStore() *store {
	return &store{
		events:       map[uint]*models.Event{},
		sessions:     map[uint]*models.EventSession{},
		bookings:     map[uint]*models.Booking{},
		facilitators: map[uint]*models.Facilitator{},
		rollups:      map[string]*models.RevenueRollup{},
		applied:      map[transitionKey]bool{},
	}
}

func (s *store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *store) addEvent(e models.Event) *models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	s.events[e.ID] = &e
	return &e
}

func (s *store) addSession(sess models.EventSession) *models.EventSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ID = s.id()
	if sess.Status == "" {
		sess.Status = models.SessionActive
	}
	s.sessions[sess.ID] = &sess
	return &sess
}

func (s *store) addFacilitator(f models.Facilitator) *models.Facilitator {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.id()
	s.facilitators[f.ID] = &f
	return &f
}

func (s *store) sessionStatus(id uint) models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id].Status
}

// --- bookings ---

type fakeBookingRepo struct{ *store }

func (r fakeBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	b.ID = r.id()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r fakeBookingRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r fakeBookingRepo) Find(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if f.CustomerEmail != "" && b.CustomerEmail != f.CustomerEmail {
			continue
		}
		if f.UserID != "" && (b.UserID == nil || *b.UserID != f.UserID) {
			continue
		}
		if f.SessionID != 0 && b.SessionID != f.SessionID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeBookingRepo) FindAll(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if !from.IsZero() && b.EventDate.Before(from) {
			continue
		}
		if !to.IsZero() && !b.EventDate.Before(to) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeBookingRepo) SumPeople(ctx context.Context, tx *gorm.DB, sessionID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, b := range r.bookings {
		if b.SessionID == sessionID && b.Status != models.StatusCancelled {
			total += b.NumberOfPeople
		}
	}
	return total, nil
}

func (r fakeBookingRepo) SumPeopleBySessions(ctx context.Context, tx *gorm.DB, ids []uint) (map[uint]int, error) {
	out := map[uint]int{}
	for _, id := range ids {
		n, _ := r.SumPeople(ctx, nil, id)
		if n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

func (r fakeBookingRepo) CountActiveByFacilitators(ctx context.Context, ids []uint) (map[uint]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[uint]int64{}
	for _, b := range r.bookings {
		if b.FacilitatorID != nil && want[*b.FacilitatorID] && b.Status != models.StatusCancelled {
			out[*b.FacilitatorID]++
		}
	}
	return out, nil
}

func (r fakeBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	b, ok := r.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	return nil
}

// --- sessions ---

type fakeSessionRepo struct{ *store }

func (r fakeSessionRepo) Create(ctx context.Context, s *models.EventSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	cp := *s
	cp.Event = nil
	r.sessions[s.ID] = &cp
	return nil
}

func (r fakeSessionRepo) Update(ctx context.Context, tx *gorm.DB, s *models.EventSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	cp.Event = nil
	r.sessions[s.ID] = &cp
	return nil
}

func (r fakeSessionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r fakeSessionRepo) FindByID(ctx context.Context, id uint) (*models.EventSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	if e, ok := r.events[s.EventID]; ok {
		ev := *e
		cp.Event = &ev
	}
	return &cp, nil
}

func (r fakeSessionRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.EventSession, error) {
	return r.FindByID(ctx, id)
}

func (r fakeSessionRepo) FindAll(ctx context.Context, eventID uint) ([]models.EventSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EventSession
	for _, s := range r.sessions {
		if eventID == 0 || s.EventID == eventID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeSessionRepo) FindByEventForUpdate(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.EventSession, error) {
	return r.FindAll(ctx, eventID)
}

func (r fakeSessionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.SessionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

// --- events ---

type fakeEventRepo struct{ *store }

func (r fakeEventRepo) Create(ctx context.Context, e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.id()
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r fakeEventRepo) Update(ctx context.Context, e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	cp.Sessions = nil
	r.events[e.ID] = &cp
	return nil
}

func (r fakeEventRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sid, s := range r.sessions {
		if s.EventID == id {
			delete(r.sessions, sid)
		}
	}
	delete(r.events, id)
	return nil
}

func (r fakeEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	cp.Sessions = nil
	for _, s := range r.sessions {
		if s.EventID == id {
			cp.Sessions = append(cp.Sessions, *s)
		}
	}
	return &cp, nil
}

func (r fakeEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Event
	for _, e := range r.events {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- facilitators ---

type fakeFacilitatorRepo struct{ *store }

func (r fakeFacilitatorRepo) Create(ctx context.Context, f *models.Facilitator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.id()
	cp := *f
	r.facilitators[f.ID] = &cp
	return nil
}

func (r fakeFacilitatorRepo) Update(ctx context.Context, f *models.Facilitator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.facilitators[f.ID] = &cp
	return nil
}

func (r fakeFacilitatorRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.facilitators, id)
	return nil
}

func (r fakeFacilitatorRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Facilitator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.facilitators[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r fakeFacilitatorRepo) FindAll(ctx context.Context) ([]models.Facilitator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Facilitator
	for _, f := range r.facilitators {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- rollups ---

type fakeRollupRepo struct{ *store }

type transitionKey struct {
	booking  uint
	from, to models.BookingStatus
}

func (r fakeRollupRepo) Apply(ctx context.Context, mark models.AppliedTransition, d models.RevenueRollup) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return false, r.failWith
	}
	key := transitionKey{mark.BookingID, mark.FromStatus, mark.ToStatus}
	if r.applied[key] {
		return false, nil
	}
	r.applied[key] = true

	cur, ok := r.rollups[d.Period]
	if !ok {
		cp := d
		r.rollups[d.Period] = &cp
		return true, nil
	}
	cur.Revenue += d.Revenue
	cur.FacilitatorCost += d.FacilitatorCost
	cur.Bookings += d.Bookings
	cur.UpdatedAt = d.UpdatedAt
	return true, nil
}

func (r fakeRollupRepo) Replace(ctx context.Context, rows []models.RevenueRollup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.rollups = map[string]*models.RevenueRollup{}
	for _, row := range rows {
		cp := row
		r.rollups[row.Period] = &cp
	}
	return nil
}

func (r fakeRollupRepo) FindAll(ctx context.Context) ([]models.RevenueRollup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RevenueRollup
	for _, v := range r.rollups {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

// recordingNotifier captures dispatched events synchronously.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Dispatch(ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) all() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}
