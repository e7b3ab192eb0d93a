package booking

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/internal/service/corridor"
	"github.com/Temutjin2k/cabshare/internal/service/fare"
	"github.com/Temutjin2k/cabshare/internal/service/matcher"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	"github.com/google/uuid"
)

var errInjected = errors.New("injected failure")

// memStore is an in-memory ledger. failOn names one repository method that returns errInjected.
type memStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]models.Booking
	links    []models.SharedRideParticipant
	payments map[uuid.UUID]models.Payment
	vehicles map[uuid.UUID]models.Vehicle
	drivers  map[uuid.UUID]models.Driver
	routes   map[[2]string]float64
	clock    time.Time
	failOn   string
}

type snapshot struct {
	bookings map[uuid.UUID]models.Booking
	links    []models.SharedRideParticipant
	payments map[uuid.UUID]models.Payment
}

func newMemStore() *memStore {
	return &memStore{
		bookings: map[uuid.UUID]models.Booking{},
		payments: map[uuid.UUID]models.Payment{},
		vehicles: map[uuid.UUID]models.Vehicle{},
		drivers:  map[uuid.UUID]models.Driver{},
		routes:   map[[2]string]float64{},
		clock:    time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) snapshot() snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot{
		bookings: maps.Clone(m.bookings),
		links:    slices.Clone(m.links),
		payments: maps.Clone(m.payments),
	}
}

func (m *memStore) restore(s snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings, m.links, m.payments = s.bookings, s.links, s.payments
}

func (m *memStore) fail(method string) error {
	if m.failOn == method {
		return errInjected
	}
	return nil
}

func (m *memStore) booking(id uuid.UUID) models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

func (m *memStore) count() (bookings, links, payments int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings), len(m.links), len(m.payments)
}

// fakeTM serializes transactions and restores the snapshot taken at Begin on error.
type fakeTM struct {
	mu    sync.Mutex
	store *memStore
}

func (tm *fakeTM) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	snap := tm.store.snapshot()
	if err := fn(ctx); err != nil {
		tm.store.restore(snap)
		return err
	}
	return nil
}

type bookingRepo struct{ *memStore }

func (r bookingRepo) Create(_ context.Context, b *models.Booking) (*models.Booking, error) {
	if err := r.fail("bookings.Create"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Minute)
	c := *b
	c.CreatedAt, c.UpdatedAt = r.clock, r.clock
	r.bookings[c.ID] = c
	return &c, nil
}

func (r bookingRepo) Get(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, types.ErrBookingNotFound
	}
	return &b, nil
}

func (r bookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.Get(ctx, id)
}

func (r bookingRepo) ListOpenShared(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.IsPrimary() && b.Status == types.StatusConfirmed && b.AvailableSeats > 0 && b.PickupDate == date {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b models.Booking) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r bookingRepo) ListParticipants(_ context.Context, primaryID uuid.UUID) ([]models.Booking, error) {
	if err := r.fail("bookings.ListParticipants"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ParentBookingID != nil && *b.ParentBookingID == primaryID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b models.Booking) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r bookingRepo) SetAvailableSeats(_ context.Context, id uuid.UUID, seats int) error {
	if err := r.fail("bookings.SetAvailableSeats"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return types.ErrBookingNotFound
	}
	if seats < 0 {
		return errors.New("available_seats check violation")
	}
	b.AvailableSeats = seats
	r.bookings[id] = b
	return nil
}

func (r bookingRepo) SetStatus(_ context.Context, ids []uuid.UUID, status types.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		b := r.bookings[id]
		b.Status = status
		r.bookings[id] = b
	}
	return nil
}

type participantRepo struct{ *memStore }

func (r participantRepo) Create(_ context.Context, p *models.SharedRideParticipant) (*models.SharedRideParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	c.CreatedAt = r.clock
	r.links = append(r.links, c)
	return &c, nil
}

func (r participantRepo) ListByPrimary(_ context.Context, primaryID uuid.UUID) ([]models.SharedRideParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SharedRideParticipant
	for _, l := range r.links {
		if l.PrimaryBookingID == primaryID {
			out = append(out, l)
		}
	}
	return out, nil
}

type vehicleRepo struct{ *memStore }

func (r vehicleRepo) Get(_ context.Context, id uuid.UUID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, types.ErrVehicleNotFound
	}
	return &v, nil
}

type paymentRepo struct{ *memStore }

func (r paymentRepo) Create(_ context.Context, p *models.Payment) (*models.Payment, error) {
	if err := r.fail("payments.Create"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	c.CreatedAt = r.clock
	r.payments[c.BookingID] = c
	return &c, nil
}

func (r paymentRepo) GetByBooking(_ context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[bookingID]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &p, nil
}

func (r paymentRepo) CancelPending(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if p, ok := r.payments[id]; ok && p.Status == types.PaymentPending {
			p.Status = types.PaymentCancelled
			r.payments[id] = p
		}
	}
	return nil
}

type driverRepo struct{ *memStore }

func (r driverRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[userID]
	if !ok {
		return nil, types.ErrDriverNotFound
	}
	return &d, nil
}

type routeTable struct{ *memStore }

func (r routeTable) RouteDistance(_ context.Context, from, to string) (float64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, to = strings.ToLower(from), strings.ToLower(to)
	if km, ok := r.routes[[2]string{from, to}]; ok {
		return km, true, nil
	}
	km, ok := r.routes[[2]string{to, from}]
	return km, ok, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, e models.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) eventTypes() []types.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.BookingEvent, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

type fixture struct {
	svc    *Service
	store  *memStore
	events *recordingPublisher
}

func newFixture() *fixture {
	store := newMemStore()
	log := logger.New(io.Discard, "booking-test", logger.LevelError)
	events := &recordingPublisher{}

	svc := NewService(
		Repositories{
			Bookings:     bookingRepo{store},
			Participants: participantRepo{store},
			Vehicles:     vehicleRepo{store},
			Payments:     paymentRepo{store},
			Drivers:      driverRepo{store},
		},
		fare.NewResolver(nil, routeTable{store}, corridor.Default(), log),
		matcher.New(corridor.Default()),
		events,
		&fakeTM{store: store},
		log,
	)

	return &fixture{svc: svc, store: store, events: events}
}

func (f *fixture) addVehicle(capacity int, pricePerKm float64) uuid.UUID {
	v := models.Vehicle{ID: uuid.New(), Name: "test", VehicleType: "sedan", Capacity: capacity, PricePerKm: pricePerKm}
	f.store.vehicles[v.ID] = v
	return v.ID
}

func (f *fixture) addRoute(from, to string, km float64) {
	f.store.routes[[2]string{strings.ToLower(from), strings.ToLower(to)}] = km
}

func (f *fixture) addDriver(userID uuid.UUID) models.Driver {
	d := models.Driver{ID: uuid.New(), UserID: userID, Name: "Ravi", Phone: "9123456780", VehicleNumber: "KA-01-AB-1234"}
	f.store.drivers[userID] = d
	return d
}
