// Package store implements the entity store: one in-memory set of
// users/bookings/payments/feedbacks maps backed by a single JSON document
// on disk.  Exactly one store exists per process; it is constructed in
// main and handed to handlers explicitly, never reached through a global.
//
// Every mutation happens behind one mutex as a read-modify-write followed
// by a full serialize of the document.  The file is replaced atomically
// (write to a temp file, then rename) so a crash mid-write can never leave
// a half-written store behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rakafardani/barbershop-booking/internal/model"
)

func nowUTC() time.Time { return time.Now().UTC() }

// Sentinel errors surfaced to handlers.  Each maps to one entry of the
// error taxonomy: validation failures are declined actions, persistence
// failures are server faults.
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrFeedbackExists     = errors.New("feedback already submitted for this booking")
	ErrPaymentExists      = errors.New("booking is already paid")
	ErrBookingCanceled    = errors.New("cannot pay for a canceled booking")
	ErrNotCompleted       = errors.New("feedback requires a completed booking")
	ErrBarberUnavailable  = errors.New("barber is not available")
)

// storeState is the persisted document: one object per entity type keyed
// by id, plus the id sequence counter.
type storeState struct {
	Users     map[string]model.User     `json:"users"`
	Bookings  map[string]model.Booking  `json:"bookings"`
	Payments  map[string]model.Payment  `json:"payments"`
	Feedbacks map[string]model.Feedback `json:"feedbacks"`
	Sequence  int64                     `json:"sequence"`
}

// EntityStore owns the entity maps and their backing file.
type EntityStore struct {
	path           string
	bcryptCost     int
	mu             sync.RWMutex
	state          storeState
	persistedState storeState
}

// Open loads the store from path, or seeds it with the built-in demo data
// when no file exists yet.  A file that exists but cannot be read or
// decoded is a persistence error and is returned as such; it is never
// silently replaced with demo data.  bcryptCost is used whenever the store
// hashes a password (registration and demo seeding).
func Open(path string, bcryptCost int) (*EntityStore, error) {
	if path == "" {
		path = "./barbershop_data.json"
	}
	s := &EntityStore{
		path:       path,
		bcryptCost: bcryptCost,
		state:      emptyState(),
	}
	s.persistedState = cloneState(s.state)
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func emptyState() storeState {
	return storeState{
		Users:     map[string]model.User{},
		Bookings:  map[string]model.Booking{},
		Payments:  map[string]model.Payment{},
		Feedbacks: map[string]model.Feedback{},
	}
}

func (s *EntityStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run: seed demo accounts and write the initial file.
			if err := s.seedLocked(); err != nil {
				return err
			}
			return s.persistLocked()
		}
		return fmt.Errorf("read store file: %w", err)
	}
	if len(content) == 0 {
		return nil
	}
	if err := json.Unmarshal(content, &s.state); err != nil {
		return fmt.Errorf("decode store file: %w", err)
	}
	s.ensureMapsLocked()
	for id, b := range s.state.Bookings {
		if !b.Service.Valid() {
			return fmt.Errorf("decode store file: booking %s references an unknown service", id)
		}
	}
	s.persistedState = cloneState(s.state)
	return nil
}

func (s *EntityStore) ensureMapsLocked() {
	if s.state.Users == nil {
		s.state.Users = map[string]model.User{}
	}
	if s.state.Bookings == nil {
		s.state.Bookings = map[string]model.Booking{}
	}
	if s.state.Payments == nil {
		s.state.Payments = map[string]model.Payment{}
	}
	if s.state.Feedbacks == nil {
		s.state.Feedbacks = map[string]model.Feedback{}
	}
}

// nextIDLocked generates the next identifier for a prefix, e.g. BK0007.
// A single counter is shared across entity types so ids stay unique even
// after deletions.
func (s *EntityStore) nextIDLocked(prefix string) string {
	s.state.Sequence++
	return fmt.Sprintf("%s%04d", prefix, s.state.Sequence)
}

// persistLocked serializes the whole document and replaces the backing
// file atomically.  On any failure the in-memory state is rolled back to
// the last persisted snapshot, so memory and disk never diverge.
func (s *EntityStore) persistLocked() error {
	s.ensureMapsLocked()
	body, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		s.state = cloneState(s.persistedState)
		return fmt.Errorf("encode store file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.state = cloneState(s.persistedState)
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o600); err != nil {
		_ = os.Remove(tmp)
		s.state = cloneState(s.persistedState)
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		s.state = cloneState(s.persistedState)
		return fmt.Errorf("replace store file: %w", err)
	}
	s.persistedState = cloneState(s.state)
	return nil
}

func copyBooking(b model.Booking) model.Booking {
	b.Service.Addons = append([]string{}, b.Service.Addons...)
	return b
}

func copyPayment(p model.Payment) model.Payment {
	if p.PaidAt != nil {
		t := *p.PaidAt
		p.PaidAt = &t
	}
	return p
}

func cloneState(state storeState) storeState {
	clone := storeState{
		Users:     make(map[string]model.User, len(state.Users)),
		Bookings:  make(map[string]model.Booking, len(state.Bookings)),
		Payments:  make(map[string]model.Payment, len(state.Payments)),
		Feedbacks: make(map[string]model.Feedback, len(state.Feedbacks)),
		Sequence:  state.Sequence,
	}
	for id, u := range state.Users {
		clone.Users[id] = u
	}
	for id, b := range state.Bookings {
		clone.Bookings[id] = copyBooking(b)
	}
	for id, p := range state.Payments {
		clone.Payments[id] = copyPayment(p)
	}
	for id, f := range state.Feedbacks {
		clone.Feedbacks[id] = f
	}
	return clone
}
