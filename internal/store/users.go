package store

import (
	"context"
	"sort"
	"strings"

	"github.com/rakafardani/barbershop-booking/internal/model"
	"github.com/rakafardani/barbershop-booking/internal/utils"
)

// RegisterCustomer creates a customer account.  Emails are normalized to
// lower case and must be unique across every role; a duplicate is declined
// with ErrEmailExists and nothing is written.
func (s *EntityStore) RegisterCustomer(_ context.Context, name, email, phone, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.state.Users {
		if u.Email == email {
			return model.User{}, ErrEmailExists
		}
	}
	u := model.User{
		ID:           s.nextIDLocked("C"),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         model.RoleCustomer,
		CreatedAt:    nowUTC(),
	}
	s.state.Users[u.ID] = u
	if err := s.persistLocked(); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair and returns the matching
// user.  Unknown email and wrong password are indistinguishable to the
// caller: both report ErrInvalidCredentials.
func (s *EntityStore) Authenticate(_ context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.Users {
		if u.Email == email {
			if !utils.VerifyPassword(u.PasswordHash, password) {
				return model.User{}, ErrInvalidCredentials
			}
			return u, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

// User returns the user with the given id.
func (s *EntityStore) User(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.Users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// UserByEmail returns the user with the given normalized email.
func (s *EntityStore) UserByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// Barbers lists barbers sorted by id.  When availableOnly is set, barbers
// that switched themselves off are skipped.
func (s *EntityStore) Barbers(_ context.Context, availableOnly bool) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.User
	for _, u := range s.state.Users {
		if u.Role != model.RoleBarber {
			continue
		}
		if availableOnly && !u.IsAvailable {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Users lists every account sorted by id.  Owner-only listing.
func (s *EntityStore) Users(_ context.Context) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.state.Users))
	for _, u := range s.state.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetBarberAvailability flips a barber's availability flag.
func (s *EntityStore) SetBarberAvailability(_ context.Context, barberID string, available bool) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.Users[barberID]
	if !ok || u.Role != model.RoleBarber {
		return model.User{}, ErrNotFound
	}
	u.IsAvailable = available
	s.state.Users[barberID] = u
	if err := s.persistLocked(); err != nil {
		return model.User{}, err
	}
	return u, nil
}
