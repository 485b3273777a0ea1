package store

import (
	"time"

	"github.com/rakafardani/barbershop-booking/internal/model"
	"github.com/rakafardani/barbershop-booking/internal/utils"
)

// seedLocked populates a brand-new store with the demo accounts: two
// barbers and one owner.  Customers always register themselves.  The demo
// passwords ("1234" for barbers, "admin" for the owner) are bcrypt-hashed
// here; plaintext never reaches the file.
func (s *EntityStore) seedLocked() error {
	now := time.Now().UTC()

	type seedUser struct {
		id, name, email, password, phone, role, specialization string
	}
	seeds := []seedUser{
		{"B001", "John Doe", "john@barber.com", "1234", "081234567890", model.RoleBarber, "Hair Specialist"},
		{"B002", "Jane Smith", "jane@barber.com", "1234", "081234567891", model.RoleBarber, "Beard Expert"},
		{"O001", "Admin Boss", "admin@barber.com", "admin", "081234567892", model.RoleOwner, ""},
	}
	for _, sd := range seeds {
		hash, err := utils.HashPassword(sd.password, s.bcryptCost)
		if err != nil {
			return err
		}
		u := model.User{
			ID:           sd.id,
			Name:         sd.name,
			Email:        sd.email,
			PasswordHash: hash,
			Phone:        sd.phone,
			Role:         sd.role,
			CreatedAt:    now,
		}
		if sd.role == model.RoleBarber {
			u.Specialization = sd.specialization
			u.IsAvailable = true
			u.Rating = 5.0
		}
		s.state.Users[u.ID] = u
	}
	return nil
}
