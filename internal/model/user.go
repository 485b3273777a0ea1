package model

import "time"

// Role names as they appear in JWT claims and the persisted store.
const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
	RoleOwner    = "owner"
)

// User represents any account in the system.  The three roles share one
// record with a Role tag plus role-specific fields; customer and barber
// extras are simply zero-valued on the roles that do not use them.  The
// json tags define the persisted layout of the `users` object in the
// store file.
//
// Fields:
//  ID           - generated string identifier (C0001, B0001, O0001).
//  Name         - display name.
//  Email        - unique across all users, stored lower-cased.
//  PasswordHash - bcrypt hash; the plain password is never persisted.
//  Phone        - contact number, free text.
//  Role         - one of RoleCustomer, RoleBarber, RoleOwner.
//  CreatedAt    - creation timestamp (UTC).
type User struct {
	ID           string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	// Customer extras.
	//  Address       - optional postal address.
	//  LoyaltyPoints - counter carried in the record; no business rule
	//                  consumes it yet.
	Address       string `json:"address,omitempty"`
	LoyaltyPoints int    `json:"loyalty_points,omitempty"`

	// Barber extras.
	//  Specialization - free text, e.g. "Hair Specialist".
	//  IsAvailable    - toggled manually by the barber; bookable filter.
	//                   Persisted without omitempty so a switched-off
	//                   barber is visible in the document, not elided.
	//  Rating         - informational stored value. Reported ratings are
	//                   derived from feedback aggregates instead.
	Specialization string  `json:"specialization,omitempty"`
	IsAvailable    bool    `json:"is_available"`
	Rating         float64 `json:"rating,omitempty"`
}

// Public is the sanitised projection returned by handlers.  It never leaks
// the password hash and omits role extras that do not apply.
type Public struct {
	ID             string  `json:"user_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Role           string  `json:"role"`
	Specialization string  `json:"specialization,omitempty"`
	IsAvailable    *bool   `json:"is_available,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
}

// Public builds the sanitised view of the user.
func (u User) Public() Public {
	p := Public{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}
	if u.Role == RoleBarber {
		avail := u.IsAvailable
		p.Specialization = u.Specialization
		p.IsAvailable = &avail
		p.Rating = u.Rating
	}
	return p
}
