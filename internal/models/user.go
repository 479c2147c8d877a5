package models

import (
	"fmt"
	"time"
)

// Role is a stakeholder category, fixed at registration. It is
// informational only and carries no authorization semantics.
type Role string

const (
	RoleFarmer       Role = "farmer"
	RoleProducer     Role = "producer"
	RoleConsumer     Role = "consumer"
	RoleResearcher   Role = "researcher"
	RoleVet          Role = "vet"
	RoleTransporter  Role = "transporter"
	RoleEntrepreneur Role = "entrepreneur"
	RoleGov          Role = "gov"
)

// Roles lists every valid role, in display order.
var Roles = []Role{
	RoleFarmer, RoleProducer, RoleConsumer, RoleResearcher,
	RoleVet, RoleTransporter, RoleEntrepreneur, RoleGov,
}

// ParseRole maps a submitted string to a Role, rejecting anything
// outside the fixed set.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents a row in the users table.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialize
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the optional descriptive extension of a User. Exactly one
// row per user, created empty at registration.
type Profile struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}
