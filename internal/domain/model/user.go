package model

import "time"

// Role is one of the closed set of worker roles. Roles are unranked;
// capability depends on set membership only.
type Role string

const (
	RoleSale       Role = "SALE"
	RoleAdmin      Role = "ADMIN"
	RolePrinter    Role = "PRINTER"
	RoleProduction Role = "PRODUCTION"
	RolePacker     Role = "PACKER"
	RoleShipper    Role = "SHIPPER"
	RoleAccountant Role = "ACCOUNTANT"
)

// AllRoles enumerates every valid role tag.
var AllRoles = []Role{
	RoleSale, RoleAdmin, RolePrinter, RoleProduction,
	RolePacker, RoleShipper, RoleAccountant,
}

// ValidRole reports whether the tag belongs to the closed role set.
func ValidRole(r Role) bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// RoleSet is an unordered collection of role tags.
type RoleSet []Role

// Has reports membership.
func (s RoleSet) Has(r Role) bool {
	for _, have := range s {
		if have == r {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share any role. An empty other
// set matches everything.
func (s RoleSet) Intersects(other RoleSet) bool {
	if len(other) == 0 {
		return true
	}
	for _, r := range other {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// User represents a worker account of the shop.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Name         string
	Roles        RoleSet
	CreatedAt    time.Time
}
