// Package user holds the slice of the user model the billing engine needs:
// identity plus the profile country that decides which tax rate applies.
package user

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	id        uint
	email     string
	name      string
	country   string
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(email, name, country string) (*User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	now := time.Now().UTC()
	return &User{
		email:     email,
		name:      name,
		country:   country,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(id uint, email, name, country string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	return &User{
		id:        id,
		email:     email,
		name:      name,
		country:   country,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) Country() string      { return u.country }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// SetID assigns the storage identifier after insertion.
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// HasCountry reports whether the profile carries a usable country code.
func (u *User) HasCountry() bool {
	return strings.TrimSpace(u.country) != ""
}

// UpdateCountry changes the billing country on the profile.
func (u *User) UpdateCountry(country string) {
	u.country = country
	u.updatedAt = time.Now().UTC()
}
