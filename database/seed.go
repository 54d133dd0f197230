package database

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/backend/models"
)

// EnsureAdmin creates the initial admin account when no user with the given
// email exists yet. Safe to run on every boot.
func (d Database) EnsureAdmin(name, email, password string) error {
	existing, err := d.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return d.userRepo.Add(&models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
		Status:   models.UserStatusActive,
	})
}
