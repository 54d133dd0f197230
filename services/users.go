package services

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/backend/database"
	"github.com/openblog/backend/errs"
	"github.com/openblog/backend/models"
)

// UserService owns account registration, credential checks and the
// admin-gated user administration surface.
type UserService struct {
	store  UserStore
	logger zerolog.Logger
}

func NewUserService(store UserStore) *UserService {
	return &UserService{
		store:  store,
		logger: log.With().Str("serviceName", "userService").Logger(),
	}
}

// RegisterUserInput carries the registration payload.
type RegisterUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserInput carries a partial account update; nil fields are untouched.
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// Register creates an account with a hashed credential. The role defaults to
// reader; callers like the author-registration endpoint pass a fixed role.
func (s *UserService) Register(input RegisterUserInput) (*models.User, error) {
	if input.Name == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}
	if input.Email == "" {
		return nil, errs.NewMissingRequiredFieldError("email")
	}
	if len(input.Password) < 8 {
		return nil, errs.NewInvalidFieldError("password", "must be at least 8 characters")
	}

	role := input.Role
	if role == "" {
		role = models.RoleReader
	}
	if !models.ValidRole(role) {
		return nil, errs.NewInvalidFieldError("role", "must be one of admin, author, reader")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.store.FindByEmail(email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if existing != nil {
		return nil, errs.NewAlreadyExists("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewInternalError("failed to hash password")
	}

	user := &models.User{
		Name:     input.Name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Status:   models.UserStatusActive,
	}
	if err := s.store.Add(user); err != nil {
		return nil, errs.NewDatabaseError("create", "user", err)
	}

	s.logger.Info().Uint("userId", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials and returns the account when they match.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil || !user.IsActive() {
		return nil, errs.NewUnauthorizedError("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errs.NewUnauthorizedError("invalid credentials")
	}
	return user, nil
}

// Get returns one account.
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.store.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFound("user")
	}
	return user, nil
}

// List returns one page of users. The filter was parsed against the caller's
// role, so non-admins are already pinned to active accounts.
func (s *UserService) List(filter database.UserFilter, page, perPage int) ([]models.User, int64, error) {
	users, total, err := s.store.List(filter, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "users", err)
	}
	return users, total, nil
}

// Update applies a partial update. Non-admin actors may only touch their own
// profile, and their role, status and email fields are discarded rather than
// applied; only an admin may set those.
func (s *UserService) Update(actor *models.User, id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.store.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFound("user")
	}
	if !CanMutateUser(actor, user) {
		return nil, errs.NewForbiddenError("you may not update this user")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if CanSetRole(actor) {
		if input.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*input.Email))
			if email != user.Email {
				other, err := s.store.FindByEmail(email)
				if err != nil {
					return nil, errs.NewDatabaseError("find", "user", err)
				}
				if other != nil {
					return nil, errs.NewAlreadyExists("user")
				}
				user.Email = email
			}
		}
		if input.Role != nil {
			if !models.ValidRole(*input.Role) {
				return nil, errs.NewInvalidFieldError("role", "must be one of admin, author, reader")
			}
			user.Role = *input.Role
		}
		if input.Status != nil {
			if *input.Status != models.UserStatusActive && *input.Status != models.UserStatusInactive {
				return nil, errs.NewInvalidFieldError("status", "must be active or inactive")
			}
			user.Status = *input.Status
		}
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, errs.NewInvalidFieldError("password", "must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errs.NewInternalError("failed to hash password")
		}
		user.Password = string(hash)
	}

	if err := s.store.Save(user); err != nil {
		return nil, errs.NewDatabaseError("update", "user", err)
	}
	return user, nil
}

// Delete removes an account; admin only.
func (s *UserService) Delete(actor *models.User, id uint) error {
	if actor == nil || !actor.IsAdmin() {
		return errs.NewForbiddenError("you may not delete users")
	}
	user, err := s.store.FindByID(id)
	if err != nil {
		return errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return errs.NewNotFound("user")
	}
	if err := s.store.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "user", err)
	}
	s.logger.Info().Uint("userId", id).Msg("user deleted")
	return nil
}
