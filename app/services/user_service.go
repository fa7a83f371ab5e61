package services

import (
	"errors"
	"fmt"

	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/repositories"
)

// ErrInvalidCredentials is returned when a username/password pair does not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Registration is what a new account is created from.
type Registration struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserService handles accounts.
type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates an account. A taken username yields repositories.ErrDuplicate.
func (s *UserService) Register(reg Registration) (*models.User, error) {
	if reg.Password == "" {
		return nil, fmt.Errorf("invalid user: empty password")
	}
	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     reg.Username,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose credentials match.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
