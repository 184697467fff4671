package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// UserService handles registration, login and profile management. It is
// the identity context: trips and reservations know users only by the
// university ID this service puts into tokens.
type UserService struct {
	userStore repository.UserStore
	tokens    *TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(userStore repository.UserStore, tokens *TokenManager) *UserService {
	return &UserService{userStore: userStore, tokens: tokens}
}

// RegisterUserRequest contains the parameters for registering a user.
type RegisterUserRequest struct {
	Name         string
	Surname      string
	UniversityID string
	Email        string
	PhoneNumber  string
	Password     string
}

// Register creates a new user with a bcrypt-hashed password. Emails are
// unique across the system.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if req.Name == "" || req.Surname == "" || req.UniversityID == "" || req.Email == "" {
		return nil, ErrInvalidUserDetails
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Surname:      req.Surname,
		UniversityID: req.UniversityID,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues an identity token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.UniversityID)
}

// GetProfile retrieves the caller's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userStore.GetByID(ctx, userID)
}

// UpdateProfileRequest contains the updatable profile fields. Empty
// fields are left unchanged.
type UpdateProfileRequest struct {
	UserID      string
	Name        string
	Surname     string
	PhoneNumber string
	Password    string
}

// UpdateProfile updates the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Surname != "" {
		user.Surname = req.Surname
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the caller's own account.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.userStore.Delete(ctx, userID)
}
