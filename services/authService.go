package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Maheshkadam-Delxn/eye/models"
	"github.com/Maheshkadam-Delxn/eye/repositories"
	"github.com/Maheshkadam-Delxn/eye/utils"
)

type AuthService struct {
	userRepo *repositories.UserRepository
}

func NewAuthService(userRepo *repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate verifies the email/password pair against the stored hash.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if err := utils.ValidateLogin(email, password); err != nil {
		return nil, invalid(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Signup creates the very first account as admin. Once any user exists,
// registration is closed and accounts are provisioned by the admin.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	count, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRegistrationClosed
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := utils.ValidateNewUser(*user); err != nil {
		return nil, invalid(err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
