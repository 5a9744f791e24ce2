package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/logger"
	"furnirent-backend/internal/repository"
	"furnirent-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup registers a new customer account. Operator and admin accounts are
// provisioned out of band; self-service signup always yields CUSTOMER.
func (s *authService) Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error) {
	logger.EnterMethod("authService.Signup", "email", email)

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.UserRoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Signup", err, "email", email)
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	logger.ExitMethod("authService.Signup", "userID", user.ID)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
