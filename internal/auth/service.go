package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smart-canteen/internal/domain"
)

type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type ServiceInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID int64) (*domain.User, error)
	VerifyToken(ctx context.Context, token string) (domain.AuthUser, error)
}

type Service struct {
	repo       RepositoryInterface
	sessionTTL time.Duration
}

func NewService(repo RepositoryInterface, sessionTTL time.Duration) *Service {
	return &Service{repo: repo, sessionTTL: sessionTTL}
}

// Register creates a customer account. Staff and admin accounts are seeded,
// not self-registered.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	ve := domain.NewValidationError()
	if strings.TrimSpace(req.Name) == "" {
		ve.Add("name", "name is required")
	}
	if !strings.Contains(req.Email, "@") {
		ve.Add("email", "a valid email is required")
	}
	if len(req.Password) < 8 {
		ve.Add("password", "password must be at least 8 characters")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if _, err := s.repo.UserByEmail(ctx, req.Email); err == nil {
		ve.Add("email", "email is already taken")
		return nil, ve
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		Phone:        req.Phone,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.openSession(ctx, user)
}

func (s *Service) openSession(ctx context.Context, user *domain.User) (*LoginResponse, error) {
	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return &LoginResponse{Token: session.Token, User: user}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.UserByID(ctx, userID)
}

// VerifyToken resolves a bearer token to its user. Expired or unknown tokens
// yield ErrUnauthorized so the middleware answers 401, not 404.
func (s *Service) VerifyToken(ctx context.Context, token string) (domain.AuthUser, error) {
	user, session, err := s.repo.SessionUser(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AuthUser{}, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
		}
		return domain.AuthUser{}, err
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return domain.AuthUser{}, fmt.Errorf("token expired: %w", domain.ErrUnauthorized)
	}
	return domain.AuthUser{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}
