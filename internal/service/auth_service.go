package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/repository"
	"github.com/satyam/medicare-backend/internal/token"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Username string
	Email    string // optional; the early client variant never sends one
	Password string
}

type LoginInput struct {
	// Identifier is a username or an email; the client variants disagree on
	// which they send, so login resolves both.
	Identifier string
	Password   string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates a user with a bcrypt-hashed password. Username and email
// uniqueness are pre-checked for a friendly error, but the database unique
// indexes are the authoritative guard against concurrent duplicates.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if existing, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if input.Email != "" {
		if existing, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
			return nil, domain.ErrEmailTaken
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if input.Email != "" {
		email := input.Email
		user.Email = &email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent registration; report which
			// identity collided.
			if _, lookupErr := s.userRepo.GetByUsername(ctx, input.Username); lookupErr == nil {
				return nil, domain.ErrUsernameTaken
			}
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown identifier
// and wrong password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.findByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: signed}, nil
}

func (s *AuthService) findByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.userRepo.GetByEmail(ctx, identifier)
}

// VerifyToken resolves a bearer token to the user id it was issued for.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	return s.tokens.Verify(tokenString)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
