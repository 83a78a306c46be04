package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// The two cases are deliberately indistinguishable so callers cannot
// enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles signup, login, and password hashing.
type AuthService struct {
	accounts   CredentialStore
	tokens     *TokenService
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts CredentialStore, tokens *TokenService, bcryptCost int) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, bcryptCost: bcryptCost}
}

// Signup registers a new account. Self-registration always produces a
// student: the role is fixed here, not taken from input. Returns the
// persisted account and a freshly issued token, or
// repository.ErrDuplicateEmail when the email is already registered.
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.Account, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Age:          int(req.Age),
		Class:        strings.TrimSpace(req.Class),
		Role:         model.RoleStudent,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Login authenticates an email/password pair and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Account, string, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Profile returns the account behind an authenticated identity.
func (s *AuthService) Profile(ctx context.Context, accountID int) (*model.Account, error) {
	return s.accounts.GetByID(ctx, accountID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
