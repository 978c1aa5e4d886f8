package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/evelynagreer/survey-vote/backend/internal/models"
	"github.com/evelynagreer/survey-vote/backend/internal/repository"
	"github.com/evelynagreer/survey-vote/backend/internal/security"
)

// ErrEmailInUse is returned by SignUp when an account with the given email
// already exists.
var ErrEmailInUse = errors.New("email already in use")

// AuthService orchestrates credential verification, token issuance and
// token-based account resolution.
type AuthService struct {
	accounts repository.AccountStore
	hasher   security.Hasher
	comparer security.HashComparer
	codec    security.TokenCodec
}

func NewAuthService(accounts repository.AccountStore, hasher security.Hasher, comparer security.HashComparer, codec security.TokenCodec) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		comparer: comparer,
		codec:    codec,
	}
}

// SignUp creates a new account and logs it in. The email uniqueness check
// happens before the insert.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*models.Account, string, error) {
	existing, err := s.accounts.LoadByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailInUse
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	account := &models.Account{
		Name:     name,
		Email:    email,
		Password: digest,
	}
	if err := s.accounts.Add(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Authenticate verifies the given credentials. It returns an empty token when
// no account matches the email or the password does not verify; an error
// means an infrastructure failure, never a credential mismatch.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.LoadByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", nil
	}

	if !s.comparer.Compare(password, account.Password) {
		return "", nil
	}

	token, err := s.codec.Encrypt(account.ID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	// The token must be persisted before it is handed out, so a bearer of
	// the returned token always resolves back to the account.
	if err := s.accounts.UpdateAccessToken(ctx, account.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

// LoadAccountByToken resolves a bearer token back to its account. A non-empty
// role restricts the lookup to accounts with that role. It returns (nil, nil)
// when the token does not decode or no account holds it.
func (s *AuthService) LoadAccountByToken(ctx context.Context, token, role string) (*models.Account, error) {
	if _, err := s.codec.Decrypt(token); err != nil {
		return nil, nil
	}
	return s.accounts.LoadByToken(ctx, token, role)
}
