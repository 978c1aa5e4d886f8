package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evelynagreer/survey-vote/backend/internal/models"
)

// AccountStore is the persistence boundary for account records. Lookups
// return (nil, nil) when no record matches; errors are reserved for
// infrastructure failures.
type AccountStore interface {
	Add(ctx context.Context, account *models.Account) error
	LoadByEmail(ctx context.Context, email string) (*models.Account, error)
	LoadByToken(ctx context.Context, token, role string) (*models.Account, error)
	UpdateAccessToken(ctx context.Context, id int, token string) error
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Add(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) LoadByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load account by email: %w", err)
	}
	return &account, nil
}

// LoadByToken finds the account holding the given access token. A non-empty
// role narrows the lookup to accounts with that role.
func (r *AccountRepository) LoadByToken(ctx context.Context, token, role string) (*models.Account, error) {
	query := r.db.WithContext(ctx).Where("access_token = ?", token)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var account models.Account
	err := query.First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load account by token: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) UpdateAccessToken(ctx context.Context, id int, token string) error {
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Update("access_token", token).Error
	if err != nil {
		return fmt.Errorf("update access token: %w", err)
	}
	return nil
}
