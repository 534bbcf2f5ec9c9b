package database

import (
	"context"

	"github.com/nekidaem/microblog/models"
	"gorm.io/gorm"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db}
}

// Add inserts a new account. A duplicate username surfaces as
// errs.ErrAlreadyExists via the unique index.
func (r *AccountRepo) Add(ctx context.Context, account *models.Account) error {
	return translateError(r.db.WithContext(ctx).Create(account).Error)
}

// FindByID returns an account by its ID
func (r *AccountRepo) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// FindByUsername returns an account by its unique username
func (r *AccountRepo) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// FindAll returns every account, used by the newsletter sweep
func (r *AccountRepo) FindAll(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).Order("id").Find(&accounts).Error
	return accounts, translateError(err)
}
