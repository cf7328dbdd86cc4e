package repo

import (
	"context"
	"errors"

	"feedback-board/app/models"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// Create inserts the user in a single statement; a concurrent insert of the
// same username or email surfaces as the store's unique-constraint violation,
// translated to ErrDuplicateUsername or ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return translateUniqueViolation(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := r.db.WithContext(ctx).Order("username").Find(&out).Error
	return out, err
}

// DeleteCascade removes the user and every feedback row it owns as one
// transaction, so a concurrent reader never sees the user gone while its
// feedback remains.
func (r *UserRepository) DeleteCascade(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("username = ?", username).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("username = ?", username).Delete(&models.Feedback{}).Error
	})
}
