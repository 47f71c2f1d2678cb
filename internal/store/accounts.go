package store

import (
	"context"
	"errors"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not liked")
)

// Profile holds the user-editable fields.
type Profile struct {
	Name       string
	Phone      string
	Occupation string
}

type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *AccountStore) FindByEmailAndProvider(ctx context.Context, email string, provider models.Provider) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND provider = ?", email, provider).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Insert creates a user with an empty profile. The (email, provider) unique
// index rejects duplicates with gorm.ErrDuplicatedKey.
func (s *AccountStore) Insert(ctx context.Context, email string, provider models.Provider) (*models.User, error) {
	user := models.User{Email: email, Provider: provider}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreate returns the user for (email, provider), creating it on first
// login. A concurrent insert of the same pair loses on the unique index and
// re-reads the winner's row.
func (s *AccountStore) FindOrCreate(ctx context.Context, email string, provider models.Provider) (*models.User, bool, error) {
	user, err := s.FindByEmailAndProvider(ctx, email, provider)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	user, err = s.Insert(ctx, email, provider)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		user, err = s.FindByEmailAndProvider(ctx, email, provider)
		return user, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// UpdateProfile overwrites name, phone and occupation in one statement.
func (s *AccountStore) UpdateProfile(ctx context.Context, id uint, p Profile) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       p.Name,
			"phone":      p.Phone,
			"occupation": p.Occupation,
		})
	if res.Error != nil {
		return res.Error
	}
	// MySQL reports unchanged rows as unaffected, so confirm the row exists.
	if res.RowsAffected == 0 {
		_, err := s.FindByID(ctx, id)
		return err
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
