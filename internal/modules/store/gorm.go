package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgemunganga/stockbook-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type storeModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string
	PasswordHash string
	PostalCode   string
	TaxID        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (storeModel) TableName() string { return "stores" }

func toModel(s *Store) *storeModel {
	return &storeModel{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		PostalCode:   s.PostalCode,
		TaxID:        s.TaxID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toDomain(m *storeModel) *Store {
	return &Store{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		PostalCode:   m.PostalCode,
		TaxID:        m.TaxID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type gormRepo struct {
	db *gorm.DB
}

// NewGormRepository creates a store repository backed by gorm.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Create(ctx context.Context, s *Store) error {
	if err := r.db.WithContext(ctx).Create(toModel(s)).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *gormRepo) GetByID(ctx context.Context, id uuid.UUID) (*Store, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormRepo) GetByEmail(ctx context.Context, email string) (*Store, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormRepo) first(ctx context.Context, query string, args ...interface{}) (*Store, error) {
	var m storeModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return toDomain(&m), nil
}

func (r *gormRepo) Update(ctx context.Context, s *Store) error {
	res := r.db.WithContext(ctx).Model(&storeModel{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":          s.Name,
		"email":         s.Email,
		"password_hash": s.PasswordHash,
		"postal_code":   s.PostalCode,
		"tax_id":        s.TaxID,
		"updated_at":    s.UpdatedAt,
	})
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepo) Delete(ctx context.Context, id uuid.UUID) (*Store, error) {
	var deleted *Store
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m storeModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if err := tx.Delete(&storeModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		deleted = toDomain(&m)
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete store: %w", err)
	}
	return deleted, nil
}
