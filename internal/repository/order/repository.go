package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/numrent/virtual-number-service/internal/domain"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(order *domain.Order) error
	GetByID(id string) (*domain.Order, error)
	ListAll() ([]domain.Order, error)
	Update(id string, fields map[string]any) error
	Delete(id string) error
	MarkExpired(now time.Time) (int64, error)
}

type repo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Insert(order *domain.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("storage: insert order %s: %w", order.ID, err)
	}
	return nil
}

func (r *repo) GetByID(id string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get order %s: %w", id, err)
	}
	return &order, nil
}

// ListAll returns every order, newest first.
func (r *repo) ListAll() ([]domain.Order, error) {
	var orders []domain.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("storage: list orders: %w", err)
	}
	return orders, nil
}

// Update applies the given column values to a single order. Updating an
// absent id reports domain.ErrOrderNotFound.
func (r *repo) Update(id string, fields map[string]any) error {
	tx := r.db.Model(&domain.Order{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return fmt.Errorf("storage: update order %s: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Delete removes an order permanently. Deleting an absent id is not an error.
func (r *repo) Delete(id string) error {
	if err := r.db.Delete(&domain.Order{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("storage: delete order %s: %w", id, err)
	}
	return nil
}

// MarkExpired flips WAITING orders past their validity window to EXPIRED and
// returns how many rows changed. Read paths never depend on this; it only
// keeps the audit trail honest.
func (r *repo) MarkExpired(now time.Time) (int64, error) {
	tx := r.db.Model(&domain.Order{}).
		Where("status = ? AND expires_at <= ?", domain.StatusWaiting, now).
		Update("status", domain.StatusExpired)
	if tx.Error != nil {
		return 0, fmt.Errorf("storage: mark expired: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}
