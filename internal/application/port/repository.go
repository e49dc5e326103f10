// Package port defines the interfaces between the application layer and
// infrastructure adapters (persistence, AI endpoint, notifications, documents).
package port

import (
	"context"
	"time"

	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

// ReceiptRepository persists donation receipts and their offering items
type ReceiptRepository interface {
	// Create inserts the receipt and its items, assigning a fresh id
	Create(ctx context.Context, receipt *entity.Receipt) error

	// GetByID returns the receipt with the given id, or nil if absent
	GetByID(ctx context.Context, id int64) (*entity.Receipt, error)

	// GetAll returns all receipts, newest first
	GetAll(ctx context.Context) ([]*entity.Receipt, error)

	// GetByMonth returns receipts whose offering date falls in the month
	GetByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Receipt, error)

	// Update replaces the receipt and its items
	Update(ctx context.Context, receipt *entity.Receipt) error

	// Delete removes the receipt and its items
	Delete(ctx context.Context, id int64) error
}

// StaffRepository persists priest and sevadar records
type StaffRepository interface {
	// Create inserts the record, assigning a fresh id
	Create(ctx context.Context, staff *entity.StaffRecord) error

	// GetByID returns the record with the given id, or nil if absent
	GetByID(ctx context.Context, id int64) (*entity.StaffRecord, error)

	// GetAll returns all staff records, newest first
	GetAll(ctx context.Context) ([]*entity.StaffRecord, error)

	// Update replaces the record. The joined date is never changed.
	Update(ctx context.Context, staff *entity.StaffRecord) error

	// Delete removes the record
	Delete(ctx context.Context, id int64) error
}
