package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"go.uber.org/zap"
)

// ReceiptRepository implements port.ReceiptRepository over SQLite
type ReceiptRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *sql.DB, logger *zap.Logger) port.ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the receipt and its items in one transaction and assigns
// the new id to the entity.
func (r *ReceiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO receipts (receipt_number, devotee_name, offering_date, status, notes, mobile_number)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		receipt.ReceiptNumber,
		receipt.DevoteeName,
		receipt.OfferingDate,
		receipt.Status,
		receipt.Notes,
		receipt.MobileNumber,
	)
	if err != nil {
		r.logger.Error("Failed to create receipt", zap.Error(err))
		return fmt.Errorf("failed to create receipt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := insertItems(ctx, tx, id, receipt.Items); err != nil {
		r.logger.Error("Failed to create offering items", zap.Int64("receipt_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	receipt.ID = id
	return nil
}

// GetByID retrieves a receipt with its items, or nil when absent
func (r *ReceiptRepository) GetByID(ctx context.Context, id int64) (*entity.Receipt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, receipt_number, devotee_name, offering_date, status, notes, mobile_number, created_at
		FROM receipts
		WHERE id = ?
	`, id)

	receipt, err := scanReceipt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get receipt by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	if err := r.loadItems(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetAll retrieves all receipts with their items, newest first
func (r *ReceiptRepository) GetAll(ctx context.Context) ([]*entity.Receipt, error) {
	return r.list(ctx, `
		SELECT id, receipt_number, devotee_name, offering_date, status, notes, mobile_number, created_at
		FROM receipts
		ORDER BY id DESC
	`)
}

// GetByMonth retrieves receipts whose offering date falls in the given
// year and month, newest first.
func (r *ReceiptRepository) GetByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Receipt, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	return r.list(ctx, `
		SELECT id, receipt_number, devotee_name, offering_date, status, notes, mobile_number, created_at
		FROM receipts
		WHERE offering_date LIKE ? || '%'
		ORDER BY id DESC
	`, prefix)
}

// Update replaces the receipt row and rewrites its items
func (r *ReceiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE receipts
		SET receipt_number = ?, devotee_name = ?, offering_date = ?, status = ?, notes = ?, mobile_number = ?
		WHERE id = ?
	`,
		receipt.ReceiptNumber,
		receipt.DevoteeName,
		receipt.OfferingDate,
		receipt.Status,
		receipt.Notes,
		receipt.MobileNumber,
		receipt.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update receipt", zap.Int64("id", receipt.ID), zap.Error(err))
		return fmt.Errorf("failed to update receipt: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM offering_items WHERE receipt_id = ?`, receipt.ID); err != nil {
		return fmt.Errorf("failed to clear offering items: %w", err)
	}
	if err := insertItems(ctx, tx, receipt.ID, receipt.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes the receipt; items go with it via the foreign key cascade
func (r *ReceiptRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = ?`, id); err != nil {
		r.logger.Error("Failed to delete receipt", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return nil
}

func (r *ReceiptRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list receipts", zap.Error(err))
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*entity.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, receipt := range receipts {
		if err := r.loadItems(ctx, receipt); err != nil {
			return nil, err
		}
	}
	return receipts, nil
}

func (r *ReceiptRepository) loadItems(ctx context.Context, receipt *entity.Receipt) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, description, amount
		FROM offering_items
		WHERE receipt_id = ?
		ORDER BY position
	`, receipt.ID)
	if err != nil {
		r.logger.Error("Failed to load offering items", zap.Int64("receipt_id", receipt.ID), zap.Error(err))
		return fmt.Errorf("failed to load offering items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OfferingItem
		if err := rows.Scan(&item.ID, &item.Description, &item.Amount); err != nil {
			return fmt.Errorf("failed to scan offering item: %w", err)
		}
		receipt.Items = append(receipt.Items, item)
	}
	return rows.Err()
}

func insertItems(ctx context.Context, tx *sql.Tx, receiptID int64, items []entity.OfferingItem) error {
	for position, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO offering_items (receipt_id, item_id, description, amount, position)
			VALUES (?, ?, ?, ?, ?)
		`, receiptID, item.ID, item.Description, item.Amount, position)
		if err != nil {
			return fmt.Errorf("failed to insert offering item: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReceipt(row rowScanner) (*entity.Receipt, error) {
	var receipt entity.Receipt
	var notes, mobile sql.NullString

	err := row.Scan(
		&receipt.ID,
		&receipt.ReceiptNumber,
		&receipt.DevoteeName,
		&receipt.OfferingDate,
		&receipt.Status,
		&notes,
		&mobile,
		&receipt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	receipt.Notes = notes.String
	receipt.MobileNumber = mobile.String
	return &receipt, nil
}

// Verify interface compliance
var _ port.ReceiptRepository = (*ReceiptRepository)(nil)
