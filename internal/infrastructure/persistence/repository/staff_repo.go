package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"go.uber.org/zap"
)

// StaffRepository implements port.StaffRepository over SQLite
type StaffRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *sql.DB, logger *zap.Logger) port.StaffRepository {
	return &StaffRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the staff record and assigns the new id to the entity
func (r *StaffRepository) Create(ctx context.Context, staff *entity.StaffRecord) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO staff (
			name, role, specialty, contact_person, contact_email, contact_phone,
			address_line1, address_line2, city, state, pincode, joined_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		staff.Name,
		staff.Role,
		staff.Specialty,
		staff.ContactPerson,
		staff.ContactEmail,
		staff.ContactPhone,
		staff.AddressLine1,
		staff.AddressLine2,
		staff.City,
		staff.State,
		staff.Pincode,
		staff.JoinedDate,
	)
	if err != nil {
		r.logger.Error("Failed to create staff record", zap.Error(err))
		return fmt.Errorf("failed to create staff record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	staff.ID = id
	return nil
}

// GetByID retrieves a staff record, or nil when absent
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*entity.StaffRecord, error) {
	row := r.db.QueryRowContext(ctx, selectStaff+` WHERE id = ?`, id)

	staff, err := scanStaff(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get staff record", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get staff record: %w", err)
	}
	return staff, nil
}

// GetAll retrieves all staff records, newest first
func (r *StaffRepository) GetAll(ctx context.Context) ([]*entity.StaffRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectStaff+` ORDER BY id DESC`)
	if err != nil {
		r.logger.Error("Failed to list staff records", zap.Error(err))
		return nil, fmt.Errorf("failed to list staff records: %w", err)
	}
	defer rows.Close()

	var records []*entity.StaffRecord
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff record: %w", err)
		}
		records = append(records, staff)
	}
	return records, rows.Err()
}

// Update replaces the staff record. The joined date column is deliberately
// left out: it is set once at creation.
func (r *StaffRepository) Update(ctx context.Context, staff *entity.StaffRecord) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE staff
		SET name = ?, role = ?, specialty = ?, contact_person = ?, contact_email = ?,
			contact_phone = ?, address_line1 = ?, address_line2 = ?, city = ?, state = ?, pincode = ?
		WHERE id = ?
	`,
		staff.Name,
		staff.Role,
		staff.Specialty,
		staff.ContactPerson,
		staff.ContactEmail,
		staff.ContactPhone,
		staff.AddressLine1,
		staff.AddressLine2,
		staff.City,
		staff.State,
		staff.Pincode,
		staff.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update staff record", zap.Int64("id", staff.ID), zap.Error(err))
		return fmt.Errorf("failed to update staff record: %w", err)
	}
	return nil
}

// Delete removes the staff record
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, id); err != nil {
		r.logger.Error("Failed to delete staff record", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete staff record: %w", err)
	}
	return nil
}

const selectStaff = `
	SELECT id, name, role, specialty, contact_person, contact_email, contact_phone,
		address_line1, address_line2, city, state, pincode, joined_date, created_at
	FROM staff`

func scanStaff(row rowScanner) (*entity.StaffRecord, error) {
	var staff entity.StaffRecord
	var specialty, email, line1, line2, city, state, pincode sql.NullString

	err := row.Scan(
		&staff.ID,
		&staff.Name,
		&staff.Role,
		&specialty,
		&staff.ContactPerson,
		&email,
		&staff.ContactPhone,
		&line1,
		&line2,
		&city,
		&state,
		&pincode,
		&staff.JoinedDate,
		&staff.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	staff.Specialty = specialty.String
	staff.ContactEmail = email.String
	staff.AddressLine1 = line1.String
	staff.AddressLine2 = line2.String
	staff.City = city.String
	staff.State = state.String
	staff.Pincode = pincode.String
	return &staff, nil
}

// Verify interface compliance
var _ port.StaffRepository = (*StaffRepository)(nil)
