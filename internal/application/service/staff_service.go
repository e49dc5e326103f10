package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"github.com/kovilapp/temple-admin/pkg/utils"
)

// StaffService manages priest and sevadar records
type StaffService interface {
	Create(ctx context.Context, staff *entity.StaffRecord) (*entity.StaffRecord, error)
	Get(ctx context.Context, id int64) (*entity.StaffRecord, error)
	List(ctx context.Context) ([]*entity.StaffRecord, error)
	Update(ctx context.Context, staff *entity.StaffRecord) error
	Delete(ctx context.Context, id int64) error
}

type staffServiceImpl struct {
	repo   port.StaffRepository
	logger Logger
	now    func() time.Time
}

// NewStaffService creates a new StaffService
func NewStaffService(repo port.StaffRepository, logger Logger) StaffService {
	return &staffServiceImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and persists the record. The joined date is set here,
// once, to the current date; it is never mutated afterwards.
func (s *staffServiceImpl) Create(ctx context.Context, staff *entity.StaffRecord) (*entity.StaffRecord, error) {
	if staff.Name == "" {
		return nil, fmt.Errorf("staff name is required")
	}
	if staff.Role == "" {
		return nil, fmt.Errorf("staff role is required")
	}
	if staff.ContactEmail != "" {
		if err := utils.ValidateEmail(staff.ContactEmail); err != nil {
			return nil, err
		}
	}
	if staff.ContactPhone != "" {
		if err := utils.ValidateIndianMobile(staff.ContactPhone); err != nil {
			return nil, err
		}
	}

	staff.JoinedDate = s.now().Format("2006-01-02")

	if err := s.repo.Create(ctx, staff); err != nil {
		s.logger.Error("Failed to create staff record", "error", err, "name", staff.Name)
		return nil, fmt.Errorf("create staff record: %w", err)
	}

	s.logger.Info("Staff record created", "name", staff.Name, "role", staff.Role)
	return staff, nil
}

// Get returns the record with the given id, or nil if absent
func (s *staffServiceImpl) Get(ctx context.Context, id int64) (*entity.StaffRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all staff records, newest first
func (s *staffServiceImpl) List(ctx context.Context) ([]*entity.StaffRecord, error) {
	return s.repo.GetAll(ctx)
}

// Update replaces an existing record, keeping its original joined date
func (s *staffServiceImpl) Update(ctx context.Context, staff *entity.StaffRecord) error {
	return s.repo.Update(ctx, staff)
}

// Delete removes a staff record
func (s *staffServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
