package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"github.com/kovilapp/temple-admin/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrNoItems is returned when a non-draft receipt is created without items
var ErrNoItems = errors.New("receipt must have at least one offering item")

// MonthSummary aggregates one month of receipts for the dashboard and
// history views.
type MonthSummary struct {
	Year  int     `json:"year"`
	Month string  `json:"month"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// ReceiptService manages donation receipts
type ReceiptService interface {
	Create(ctx context.Context, receipt *entity.Receipt) (*entity.Receipt, error)
	Get(ctx context.Context, id int64) (*entity.Receipt, error)
	List(ctx context.Context) ([]*entity.Receipt, error)
	ListByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id int64) error
	YearSummary(ctx context.Context, year int) ([]MonthSummary, error)
}

type receiptServiceImpl struct {
	repo      port.ReceiptRepository
	logger    Logger
	newNumber func() string
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(repo port.ReceiptRepository, logger Logger) ReceiptService {
	return &receiptServiceImpl{
		repo:      repo,
		logger:    logger,
		newNumber: randomReceiptNumber,
	}
}

// Create validates the receipt, assigns a display number when missing and
// persists it. Draft receipts may be item-less; committed receipts may not.
func (s *receiptServiceImpl) Create(ctx context.Context, receipt *entity.Receipt) (*entity.Receipt, error) {
	if receipt.Status == "" {
		receipt.Status = entity.StatusCompleted
	}
	if !receipt.Status.IsValid() {
		return nil, fmt.Errorf("invalid receipt status: %s", receipt.Status)
	}
	if receipt.Status != entity.StatusDraft && len(receipt.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range receipt.Items {
		if item.Amount < 0 {
			return nil, fmt.Errorf("offering amount must not be negative: %s", item.Description)
		}
	}
	if receipt.OfferingDate != "" {
		if err := utils.ValidateDate(receipt.OfferingDate); err != nil {
			return nil, err
		}
	}
	if receipt.MobileNumber != "" {
		if err := utils.ValidateIndianMobile(receipt.MobileNumber); err != nil {
			return nil, err
		}
	}

	if receipt.ReceiptNumber == "" {
		receipt.ReceiptNumber = s.newNumber()
	}

	if err := s.repo.Create(ctx, receipt); err != nil {
		s.logger.Error("Failed to create receipt", "error", err, "receipt_number", receipt.ReceiptNumber)
		return nil, fmt.Errorf("create receipt: %w", err)
	}

	s.logger.Info("Receipt created",
		"receipt_number", receipt.ReceiptNumber,
		"devotee", receipt.DevoteeName,
		"total", receipt.TotalAmount(),
	)
	return receipt, nil
}

// Get returns the receipt with the given id, or nil if absent
func (s *receiptServiceImpl) Get(ctx context.Context, id int64) (*entity.Receipt, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all receipts, newest first
func (s *receiptServiceImpl) List(ctx context.Context) ([]*entity.Receipt, error) {
	return s.repo.GetAll(ctx)
}

// ListByMonth returns the receipts of one month, newest first
func (s *receiptServiceImpl) ListByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Receipt, error) {
	return s.repo.GetByMonth(ctx, year, month)
}

// Update replaces an existing receipt
func (s *receiptServiceImpl) Update(ctx context.Context, receipt *entity.Receipt) error {
	if receipt.Status != entity.StatusDraft && len(receipt.Items) == 0 {
		return ErrNoItems
	}
	return s.repo.Update(ctx, receipt)
}

// Delete removes a receipt
func (s *receiptServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// YearSummary aggregates receipt count and grand total per month of a year.
// Months without receipts are included with zero values so history views
// can render a full year.
func (s *receiptServiceImpl) YearSummary(ctx context.Context, year int) ([]MonthSummary, error) {
	summaries := make([]MonthSummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		receipts, err := s.repo.GetByMonth(ctx, year, m)
		if err != nil {
			return nil, fmt.Errorf("year summary: %w", err)
		}
		summary := MonthSummary{Year: year, Month: m.String()}
		for _, r := range receipts {
			summary.Count++
			summary.Total += r.TotalAmount()
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// randomReceiptNumber produces the human-readable display id. Uniqueness of
// the display id is not enforced; the database id is the identity.
func randomReceiptNumber() string {
	return fmt.Sprintf("REC-%05d", 10000+rand.Intn(90000))
}
