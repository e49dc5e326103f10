package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

type fakeReceiptRepo struct {
	receipts []*entity.Receipt
	nextID   int64
}

func (f *fakeReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	f.nextID++
	receipt.ID = f.nextID
	f.receipts = append(f.receipts, receipt)
	return nil
}

func (f *fakeReceiptRepo) GetByID(ctx context.Context, id int64) (*entity.Receipt, error) {
	for _, r := range f.receipts {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) GetAll(ctx context.Context) ([]*entity.Receipt, error) {
	return f.receipts, nil
}

func (f *fakeReceiptRepo) GetByMonth(ctx context.Context, year int, month time.Month) ([]*entity.Receipt, error) {
	var found []*entity.Receipt
	for _, r := range f.receipts {
		if r.InMonth(year, month) {
			found = append(found, r)
		}
	}
	return found, nil
}

func (f *fakeReceiptRepo) Update(ctx context.Context, receipt *entity.Receipt) error { return nil }
func (f *fakeReceiptRepo) Delete(ctx context.Context, id int64) error                { return nil }

func newTestReceiptService() (ReceiptService, *fakeReceiptRepo) {
	repo := &fakeReceiptRepo{}
	svc := NewReceiptService(repo, noopLogger{})
	return svc, repo
}

func TestCreateDefaultsStatusAndNumber(t *testing.T) {
	svc, _ := newTestReceiptService()

	created, err := svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "2024-07-15",
		Items:        []entity.OfferingItem{{ID: "itm-1", Description: "Archana", Amount: 200}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCompleted, created.Status)
	assert.Regexp(t, `^REC-\d{5}$`, created.ReceiptNumber)
	assert.NotZero(t, created.ID)
}

func TestCreateKeepsExplicitNumber(t *testing.T) {
	svc, _ := newTestReceiptService()

	created, err := svc.Create(context.Background(), &entity.Receipt{
		ReceiptNumber: "REC-77777",
		DevoteeName:   "Kumar",
		OfferingDate:  "2024-07-15",
		Items:         []entity.OfferingItem{{ID: "itm-1", Description: "Archana", Amount: 200}},
	})
	require.NoError(t, err)
	assert.Equal(t, "REC-77777", created.ReceiptNumber)
}

func TestCreateRejectsCompletedWithoutItems(t *testing.T) {
	svc, repo := newTestReceiptService()

	_, err := svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "2024-07-15",
	})
	assert.ErrorIs(t, err, ErrNoItems)
	assert.Empty(t, repo.receipts)
}

func TestCreateAllowsDraftWithoutItems(t *testing.T) {
	svc, _ := newTestReceiptService()

	created, err := svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "2024-07-15",
		Status:       entity.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, created.Status)
}

func TestCreateRejectsNegativeAmount(t *testing.T) {
	svc, _ := newTestReceiptService()

	_, err := svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "2024-07-15",
		Items:        []entity.OfferingItem{{ID: "itm-1", Description: "Archana", Amount: -5}},
	})
	assert.Error(t, err)
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc, _ := newTestReceiptService()

	_, err := svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "15/07/2024",
		Items:        []entity.OfferingItem{{ID: "itm-1", Description: "Archana", Amount: 200}},
	})
	assert.Error(t, err)
}

func TestCreateValidatesMobileNumber(t *testing.T) {
	svc, _ := newTestReceiptService()

	_, err := svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "2024-07-15",
		MobileNumber: "12345",
		Items:        []entity.OfferingItem{{ID: "itm-1", Description: "Archana", Amount: 200}},
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "2024-07-15",
		MobileNumber: "+91 98765 43210",
		Items:        []entity.OfferingItem{{ID: "itm-1", Description: "Archana", Amount: 200}},
	})
	assert.NoError(t, err)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestReceiptService()

	_, err := svc.Create(context.Background(), &entity.Receipt{
		DevoteeName:  "Kumar",
		OfferingDate: "2024-07-15",
		Status:       entity.ReceiptStatus("archived"),
		Items:        []entity.OfferingItem{{ID: "itm-1", Description: "Archana", Amount: 200}},
	})
	assert.Error(t, err)
}

func TestYearSummaryCoversAllMonths(t *testing.T) {
	svc, repo := newTestReceiptService()
	repo.receipts = []*entity.Receipt{
		{ID: 1, OfferingDate: "2024-07-15", Items: []entity.OfferingItem{{Amount: 200}}},
		{ID: 2, OfferingDate: "2024-07-20", Items: []entity.OfferingItem{{Amount: 1500}}},
		{ID: 3, OfferingDate: "2024-08-02", Items: []entity.OfferingItem{{Amount: 100}}},
	}

	summaries, err := svc.YearSummary(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, summaries, 12)

	july := summaries[6]
	assert.Equal(t, "July", july.Month)
	assert.Equal(t, 2, july.Count)
	assert.Equal(t, 1700.0, july.Total)

	august := summaries[7]
	assert.Equal(t, 1, august.Count)
	assert.Equal(t, 100.0, august.Total)

	// months without receipts still appear with zero values
	january := summaries[0]
	assert.Zero(t, january.Count)
	assert.Zero(t, january.Total)
}
