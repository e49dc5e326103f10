package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	// a second pool connection would see a fresh empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

func TestReceiptRoundTrip(t *testing.T) {
	repo := NewReceiptRepository(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	receipt := &entity.Receipt{
		ReceiptNumber: "REC-10055",
		DevoteeName:   "Kumar",
		OfferingDate:  "2024-07-15",
		Status:        entity.StatusCompleted,
		Notes:         "Morning pooja",
		MobileNumber:  "9876543210",
		Items: []entity.OfferingItem{
			{ID: "itm-1", Description: "Archana", Amount: 200},
			{ID: "itm-2", Description: "Prasadam", Amount: 100},
		},
	}

	require.NoError(t, repo.Create(ctx, receipt))
	require.NotZero(t, receipt.ID)

	got, err := repo.GetByID(ctx, receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "REC-10055", got.ReceiptNumber)
	assert.Equal(t, "Kumar", got.DevoteeName)
	assert.Equal(t, "Morning pooja", got.Notes)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Archana", got.Items[0].Description)
	assert.Equal(t, 300.0, got.TotalAmount())
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	repo := NewReceiptRepository(setupTestDB(t), zap.NewNop())

	got, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetByMonthFiltersOnOfferingDate(t *testing.T) {
	repo := NewReceiptRepository(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	for _, r := range []*entity.Receipt{
		{ReceiptNumber: "REC-1", DevoteeName: "Kumar", OfferingDate: "2024-07-15", Status: entity.StatusCompleted,
			Items: []entity.OfferingItem{{ID: "a", Description: "Archana", Amount: 200}}},
		{ReceiptNumber: "REC-2", DevoteeName: "Priya", OfferingDate: "2024-08-02", Status: entity.StatusCompleted,
			Items: []entity.OfferingItem{{ID: "b", Description: "Abhishekam", Amount: 1500}}},
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	july, err := repo.GetByMonth(ctx, 2024, time.July)
	require.NoError(t, err)
	require.Len(t, july, 1)
	assert.Equal(t, "REC-1", july[0].ReceiptNumber)

	december, err := repo.GetByMonth(ctx, 2024, time.December)
	require.NoError(t, err)
	assert.Empty(t, december)
}

func TestUpdateRewritesItems(t *testing.T) {
	repo := NewReceiptRepository(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	receipt := &entity.Receipt{
		ReceiptNumber: "REC-1",
		DevoteeName:   "Kumar",
		OfferingDate:  "2024-07-15",
		Status:        entity.StatusCompleted,
		Items:         []entity.OfferingItem{{ID: "a", Description: "Archana", Amount: 200}},
	}
	require.NoError(t, repo.Create(ctx, receipt))

	receipt.DevoteeName = "Kumar S"
	receipt.Items = []entity.OfferingItem{
		{ID: "b", Description: "Abhishekam", Amount: 1500},
		{ID: "c", Description: "Prasadam", Amount: 100},
	}
	require.NoError(t, repo.Update(ctx, receipt))

	got, err := repo.GetByID(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kumar S", got.DevoteeName)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Abhishekam", got.Items[0].Description)
}

func TestDeleteCascadesItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReceiptRepository(db, zap.NewNop())
	ctx := context.Background()

	receipt := &entity.Receipt{
		ReceiptNumber: "REC-1",
		DevoteeName:   "Kumar",
		OfferingDate:  "2024-07-15",
		Status:        entity.StatusCompleted,
		Items:         []entity.OfferingItem{{ID: "a", Description: "Archana", Amount: 200}},
	}
	require.NoError(t, repo.Create(ctx, receipt))
	require.NoError(t, repo.Delete(ctx, receipt.ID))

	got, err := repo.GetByID(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM offering_items").Scan(&count))
	assert.Zero(t, count)
}

func TestStaffRoundTrip(t *testing.T) {
	repo := NewStaffRepository(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	staff := &entity.StaffRecord{
		Name:         "Raman",
		Role:         entity.RoleHeadPriest,
		Specialty:    "Vedic rituals",
		ContactPhone: "9876543210",
		City:         "Madurai",
		JoinedDate:   "2024-01-10",
	}
	require.NoError(t, repo.Create(ctx, staff))
	require.NotZero(t, staff.ID)

	got, err := repo.GetByID(ctx, staff.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Raman", got.Name)
	assert.Equal(t, "Vedic rituals", got.Specialty)

	// joined date survives an update that tries to change it
	got.JoinedDate = "2030-01-01"
	got.City = "Chennai"
	require.NoError(t, repo.Update(ctx, got))

	after, err := repo.GetByID(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", after.JoinedDate)
	assert.Equal(t, "Chennai", after.City)
}
