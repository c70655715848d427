// File: internal/property/service_test.go
package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shortstay_backend/internal/common"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Property{}))
	return db
}

func newService(db *gorm.DB) Service {
	return NewService(NewGORMRepository(db), zap.NewNop())
}

func TestCreateGeneratesSlugFromTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)

	resp, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		Title:        "Sunny Canal Apartment",
		City:         "Amsterdam",
		NightlyPrice: 110,
		MaxGuests:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, "sunny-canal-apartment", resp.Slug)
	assert.Equal(t, StatusDraft, resp.Status)
}

func TestCreateDisambiguatesDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, uuid.New(), CreateRequest{
		Title: "Sunny Canal Apartment", City: "Amsterdam", NightlyPrice: 110, MaxGuests: 3,
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, uuid.New(), CreateRequest{
		Title: "Sunny Canal Apartment", City: "Amsterdam", NightlyPrice: 90, MaxGuests: 2,
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "sunny-canal-apartment-")
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	hostID := uuid.New()
	created, err := svc.Create(ctx, hostID, CreateRequest{
		Title: "Loft", City: "Haarlem", NightlyPrice: 80, MaxGuests: 2,
	})
	require.NoError(t, err)

	price := 99.0
	_, err = svc.Update(ctx, uuid.New(), common.RoleHost, created.ID, UpdateRequest{NightlyPrice: &price})
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Admins bypass the ownership check.
	updated, err := svc.Update(ctx, uuid.New(), common.RoleAdmin, created.ID, UpdateRequest{NightlyPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 99.0, updated.NightlyPrice)
}

func TestUpdatePartialFieldSemantics(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	hostID := uuid.New()
	created, err := svc.Create(ctx, hostID, CreateRequest{
		Title: "Loft", Description: "Cozy", City: "Haarlem", NightlyPrice: 80, MaxGuests: 2,
	})
	require.NoError(t, err)

	status := StatusListed
	updated, err := svc.Update(ctx, hostID, common.RoleHost, created.ID, UpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, StatusListed, updated.Status)
	assert.Equal(t, "Cozy", updated.Description)
	assert.Equal(t, 80.0, updated.NightlyPrice)
}

func TestSearchFiltersListedOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()
	hostID := uuid.New()

	listed, err := svc.Create(ctx, hostID, CreateRequest{
		Title: "Visible", City: "Delft", NightlyPrice: 70, MaxGuests: 2,
	})
	require.NoError(t, err)
	status := StatusListed
	_, err = svc.Update(ctx, hostID, common.RoleHost, listed.ID, UpdateRequest{Status: &status})
	require.NoError(t, err)

	_, err = svc.Create(ctx, hostID, CreateRequest{
		Title: "Hidden Draft", City: "Delft", NightlyPrice: 70, MaxGuests: 2,
	})
	require.NoError(t, err)

	results, total, err := svc.Search(ctx, SearchParams{City: "delft", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "Visible", results[0].Title)
}

func TestSearchFiltersByPriceAndGuests(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()
	hostID := uuid.New()

	for _, seed := range []struct {
		title  string
		price  float64
		guests int
	}{
		{"Budget Room", 40, 1},
		{"Family House", 150, 6},
		{"Mid Flat", 90, 3},
	} {
		created, err := svc.Create(ctx, hostID, CreateRequest{
			Title: seed.title, City: "Breda", NightlyPrice: seed.price, MaxGuests: seed.guests,
		})
		require.NoError(t, err)
		status := StatusListed
		_, err = svc.Update(ctx, hostID, common.RoleHost, created.ID, UpdateRequest{Status: &status})
		require.NoError(t, err)
	}

	results, total, err := svc.Search(ctx, SearchParams{
		City: "Breda", MinPrice: 50, MaxPrice: 120, Guests: 2, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "Mid Flat", results[0].Title)
}
