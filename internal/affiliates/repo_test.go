package affiliates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
)

func setupAffiliatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS affiliates (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  referral_code TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'active',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedAffiliate(t *testing.T, db *gorm.DB, name, code string, status enums.AffiliateStatus, createdAt time.Time) models.Affiliate {
	t.Helper()
	affiliate := models.Affiliate{
		ID:           uuid.New(),
		Name:         name,
		ReferralCode: code,
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&affiliate).Error)
	return affiliate
}

func TestRepositoryListAffiliatesNewestFirst(t *testing.T) {
	db := setupAffiliatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	older := seedAffiliate(t, db, "Older", "older1", enums.AffiliateStatusActive, base)
	newer := seedAffiliate(t, db, "Newer", "newer1", enums.AffiliateStatusActive, base.Add(time.Hour))

	affiliates, err := repo.ListAffiliates(ctx, ListAffiliatesQuery{})
	require.NoError(t, err)
	require.Len(t, affiliates, 2)
	assert.Equal(t, newer.ID, affiliates[0].ID)
	assert.Equal(t, older.ID, affiliates[1].ID)
}

func TestRepositoryListAffiliatesStatusFilter(t *testing.T) {
	db := setupAffiliatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	seedAffiliate(t, db, "Active", "act1", enums.AffiliateStatusActive, base)
	seedAffiliate(t, db, "Suspended", "sus1", enums.AffiliateStatusSuspended, base)

	active := enums.AffiliateStatusActive
	affiliates, err := repo.ListAffiliates(ctx, ListAffiliatesQuery{Status: &active})
	require.NoError(t, err)
	require.Len(t, affiliates, 1)
	assert.Equal(t, "Active", affiliates[0].Name)
}

func TestRepositoryFindAffiliateByCode(t *testing.T) {
	db := setupAffiliatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	seedAffiliate(t, db, "Inactive", "dormant1", enums.AffiliateStatusInactive, base)

	active := enums.AffiliateStatusActive
	found, err := repo.FindAffiliateByCode(ctx, "dormant1", &active)
	require.NoError(t, err)
	assert.Nil(t, found, "inactive affiliate must not resolve when filtering active")

	found, err = repo.FindAffiliateByCode(ctx, "dormant1", nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Inactive", found.Name)

	found, err = repo.FindAffiliateByCode(ctx, "unknown", nil)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryDeleteAffiliate(t *testing.T) {
	db := setupAffiliatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	affiliate := seedAffiliate(t, db, "ToDelete", "gone1", enums.AffiliateStatusActive, base)

	deleted, err := repo.DeleteAffiliate(ctx, affiliate.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteAffiliate(ctx, affiliate.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete should report no rows")
}
