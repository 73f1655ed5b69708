package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"dental_care_app_go/config"
	"dental_care_app_go/models"
	"dental_care_app_go/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:jobs_" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Lead{}))
	return db
}

type fakeCleaner struct {
	removed int64
	err     error
}

func (f *fakeCleaner) CleanupExpired(ctx context.Context) (int64, error) {
	return f.removed, f.err
}

func TestNewScheduler(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{
		LeadExportCron: "30 23 * * *",
		LeadDigestCron: "0 9 * * *",
		Timezone:       "Asia/Kolkata",
	}

	t.Run("RegistersAllJobs", func(t *testing.T) {
		c, err := NewScheduler(Deps{
			Config:   cfg,
			Leads:    services.NewLeadService(db, nil),
			Storage:  services.NewLocalStorage(t.TempDir()),
			Sessions: &fakeCleaner{},
		})
		require.NoError(t, err)
		assert.Len(t, c.Entries(), 3)
		assert.Equal(t, "Asia/Kolkata", c.Location().String())
	})

	t.Run("SkipsJobsWithoutDeps", func(t *testing.T) {
		c, err := NewScheduler(Deps{Config: cfg})
		require.NoError(t, err)
		assert.Empty(t, c.Entries())
	})

	t.Run("InvalidCron", func(t *testing.T) {
		bad := *cfg
		bad.LeadDigestCron = "every morning"
		_, err := NewScheduler(Deps{Config: &bad, Leads: services.NewLeadService(db, nil)})
		assert.Error(t, err)
	})

	t.Run("ConfigRequired", func(t *testing.T) {
		_, err := NewScheduler(Deps{})
		assert.Error(t, err)
	})
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.Equal(t, "Asia/Kolkata", Location("Asia/Kolkata").String())
}

func TestSendLeadDigest(t *testing.T) {
	db := setupTestDB(t)
	leads := services.NewLeadService(db, nil)
	ctx := context.Background()
	cfg := &config.Config{EmailTestMode: true, ClinicNotifyEmail: "desk@clinic.test"}

	sent, err := SendLeadDigest(ctx, leads, cfg)
	require.NoError(t, err)
	assert.Zero(t, sent)

	require.NoError(t, db.Create(&models.Lead{Name: "Priya", Phone: "9876543210", Source: models.LeadSourceInline}).Error)
	require.NoError(t, db.Create(&models.Lead{Name: "Amit", Phone: "9876543211", Source: models.LeadSourceModal}).Error)

	sent, err = SendLeadDigest(ctx, leads, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	sent, err = SendLeadDigest(ctx, leads, cfg)
	require.NoError(t, err)
	assert.Zero(t, sent, "leads already in a digest are not resent")
}

func TestSendLeadDigest_NoRecipient(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Lead{Name: "Priya", Phone: "9876543210", Source: models.LeadSourceInline}).Error)

	sent, err := SendLeadDigest(context.Background(), services.NewLeadService(db, nil), &config.Config{EmailTestMode: true})
	require.NoError(t, err)
	assert.Zero(t, sent)

	var pending int64
	db.Model(&models.Lead{}).Where("digest_sent_at IS NULL").Count(&pending)
	assert.Equal(t, int64(1), pending)
}

func TestExportDailyLeads(t *testing.T) {
	db := setupTestDB(t)
	storage := services.NewLocalStorage(t.TempDir())
	day := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)

	result, err := ExportDailyLeads(context.Background(), services.NewLeadService(db, nil), storage, day, 0)
	require.NoError(t, err)
	assert.Equal(t, services.GenerateLeadExportKey(day), result.Key)
	assert.Positive(t, result.FileSize)
}

func TestExportDailyLeads_Retention(t *testing.T) {
	db := setupTestDB(t)
	leads := services.NewLeadService(db, nil)
	storage := services.NewLocalStorage(t.TempDir())
	ctx := context.Background()
	first := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := ExportDailyLeads(ctx, leads, storage, first.AddDate(0, 0, i), 48*time.Hour)
		require.NoError(t, err)
	}

	_, _, err := storage.Get(ctx, services.GenerateLeadExportKey(first))
	assert.ErrorIs(t, err, services.ErrObjectNotFound, "export older than the window is deleted")

	for _, day := range []time.Time{first.AddDate(0, 0, 1), first.AddDate(0, 0, 2)} {
		reader, _, err := storage.Get(ctx, services.GenerateLeadExportKey(day))
		require.NoError(t, err, day.Format(services.DayLayout))
		reader.Close()
	}
}

func TestCleanupSessionFlags(t *testing.T) {
	removed, err := CleanupSessionFlags(context.Background(), &fakeCleaner{removed: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	_, err = CleanupSessionFlags(context.Background(), &fakeCleaner{err: errors.New("locked")})
	assert.Error(t, err)
}
