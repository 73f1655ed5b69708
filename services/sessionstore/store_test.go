package sessionstore

import (
	"context"
	"dental_care_app_go/config"
	"dental_care_app_go/models"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SessionFlag{}))
	return db
}

func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("MissingKey", func(t *testing.T) {
		v, ok, err := store.Get(ctx, "tab-a", "booking_modal_interacted")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tab-a", "booking_modal_interacted", "true"))
		v, ok, err := store.Get(ctx, "tab-a", "booking_modal_interacted")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "true", v)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tab-a", "theme", "light"))
		require.NoError(t, store.Set(ctx, "tab-a", "theme", "dark"))
		v, _, err := store.Get(ctx, "tab-a", "theme")
		assert.NoError(t, err)
		assert.Equal(t, "dark", v)
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "tab-b", "booking_modal_interacted")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EmptySessionRejected", func(t *testing.T) {
		assert.ErrorIs(t, store.Set(ctx, "", "k", "v"), ErrNoSession)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore(time.Hour))

	t.Run("Expiry", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		store := NewMemoryStore(time.Hour)
		store.now = func() time.Time { return now }

		require.NoError(t, store.Set(ctx, "tab-x", "k", "v"))
		now = now.Add(2 * time.Hour)

		_, ok, err := store.Get(ctx, "tab-x", "k")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, store.Cleanup())
		assert.Equal(t, 0, store.Cleanup())
	})

	t.Run("ReadsSlideExpiry", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		store := NewMemoryStore(time.Hour)
		store.now = func() time.Time { return now }

		require.NoError(t, store.Set(ctx, "tab-1", "booking_modal_interacted", "true"))
		for i := 0; i < 4; i++ {
			now = now.Add(40 * time.Minute)
			v, ok, err := store.Get(ctx, "tab-1", "booking_modal_interacted")
			require.NoError(t, err)
			require.True(t, ok, "read %d after %s", i, 40*time.Minute*time.Duration(i+1))
			assert.Equal(t, "true", v)
		}
		assert.Equal(t, 0, store.Cleanup())

		now = now.Add(61 * time.Minute)
		_, ok, err := store.Get(ctx, "tab-1", "booking_modal_interacted")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, time.Hour)

	runStoreContract(t, store)

	t.Run("KeyLayoutAndTTL", func(t *testing.T) {
		require.NoError(t, store.Set(context.Background(), "tab-r", "booking_modal_interacted", "true"))
		assert.Equal(t, "true", mr.HGet("dental:session:tab-r", "booking_modal_interacted"))
		assert.Equal(t, time.Hour, mr.TTL("dental:session:tab-r"))

		mr.FastForward(2 * time.Hour)
		_, ok, err := store.Get(context.Background(), "tab-r", "booking_modal_interacted")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ReadsRefreshTTL", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "tab-slide", "booking_modal_interacted", "true"))

		for i := 0; i < 4; i++ {
			mr.FastForward(40 * time.Minute)
			_, ok, err := store.Get(ctx, "tab-slide", "booking_modal_interacted")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, time.Hour, mr.TTL("dental:session:tab-slide"))
		}

		_, ok, err := store.Get(ctx, "tab-none", "booking_modal_interacted")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, mr.Exists("dental:session:tab-none"))
	})

	t.Run("ConnectionError", func(t *testing.T) {
		mr.SetError("boom")
		defer mr.SetError("")
		_, _, err := store.Get(context.Background(), "tab-r", "k")
		assert.Error(t, err)
	})
}

func TestDatabaseStore(t *testing.T) {
	db := setupTestDB(t)
	store := NewDatabaseStore(db, time.Hour)

	runStoreContract(t, store)

	t.Run("ExpiredFlagsAreHiddenAndCleaned", func(t *testing.T) {
		ctx := context.Background()
		now := time.Now()
		store.now = func() time.Time { return now }
		require.NoError(t, store.Set(ctx, "tab-old", "k", "v"))

		now = now.Add(2 * time.Hour)
		_, ok, err := store.Get(ctx, "tab-old", "k")
		assert.NoError(t, err)
		assert.False(t, ok)

		removed, err := store.CleanupExpired(ctx)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, removed, int64(1))
	})

	t.Run("ReadsSlideExpiry", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }
		require.NoError(t, store.Set(ctx, "tab-live", "booking_modal_interacted", "true"))
		require.NoError(t, store.Set(ctx, "tab-live", "theme", "dark"))

		for i := 0; i < 4; i++ {
			now = now.Add(40 * time.Minute)
			_, ok, err := store.Get(ctx, "tab-live", "booking_modal_interacted")
			require.NoError(t, err)
			require.True(t, ok)
		}

		var flags []models.SessionFlag
		require.NoError(t, db.Where("session_id = ?", "tab-live").Find(&flags).Error)
		require.Len(t, flags, 2)
		for _, f := range flags {
			assert.True(t, now.Add(time.Hour).Equal(f.ExpiresAt), f.Key)
		}

		now = now.Add(61 * time.Minute)
		_, ok, err := store.Get(ctx, "tab-live", "booking_modal_interacted")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	scope := NewScope(store, "tab-s")
	assert.Equal(t, "tab-s", scope.SessionID())
	require.NoError(t, scope.Set(ctx, "booking_modal_interacted", "true"))

	v, ok, err := store.Get(ctx, "tab-s", "booking_modal_interacted")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	empty := NewScope(store, "")
	_, _, err = empty.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, empty.Set(ctx, "k", "v"), ErrNoSession)
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		store, err := New(ctx, &config.Config{SessionStore: config.SessionStoreMemory}, nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("Database", func(t *testing.T) {
		store, err := New(ctx, &config.Config{SessionStore: config.SessionStoreDatabase}, setupTestDB(t))
		require.NoError(t, err)
		assert.IsType(t, &DatabaseStore{}, store)
	})

	t.Run("DatabaseWithoutDB", func(t *testing.T) {
		_, err := New(ctx, &config.Config{SessionStore: config.SessionStoreDatabase}, nil)
		assert.Error(t, err)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := New(ctx, &config.Config{SessionStore: config.SessionStoreRedis, RedisURL: "redis://" + mr.Addr() + "/0"}, nil)
		require.NoError(t, err)
		assert.IsType(t, &RedisStore{}, store)
	})

	t.Run("RedisBadURL", func(t *testing.T) {
		_, err := New(ctx, &config.Config{SessionStore: config.SessionStoreRedis, RedisURL: "::not a url"}, nil)
		assert.Error(t, err)
	})
}
