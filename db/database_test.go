package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTursoDSN(t *testing.T) {
	t.Run("NoToken", func(t *testing.T) {
		assert.Equal(t, "libsql://clinic.turso.io", tursoDSN("libsql://clinic.turso.io", ""))
	})

	t.Run("AppendsToken", func(t *testing.T) {
		assert.Equal(t, "libsql://clinic.turso.io?authToken=abc", tursoDSN("libsql://clinic.turso.io", "abc"))
	})

	t.Run("KeepsExistingQuery", func(t *testing.T) {
		dsn := tursoDSN("libsql://clinic.turso.io?tls=1", "abc")
		assert.Contains(t, dsn, "tls=1")
		assert.Contains(t, dsn, "authToken=abc")
	})
}

func TestAutoMigrateWithoutInitialize(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()

	err := AutoMigrate()
	assert.Error(t, err)
}
