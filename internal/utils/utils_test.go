package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET: from-file\nDB_DRIVER: sqlite\n"), 0o600))

	LoadConfigFrom(path)
	t.Cleanup(func() { config = Config{} })

	assert.Equal(t, "from-file", GetConfig("JWT_SECRET"))
	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
	assert.Equal(t, "admin@recipeapp.local", GetConfig("ADMIN_EMAIL"))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))

	t.Setenv("JWT_SECRET", "from-env")
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))

	SetConfig("DB_DRIVER", "postgres")
	assert.Equal(t, "postgres", GetConfig("DB_DRIVER"))
}

func TestHasDigitRule(t *testing.T) {
	InitValidator()

	type form struct {
		Password string `validate:"required,min=6,has_digit"`
	}

	assert.NoError(t, Validate.Struct(form{Password: "secret1"}))
	assert.Error(t, Validate.Struct(form{Password: "secrets"}))
	assert.Error(t, Validate.Struct(form{Password: "ab1"}))
}
