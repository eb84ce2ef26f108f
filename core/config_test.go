package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "TEST")

	conf, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "Maendeleo", conf.AppName)
	assert.NotEmpty(t, conf.SecretKey)
	assert.Equal(t, 7*24*time.Hour, conf.JWTExpirationDelta)
	assert.Equal(t, "postgres", conf.Database.Engine)
	assert.Equal(t, "localhost:5432", conf.Database.Address())
	assert.Equal(t, 8, conf.Progress.DashboardConcurrency)
}

func TestNewConfig_defaultEnv(t *testing.T) {
	t.Setenv("ENV", "")

	conf, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	assert.Equal(t, "DEV", conf.Env)
	assert.False(t, conf.TestMode)
}
