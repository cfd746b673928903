package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Load caches its result, so the environment must be in place before the
	// first call.
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("CHECKIN_REWARD_POINTS", "7")
	os.Setenv("ALLOWED_ORIGINS", "https://learn.ndhu.edu.tw, https://staging.learn.ndhu.edu.tw")
	os.Exit(m.Run())
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	cfg := Load()

	// Environment wins over defaults.
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 7, cfg.CheckinRewardPoints)
	assert.Equal(t, []string{
		"https://learn.ndhu.edu.tw",
		"https://staging.learn.ndhu.edu.tw",
	}, cfg.AllowedOrigins)

	// Untouched values fall back to defaults.
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 20, cfg.UploadRewardPoints)
	assert.Equal(t, "gms.ndhu.edu.tw", cfg.EmailDomain)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestGetReturnsCachedConfig(t *testing.T) {
	first := Load()
	os.Setenv("CHECKIN_REWARD_POINTS", "99")
	second := Get()
	assert.Equal(t, first.CheckinRewardPoints, second.CheckinRewardPoints)
}
