package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("ES_INDEX", "")
	t.Setenv("COOKIE_SECURE", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []byte("s3cret"), cfg.JWTAccessSecret)
	assert.True(t, cfg.CookieSecure)
}

func TestEnvIntDefault_BadValue(t *testing.T) {
	t.Setenv("SOME_INT", "nope")
	assert.Equal(t, 3, EnvIntDefault("SOME_INT", 3))
}
