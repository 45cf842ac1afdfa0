package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Password: "secret"},
		JWT: JWTConfig{
			Secret:            "jwt",
			AccessExpiration:  "1h",
			RefreshExpiration: "168h",
			KioskExpiration:   "720h",
		},
		App: AppConfig{Timezone: "Asia/Tokyo"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing db password", func(t *testing.T) {
		c := validConfig()
		c.Database.Password = ""
		assert.ErrorContains(t, c.Validate(), "DB_PASSWORD")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := validConfig()
		c.JWT.Secret = ""
		assert.ErrorContains(t, c.Validate(), "JWT_SECRET_KEY")
	})

	t.Run("bad duration", func(t *testing.T) {
		c := validConfig()
		c.JWT.KioskExpiration = "forever"
		assert.ErrorContains(t, c.Validate(), "KIOSK_TOKEN_EXPIRATION_TIME")
	})

	t.Run("bad timezone", func(t *testing.T) {
		c := validConfig()
		c.App.Timezone = "Mars/Olympus"
		assert.ErrorContains(t, c.Validate(), "APP_TIMEZONE")
	})

	t.Run("google scopes required with client id", func(t *testing.T) {
		c := validConfig()
		c.OAuth2Google.ClientID = "client"
		assert.ErrorContains(t, c.Validate(), "SCOPES")
	})
}

func TestDatabaseURL(t *testing.T) {
	c := validConfig()
	c.Database.User = "kintai"
	c.Database.Host = "db"
	c.Database.Port = 5433
	c.Database.Name = "kintai"
	c.Database.SSLMode = "disable"
	assert.Equal(t, "postgres://kintai:secret@db:5433/kintai?sslmode=disable", c.DatabaseURL())
}

func TestLocation(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "Asia/Tokyo", c.Location().String())

	c.App.Timezone = "nowhere"
	assert.Equal(t, "UTC", c.Location().String())
}
