package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("COURT_ADMIN_PASSPHRASE", "ace")
	t.Setenv("COURT_SESSION_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, "CourtMaster_DB", cfg.SheetsDocument)
	require.Equal(t, 10*time.Second, cfg.TableCacheTTL)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 8, cfg.ScheduleStartHour)
	require.Equal(t, 22, cfg.ScheduleEndHour)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.NotNil(t, cfg.Location)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("COURT_ADMIN_PASSPHRASE", "")
	t.Setenv("COURT_SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"COURT_DATABASE_DRIVER":     "mysql",
		"COURT_TABLES_CACHE_TTL":    "soon",
		"COURT_SCHEDULE_START_HOUR": "23",
		"COURT_TIMEZONE":            "Mars/Olympus",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("COURT_ADMIN_PASSPHRASE", "ace")
			t.Setenv("COURT_SESSION_SECRET", "secret")
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
