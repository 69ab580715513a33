package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/config"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := Connect(config.DriverSQLite, "file:database_test?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.True(t, db.Migrator().HasTable(&models.Spreadsheet{}))
	require.True(t, db.Migrator().HasTable(&models.Worksheet{}))
	require.True(t, db.Migrator().HasTable(&models.WorksheetRow{}))
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(config.DriverPostgres, "")
	require.Error(t, err)
	_, err = Connect(config.DriverSQLite, "")
	require.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = ConnectRedis(context.Background(), "redis://"+mr.Addr())
	require.Error(t, err)
}
