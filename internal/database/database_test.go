package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"favorites/internal/domain/contenttype"
)

func TestConnectMigrateAndRegister(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	dsn := fmt.Sprintf("file:database_test_%s?mode=memory&cache=shared", t.Name())
	db, err := Connect(dsn, log)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "content_types", "favorites", "animals"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	ctx := context.Background()
	reg := contenttype.NewRegistry(db)
	require.NoError(t, RegisterModels(ctx, reg))
	assert.Equal(t, []string{"animal", "favorite", "user"}, reg.Names())

	// registering again against the same database reuses the stored rows
	again := contenttype.NewRegistry(db)
	require.NoError(t, RegisterModels(ctx, again))

	first, err := reg.ForName("animal")
	require.NoError(t, err)
	second, err := again.ForName("animal")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, gormLogLevel(logrus.DebugLevel))
	assert.Equal(t, gormlogger.Warn, gormLogLevel(logrus.InfoLevel))
	assert.Equal(t, gormlogger.Error, gormLogLevel(logrus.ErrorLevel))
}
