package models_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/axoguild/axobot/internal/database/models"
	"github.com/axoguild/axobot/internal/database/types"
)

// unreachableDB returns a bun.DB that opens no connection until a query runs.
func unreachableDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithAddr("127.0.0.1:1")))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestVoiceChannelCreateStampsCreatedAt(t *testing.T) {
	t.Parallel()

	model := models.NewVoiceChannel(unreachableDB(t), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	channel := &types.VoiceChannel{
		ChannelID: 1,
		OwnerID:   2,
		Name:      "study room",
	}

	// The insert itself cannot reach a database. The timestamp must be set
	// regardless, before the row is handed to the driver.
	_ = model.Create(ctx, channel)
	assert.False(t, channel.CreatedAt.IsZero())
}
