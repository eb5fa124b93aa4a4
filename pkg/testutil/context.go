package testutil

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ripple-lab/backend/config"
	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/pkg/authenticator"
	"github.com/ripple-lab/backend/pkg/logger"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext returns a context carrying a fresh in-memory database with the
// full schema migrated and fixture data inserted.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	ctx := xcontext.WithConfigs(context.Background(), config.Default())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine("secret"))

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	ctx = xcontext.WithSnowFlake(ctx, node)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	insertFixtures(ctx)
	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
