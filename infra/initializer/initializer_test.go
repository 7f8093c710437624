package initializer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/amirasaad/storefront/infra"
	"github.com/amirasaad/storefront/infra/cache"
	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/handler/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", Prefix: "[storefront]"})

	logger.Info("Inventory removed", "handler", "ProductDeleted")

	assert.Contains(t, buf.String(), `"msg":"Inventory removed"`)
	assert.Contains(t, buf.String(), `"handler":"ProductDeleted"`)
	assert.Same(t, logger, slog.Default())
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "text", Level: 4})

	logger.Debug("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitialize_RequiresDatabase(t *testing.T) {
	t.Parallel()
	res, err := initialize(context.Background(), &config.App{DB: &config.DB{}}, discard())
	assert.ErrorIs(t, err, infra.ErrMissingDatabaseURL)
	assert.Nil(t, res)
}

func TestInitTracker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("in memory without redis", func(t *testing.T) {
		t.Parallel()
		res := &Resources{}
		tracker, err := initTracker(ctx, &config.App{Redis: &config.Redis{}}, res, discard())
		require.NoError(t, err)
		assert.IsType(t, &common.IdempotencyTracker{}, tracker)
		assert.Nil(t, res.Redis)
	})

	t.Run("redis when configured", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		res := &Resources{}
		cfg := &config.App{
			Redis:       &config.Redis{URL: "redis://" + mr.Addr(), KeyPrefix: "sf:"},
			Idempotency: &config.Idempotency{TTL: time.Hour},
		}
		tracker, err := initTracker(ctx, cfg, res, discard())
		require.NoError(t, err)
		assert.IsType(t, &cache.RedisTracker{}, tracker)
		require.NotNil(t, res.Redis)

		require.NoError(t, tracker.MarkProcessed(ctx, "k"))
		assert.True(t, mr.Exists("sf:idempotency:k"))
		require.NoError(t, res.Close(ctx))
	})

	t.Run("unreachable redis fails", func(t *testing.T) {
		t.Parallel()
		cfg := &config.App{Redis: &config.Redis{URL: "redis://127.0.0.1:1"}}
		_, err := initTracker(ctx, cfg, &Resources{}, discard())
		assert.Error(t, err)
	})
}

func TestResources_CloseInReverseOrder(t *testing.T) {
	t.Parallel()
	var order []string
	errLast := errors.New("mongo")
	res := &Resources{closers: []func(context.Context) error{
		func(context.Context) error { order = append(order, "db"); return nil },
		func(context.Context) error { order = append(order, "mongo"); return errLast },
	}}

	err := res.Close(context.Background())
	assert.ErrorIs(t, err, errLast)
	assert.Equal(t, []string{"mongo", "db"}, order)
}
