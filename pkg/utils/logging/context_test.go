package logging_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

func TestWith(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	newCtx := logging.With(ctx, logger)
	gt.V(t, logging.From(newCtx)).Equal(logger)
}

func TestFrom(t *testing.T) {
	t.Run("get logger from context without logger", func(t *testing.T) {
		ctx := context.Background()
		retrieved := logging.From(ctx)
		gt.V(t, retrieved.Handler()).Equal(logging.Default().Handler())
	})
}

func TestCtxRunID(t *testing.T) {
	t.Run("new run ID is issued", func(t *testing.T) {
		runID, ctx := logging.CtxRunID(context.Background())
		gt.V(t, runID).NotEqual("")

		retrieved, _ := logging.CtxRunID(ctx)
		gt.V(t, retrieved).Equal(runID)
	})

	t.Run("different contexts get different run IDs", func(t *testing.T) {
		id1, _ := logging.CtxRunID(context.Background())
		id2, _ := logging.CtxRunID(context.Background())
		gt.V(t, id1).NotEqual(id2)
	})
}

func TestCtxWithTime(t *testing.T) {
	ctx := logging.CtxWithTime(context.Background(), func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	gt.V(t, logging.CtxTime(ctx).Year()).Equal(2024)
	gt.False(t, logging.CtxTime(context.Background()).IsZero())
}
