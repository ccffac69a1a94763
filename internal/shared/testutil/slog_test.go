package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("derived loggers share records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "catalog")).WithGroup("file").Info("loaded", slog.Int("rows", 3))

		records := handler.GetRecords()
		if assert.Len(t, records, 1) {
			assert.Equal(t, "catalog", records[0].Attrs["component"])
			assert.Equal(t, int64(3), records[0].Attrs["file.rows"])
		}
		AssertLogContains(t, handler, slog.LevelInfo, "loaded")
		AssertNoErrors(t, handler)
	})
}
