package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/habitgrid/habitkit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields empty attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Error(nil)
		assert.Equal(t, slog.Attr{}, attr)
	})

	t.Run("non-nil error uses error key", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})
}

func TestEmptyStringHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, slog.Attr{}, logger.Username(""))

	assert.Equal(t, "request_id", logger.RequestID("req-1").Key)
	assert.Equal(t, "username", logger.Username("alice").Key)
}

func TestTimingHelpers(t *testing.T) {
	t.Parallel()

	attr := logger.Duration(2 * time.Second)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 2*time.Second, attr.Value.Duration())

	elapsed := logger.Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "duration", elapsed.Key)
	assert.GreaterOrEqual(t, elapsed.Value.Duration(), time.Second)
}
