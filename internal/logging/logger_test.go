package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-auth-service/internal/logging"
)

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"pretty", "plain"} {
		t.Run(format, func(t *testing.T) {
			lgr := logging.New("authd", format, "error")
			require.NotNil(t, lgr)

			logger := lgr.GetLogger("auth")
			require.NotNil(t, logger)
			assert.NotPanics(t, func() {
				logger.Debug("filtered", "key", "value")
			})
		})
	}
}

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", "unknown"} {
		assert.NotNil(t, logging.New("authd", "plain", level), level)
	}
}

func TestDiscard(t *testing.T) {
	logger := logging.Discard().GetLogger("auth")
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("dropped", "key", "value")
		logger.Error("dropped")
	})
}
