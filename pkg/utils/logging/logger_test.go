package logging_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		gt.NoError(t, logging.Configure("text", "info", "stdout"))
	})

	t.Run("configure with json format to stdout", func(t *testing.T) {
		gt.NoError(t, logging.Configure("json", "info", "stdout"))
	})

	t.Run("configure with text format", func(t *testing.T) {
		gt.NoError(t, logging.Configure("text", "debug", "-"))
	})

	t.Run("configure with invalid format returns error", func(t *testing.T) {
		gt.Error(t, logging.Configure("invalid", "info", "stdout"))
	})

	t.Run("configure with invalid level returns error", func(t *testing.T) {
		gt.Error(t, logging.Configure("json", "invalid", "stdout"))
	})

	t.Run("secret values are masked", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "surch.log")
		gt.NoError(t, logging.Configure("json", "info", logPath))

		logging.Default().Info("credentials",
			"password", types.GitHubPassword("ghp_very_secret_password"),
			"token", types.VaultToken("hvs.very_secret_token"),
			"routing_key", types.PagerDutyRoutingKey("pd_very_secret_key"),
		)

		raw := gt.R1(os.ReadFile(logPath)).NoError(t)
		gt.S(t, string(raw)).Contains("credentials")
		gt.S(t, string(raw)).NotContains("ghp_very_secret_password")
		gt.S(t, string(raw)).NotContains("hvs.very_secret_token")
		gt.S(t, string(raw)).NotContains("pd_very_secret_key")
	})

	t.Run("log file is appended", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "surch.log")
		gt.NoError(t, logging.Configure("json", "info", logPath))
		logging.Default().Info("first run")
		gt.NoError(t, logging.Configure("json", "info", logPath))
		logging.Default().Info("second run")

		raw := gt.R1(os.ReadFile(logPath)).NoError(t)
		gt.S(t, string(raw)).Contains("first run")
		gt.S(t, string(raw)).Contains("second run")
	})

	t.Run("invalid option does not open log file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "never.log")
		err := logging.Configure("yaml", "info", logPath)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
		_, statErr := os.Stat(logPath)
		gt.True(t, os.IsNotExist(statErr))
	})
}

func TestDefault(t *testing.T) {
	logger := logging.Default()
	logger.Info("test message", "key", "value")
}
