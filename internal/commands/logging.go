package commands

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogging configures gin and the global logger. The configuration
// must have passed ValidateLogging.
func setupLogging(cfg config.Config) {
	gin.SetMode(cfg.GinMode)

	// Without an explicit format, logs are human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = log.Output(output).With().Timestamp().Logger()
}
