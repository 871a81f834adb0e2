// Package logger sets up the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures the global logger from LOG_LEVEL, LOG_FILE and DEV.
func Init() {
	initWithOutput(os.Stdout)
}

func initWithOutput(out io.Writer) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 30
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: milliTimeFormat,
		NoColor:    os.Getenv("DEV") != "true",
	}

	logFile := os.Getenv("LOG_FILE")
	var fileErr error
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			output = io.MultiWriter(output, f)
		}
		fileErr = err
	}

	log.Logger = log.Output(output).With().Caller().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("file", logFile).Msg("could not open log file, logging to console only")
	}

	log.Info().Str("level", level.String()).Msg("logger initialized")
}

// ForGame returns a logger tagged with the game uuid.
func ForGame(gameUuid string) zerolog.Logger {
	return log.Logger.With().Str("game", gameUuid).Logger()
}
