package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Open creates the run log at path, truncating any previous run's log.
// The returned closer must be closed when the run ends.
func Open(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(f).Level(level).With().Timestamp().Str("app", "plumbcfg").Logger()
	return logger, f, nil
}
