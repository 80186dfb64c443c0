package indexer

import (
	"os"
	"strconv"
	"time"
)

// Config controls the async indexing pipeline.
type Config struct {
	// QueueSize bounds the job channel. A full queue drops new jobs rather
	// than blocking callers.
	QueueSize int

	// BackfillDelay is the pause between songs during a full backfill, to
	// avoid saturating the embedding endpoint.
	BackfillDelay time.Duration
}

// NewConfig reads from environment variables.
func NewConfig() Config {
	queueSize := 256
	if v := os.Getenv("INDEXER_QUEUE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			queueSize = n
		}
	}

	delay := 200 * time.Millisecond
	if v := os.Getenv("INDEXER_BACKFILL_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}

	return Config{QueueSize: queueSize, BackfillDelay: delay}
}
