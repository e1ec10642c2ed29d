package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const DefaultChunkSize = 2048

type AudioSink interface {
	AddAudio(chunk []byte) error
}

type FeedStats struct {
	Chunks int64
	Bytes  int64
}

// Feed reads src in reads of at most chunkSize bytes and submits each
// non-empty read to sink in order. A zero-length read or io.EOF ends the
// stream. Cancellation is checked between reads; a read in progress is not
// interrupted, and its data is dropped if ctx was cancelled meanwhile.
func Feed(ctx context.Context, sink AudioSink, src io.Reader, chunkSize int) (FeedStats, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var stats FeedStats
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		n, rerr := src.Read(buf)
		if n > 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := sink.AddAudio(buf[:n]); err != nil {
				return stats, fmt.Errorf("submit audio: %w", err)
			}
			stats.Chunks++
			stats.Bytes += int64(n)
		}

		switch {
		case errors.Is(rerr, io.EOF):
			return stats, nil
		case rerr != nil:
			// A read failing because the source was closed on shutdown is
			// a cancellation, not an input error.
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			return stats, fmt.Errorf("read audio: %w", rerr)
		case n == 0:
			return stats, nil
		}
	}
}
