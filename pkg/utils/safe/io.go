package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
)

// Close closes c and logs a failure instead of returning it. A nil c is ignored.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Error("failed to close", slog.Any("error", err))
	}
}

// Write writes data to w, logging a failed write. Used for response bodies where
// the status line is already out.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("failed to write", slog.Any("error", err))
	}
}
