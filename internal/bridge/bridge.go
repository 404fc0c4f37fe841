// Package bridge produces the single JSON object consumed by the home
// automation platform on every invocation.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"aiswei_bridge/internal/mapper"
	"aiswei_bridge/internal/types"
)

// ErrLogic marks an unexpected failure while building the output.
var ErrLogic = errors.New("unexpected error while building output")

// Fetcher retrieves the latest telemetry reply.
type Fetcher interface {
	GetLastTsData(ctx context.Context) (*types.Response, error)
}

// Run fetches live telemetry, merges it onto the default template and writes
// the result as one JSON line. API failures are not fatal: they produce the
// template with success=false. Only output failures and panics return an error.
func Run(ctx context.Context, f Fetcher, w io.Writer, now time.Time, logger *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while building output", "panic", r)
			err = fmt.Errorf("%w: %v", ErrLogic, r)
		}
	}()

	out := mapper.Template(now)

	resp, fetchErr := f.GetLastTsData(ctx)
	switch {
	case fetchErr != nil:
		logger.Warn("Live telemetry unavailable", "error", fetchErr)
	case resp.Success():
		mapper.Merge(out, mapper.Normalize(resp))
		out[mapper.KeySuccess] = true
	default:
		status, _ := resp.Field("status")
		info, _ := resp.Field("info")
		logger.Warn("Live telemetry rejected", "status", status, "info", info)
	}

	return writeJSON(w, out)
}

// WriteError writes the error object emitted before a non-zero exit.
// Unexpected failures are reported with the generic ErrLogic message.
func WriteError(w io.Writer, err error, now time.Time) error {
	msg := err.Error()
	if errors.Is(err, ErrLogic) {
		msg = ErrLogic.Error()
	}

	return writeJSON(w, map[string]any{
		"error":             msg,
		mapper.KeyTimestamp: now.Format(mapper.TimestampLayout),
		mapper.KeySuccess:   false,
		mapper.KeyPower:     0,
		"etoday":            0,
		"etotal":            0,
		mapper.KeyStatus:    "error",
	})
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode output: %v", ErrLogic, err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
