package log

import (
	"context"
	"log/slog"
)

// SlogAdapter forwards protocol events to an slog.Logger at Debug level.
// Useful during development to watch session traffic on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a structured debug record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Target != "" {
		attrs = append(attrs, slog.String("target", event.Target))
	}
	if event.EntityID != "" {
		attrs = append(attrs, slog.String("entity_id", event.EntityID))
	}

	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.String("direction", event.Direction.String()),
			slog.Int("frame_size", event.Frame.Size),
		)
		if event.Frame.Kind != "" {
			attrs = append(attrs, slog.String("frame_kind", event.Frame.Kind))
		}
		if event.Frame.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "flux", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
