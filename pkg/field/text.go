package field

import (
	"fmt"
	"log/slog"
)

// Text renders w into a string. Output is captured from the field's sink, so
// nothing reaches the ambient writer, and the sink is restored even when
// Render fails or panics.
func Text(w Widget) (string, error) {
	base := w.Base()
	out, err := base.sink.Capture(w.Render)
	if err != nil {
		return out, fmt.Errorf("render field %q: %w", base.Name(), err)
	}
	return out, nil
}

// String is Text for fmt.Stringer implementations: errors are logged and the
// partial output is returned.
func String(w Widget) string {
	out, err := Text(w)
	if err != nil {
		w.Base().logger.Error("field render failed", slog.Any("error", err))
	}
	return out
}

// Print renders w straight into the field's ambient sink.
func Print(w Widget) error {
	base := w.Base()
	if err := w.Render(base.sink); err != nil {
		return fmt.Errorf("render field %q: %w", base.Name(), err)
	}
	return nil
}
