package field

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-htfield/pkg/capture"
)

// IDPrefix prefixes generated field identifiers.
const IDPrefix = "field_"

// Option configures a Field at construction time.
type Option func(*config)

type config struct {
	sink   *capture.Sink
	logger *slog.Logger
	newID  func() string
	attrs  map[string]any
}

// WithSink sets the ambient output a field prints into and captures from.
// Defaults to capture.Stdout.
func WithSink(sink *capture.Sink) Option {
	return func(cfg *config) {
		if sink != nil {
			cfg.sink = sink
		}
	}
}

// WithLogger attaches a structured logger. Fields log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithIDGenerator overrides how default identifiers are produced. Generators
// returning an empty string fall back to the built-in one.
func WithIDGenerator(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// WithAttributes merges attrs right after the id and name are seeded.
func WithAttributes(attrs map[string]any) Option {
	return func(cfg *config) {
		cfg.attrs = attrs
	}
}

func defaultConfig() *config {
	return &config{
		sink:   capture.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:  NewID,
	}
}

// NewID returns a process-unique identifier such as
// "field_3f2a9c0e5b8d4f6a9e1c7b2d4a6f8e0c".
func NewID() string {
	return IDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
