package field

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-htfield/pkg/attrs"
	"github.com/goliatone/go-htfield/pkg/capture"
	"github.com/goliatone/go-htfield/pkg/param"
)

// Widget is a concrete form control. Implementations embed *Field for the
// shared state and supply Render, which writes the control's markup.
type Widget interface {
	Base() *Field
	Render(w io.Writer) error
}

// Field holds the state every form control shares: a Param that resolves the
// field's value, the tag attributes, the bound context and the memoised
// processing result.
//
// A Field is a plain mutable value meant for a single owner, typically one
// request or one form build pass. It is not safe for concurrent use.
type Field struct {
	param   *param.Param
	attrs   *attrs.Store
	context param.Context
	result  *param.Result
	sink    *capture.Sink
	logger  *slog.Logger
}

// New creates a field for the qualified name (e.g. "user[contact][email]").
// The id attribute is seeded with a fresh identifier and the name attribute
// with name; name can not be changed through the attribute API afterwards.
func New(name string, opts ...Option) *Field {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	id := cfg.newID()
	if id == "" {
		id = NewID()
	}

	f := &Field{
		param:  param.New(name),
		attrs:  attrs.New(),
		sink:   cfg.sink,
		logger: cfg.logger.With(slog.String("field", name)),
	}
	f.attrs.Set("id", id).Set("name", name).Protect("name")
	if len(cfg.attrs) > 0 {
		f.MergeAttributes(cfg.attrs)
	}
	return f
}

// Base returns the field itself so embedding widgets satisfy Widget.
func (f *Field) Base() *Field {
	return f
}

// ID returns the current id attribute.
func (f *Field) ID() string {
	return f.attrs.Text("id")
}

// Name returns the qualified name as reported by the Param.
func (f *Field) Name() string {
	return f.param.Name()
}

// Attrs exposes the attribute store to widgets.
func (f *Field) Attrs() *attrs.Store {
	return f.attrs
}

// Param exposes the underlying parameter to widgets.
func (f *Field) Param() *param.Param {
	return f.param
}

// Filters is a shortcut for Param().Filters(). Filters added after the field
// was processed take effect on the next forced or rebound processing.
func (f *Field) Filters() *param.Filters {
	return f.param.Filters()
}

// Sink returns the ambient output of the field.
func (f *Field) Sink() *capture.Sink {
	return f.sink
}

// Logger returns the field scoped logger.
func (f *Field) Logger() *slog.Logger {
	return f.logger
}

// BindContext sets the input data the field resolves against and drops any
// cached result, so the next Process never returns a value computed against
// the previous context.
func (f *Field) BindContext(ctx param.Context) *Field {
	f.context = ctx
	f.param.BindContext(ctx)
	if f.result != nil {
		f.logger.Debug("context rebound, cached result dropped")
	}
	f.result = nil
	return f
}

// Context returns the bound context, nil until BindContext is called.
func (f *Field) Context() param.Context {
	return f.context
}

// Processed reports whether a cached result is held.
func (f *Field) Processed() bool {
	return f.result != nil
}

// Process returns the cached result, computing it against the bound context
// on first use.
func (f *Field) Process() param.Result {
	if f.result != nil {
		return *f.result
	}
	return f.remember(f.param.Process())
}

// ProcessWith resolves the field against ctx regardless of any cached result
// and caches the outcome. The bound context is left unchanged.
func (f *Field) ProcessWith(ctx param.Context) param.Result {
	return f.remember(f.param.ProcessWith(ctx))
}

// Reprocess forces a fresh resolution against the bound context.
func (f *Field) Reprocess() param.Result {
	return f.remember(f.param.Process())
}

// Value is Process().Output.
func (f *Field) Value() any {
	return f.Process().Output
}

// Validate is Process().Error; an empty string means the value is valid.
func (f *Field) Validate() string {
	return f.Process().Error
}

// MergeAttributes deep merges attrs into the field attributes: nested maps
// update only the inner keys they carry, scalars replace. The name attribute
// is never altered and an empty id is ignored.
func (f *Field) MergeAttributes(attrs map[string]any) *Field {
	id := f.ID()
	f.attrs.Merge(attrs)
	if f.ID() == "" {
		f.attrs.Set("id", id)
	}
	return f
}

func (f *Field) remember(result param.Result) param.Result {
	f.result = &result
	if result.Error != "" {
		f.logger.Debug("field processed", slog.String("error", result.Error))
	} else {
		f.logger.Debug("field processed")
	}
	return result
}
