package param

// Context is the structured input a parameter is resolved against, typically
// a decoded form submission.
type Context = map[string]any

// Result is the outcome of resolving a parameter: the extracted (and
// filtered) output plus an optional validation message. A failed validation
// is a normal result, not a Go error.
type Result struct {
	Output any
	Error  string
}

// Valid reports whether the result carries no validation message.
func (r Result) Valid() bool {
	return r.Error == ""
}

// Param resolves a qualified field name against a context and runs the value
// through its filter pipeline. It keeps no memo of previous results; callers
// that want caching do it themselves.
type Param struct {
	name     string
	segments []string
	context  Context
	filters  *Filters
}

// New returns a parameter for the qualified name, e.g. "user[contact][email]".
func New(name string) *Param {
	return &Param{
		name:     name,
		segments: ParseName(name),
		filters:  &Filters{},
	}
}

// Name returns the qualified name the parameter was created with.
func (p *Param) Name() string {
	return p.name
}

// Segments returns the parsed path of the qualified name.
func (p *Param) Segments() []string {
	return append([]string(nil), p.segments...)
}

// BindContext sets the default context used by Process.
func (p *Param) BindContext(ctx Context) *Param {
	p.context = ctx
	return p
}

// Context returns the bound context.
func (p *Param) Context() Context {
	return p.context
}

// Filters exposes the filter pipeline for configuration.
func (p *Param) Filters() *Filters {
	return p.filters
}

// Process resolves the parameter against the bound context.
func (p *Param) Process() Result {
	return p.ProcessWith(p.context)
}

// ProcessWith resolves the parameter against ctx, ignoring the bound context.
// A missing value resolves to nil before filters run.
func (p *Param) ProcessWith(ctx Context) Result {
	value, _ := resolve(ctx, p.segments)
	return p.filters.apply(value, ctx)
}
