// Package field provides the state shared by every form control: a qualified
// name bound to a param.Param, a mergeable attrs.Store, the input context the
// value is resolved against and a memoised processing result.
//
// Concrete controls embed *Field and implement Render:
//
//	type Input struct{ *field.Field }
//
//	func (i *Input) Render(w io.Writer) error {
//		_, err := fmt.Fprintf(w, "<input %s />", i.Attrs())
//		return err
//	}
//
// The cached result is dropped whenever a new context is bound; ProcessWith
// and Reprocess force a fresh resolution. Text and String capture a render
// through the field's capture.Sink without leaking into the ambient output.
package field
