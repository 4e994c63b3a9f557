// Package filter implements the named transforms applied to a field value
// before it is consumed or displayed.
//
// A Registry maps names to filter functions. Apply threads a raw value through
// the filters attached to a field, in attachment order:
//
//	reg := filter.NewRegistry()
//	out := reg.Apply(field, value.Scalar("  7.5 ")) // field filters: trim|int
//	// out.Scalar() == int64(7)
//
// Filters that need the owning field, like in_options, are registered with
// NeedsField and receive it in Input.Field; every other filter sees a nil
// Field.
//
// String filters (trim, replace, upper, kana, date, ...) map over sequence
// values element by element and keep nil elements as nil. The type
// conversions int, float and string turn a sequence into null.
//
// Unknown filter names are skipped; in strict mode a warning is logged.
package filter
