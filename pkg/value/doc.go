// Package value models the raw input carried by a form field.
//
// A field value is either a single scalar (string, bool, number, nil or a
// fmt.Stringer) or an ordered sequence of scalars, as produced by
// multi-select and checkbox-group inputs. Value is a small tagged union over
// those two shapes so that rule and filter code never has to guess whether it
// received "one thing" or "a list of things".
//
// # Usage
//
//	v := value.MustOf([]string{"red", "", "blue"})
//	v.IsSequence()        // true
//	for _, item := range v.Items() {
//	    if value.IsBlank(item) {
//	        continue
//	    }
//	}
//
//	s := value.Scalar("42")
//	n, _ := value.ToInt(s.Scalar()) // 42
//
// Items is the single explicit conversion that wraps a scalar into a
// one-element sequence.
//
// # Coercion
//
// ToString, ToInt and ToFloat follow the loose scalar conversions web forms
// traditionally rely on: "12abc" is 12 as an integer, true is "1" and false
// is "" as a string, and a non-scalar converts with ok == false.
//
// # Error Handling
//
// Of returns ErrUnsupported for maps, structs, channels and functions.
package value
