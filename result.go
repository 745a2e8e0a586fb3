package objmap

import "reflect"

// ConvertResult is the explicit two-state outcome of a conversion attempt.
//
// An unconverted result is the fall-through signal used inside the cascade to
// know when to try the next rule; it is deliberately distinct from a
// converted value that happens to be nil-equivalent, so the two are never
// conflated.
type ConvertResult struct {
	Value     reflect.Value // The converted value. Only meaningful when Converted is true.
	Converted bool          // Whether a value was produced
}

// ConvertResultValue wraps a produced value.
func ConvertResultValue(v reflect.Value) ConvertResult {
	return ConvertResult{Value: v, Converted: true}
}

// ConvertResultNone signals that no conversion rule produced a value.
func ConvertResultNone() ConvertResult {
	return ConvertResult{}
}
