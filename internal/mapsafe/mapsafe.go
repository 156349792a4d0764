// Package mapsafe reads typed values out of decoded JSON-like documents
// (map[string]any, as produced by structpb.Struct.AsMap or encoding/json).
package mapsafe

// Lookup returns the value stored under key converted to T. ok is false when
// the key is missing or holds a value of another type. Whole numbers convert
// between int and float64.
func Lookup[T any](m map[string]any, key string) (T, bool) {
	val, found := m[key]
	if !found {
		var zero T
		return zero, false
	}
	return convert[T](val)
}

// Get is Lookup with a fallback.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	if v, ok := Lookup[T](m, key); ok {
		return v
	}
	return defaultValue
}

// Floats converts a []any of numbers. ok is false at the first non-number,
// and index reports its position.
func Floats(values []any) (out []float64, index int, ok bool) {
	out = make([]float64, len(values))
	for i, v := range values {
		f, ok := convert[float64](v)
		if !ok {
			return nil, i, false
		}
		out[i] = f
	}
	return out, -1, true
}

func convert[T any](val any) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case float64:
		switch x := val.(type) {
		case float64:
			return any(x).(T), true
		case int:
			return any(float64(x)).(T), true
		}
	case int:
		switch x := val.(type) {
		case int:
			return any(x).(T), true
		case float64:
			if x == float64(int(x)) {
				return any(int(x)).(T), true
			}
		}
	default:
		if v, ok := val.(T); ok {
			return v, true
		}
	}
	return zero, false
}
