package values

import "reflect"

// DeepCopy returns a copy of v that shares no maps or slices with the
// original. It also normalizes named map and slice types (such as a
// caller's Fragment alias) into plain map[string]any / []any, so
// downstream code only ever sees one shape. Scalars pass through
// unchanged. Combining operations rely on this to guarantee a result
// never aliases caller-owned storage.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return DeepCopyMap(val)
	case []any:
		return copySlice(val)
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = DeepCopy(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		// []byte stays opaque; everything else becomes []any.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = DeepCopy(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

// DeepCopyMap deep-copies a string-keyed map.
func DeepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = DeepCopy(v)
	}
	return out
}

func copySlice(s []any) []any {
	out := make([]any, len(s))
	for i, item := range s {
		out[i] = DeepCopy(item)
	}
	return out
}
