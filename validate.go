package bunmatch

import (
	"github.com/cockroachdb/errors"
	"github.com/xeipuuv/gojsonschema"
)

// fragmentSchema describes what a well-formed fragment looks like at
// the structural level: an object whose logical operator keys hold
// non-empty arrays of objects ($not holds a single object). Field
// conditions are left open, since any scalar, list or operator map is
// a legal condition.
const fragmentSchema = `{
	"type": "object",
	"properties": {
		"$and": {"type": "array", "items": {"type": "object"}, "minItems": 1},
		"$or":  {"type": "array", "items": {"type": "object"}, "minItems": 1},
		"$nor": {"type": "array", "items": {"type": "object"}, "minItems": 1},
		"$not": {"type": "object"}
	}
}`

var compiledFragmentSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(fragmentSchema))
	if err != nil {
		panic("bunmatch: invalid fragment schema: " + err.Error())
	}
	compiledFragmentSchema = schema
}

// toFragment coerces a combining operand into a plain map and checks
// that it is fragment-shaped. Anything that is not a Fragment or a
// map[string]any is a type mismatch; a map that fails schema
// validation is malformed.
func toFragment(v any) (map[string]any, error) {
	var m map[string]any
	switch val := v.(type) {
	case Fragment:
		m = val
	case map[string]any:
		m = val
	default:
		return nil, errors.Wrapf(ErrTypeMismatch,
			"unsupported operand types: %T and %T", Fragment{}, v)
	}

	result, err := compiledFragmentSchema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFragment, "fragment not validatable: %v", err)
	}
	if !result.Valid() {
		detail := ""
		if errs := result.Errors(); len(errs) > 0 {
			detail = errs[0].String()
		}
		return nil, errors.Wrapf(ErrMalformedFragment, "%s", detail)
	}
	return m, nil
}
