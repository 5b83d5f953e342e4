package zodforge

import "context"

// Validator is a live, renderer-agnostic validator over untyped values.
// Implementations are pure and safe for concurrent use.
type Validator interface {
	// Parse coerces and validates v, returning the (possibly transformed)
	// value. It returns Issues when validation fails.
	Parse(ctx context.Context, v any) (any, error)

	// Validate reports whether v conforms without returning the transformed
	// value.
	Validate(ctx context.Context, v any) error

	// Description returns the descriptive metadata attached to the field, if
	// any.
	Description() (string, bool)
}

// undefinedValue is the absence marker. JSON has no undefined, so absence only
// arises for missing object keys or when a caller passes Undefined explicitly.
type undefinedValue struct{}

// Undefined is the sentinel for an absent value. Optional fields accept it,
// defaults replace it, and object parsing maps missing keys to it internally.
var Undefined any = undefinedValue{}

// IsUndefined reports whether v is the absence sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// SafeParse parses v, returning (zero, false) on validation error.
func SafeParse(ctx context.Context, s Validator, v any) (any, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		return nil, false
	}
	return val, true
}

// Is returns true if v conforms to the validator s.
func Is(ctx context.Context, s Validator, v any) bool {
	return s.Validate(ctx, v) == nil
}
