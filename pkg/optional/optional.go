package optional

import "encoding/json"

// Optional tracks whether a JSON field was omitted, sent as null, or sent with a value.
// Only fields present in the body reach UnmarshalJSON, so Set stays false when omitted.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether a non-null value was sent
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Some returns an Optional carrying v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional that was explicitly sent as null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}
