package entity

// Field is a generic result slot for one extracted value. Confidence is the
// additive contribution this field made to the total score; it is an
// unbounded ranking signal, not a probability, and must never be normalized.
// Set distinguishes "pattern matched and passed its plausibility filter"
// from a zero value.
type Field[T any] struct {
	Value      T       `json:"value"`
	Confidence float64 `json:"confidence"`
	Set        bool    `json:"set"`
}

// NewField returns a set field carrying its confidence contribution.
func NewField[T any](value T, confidence float64) Field[T] {
	return Field[T]{Value: value, Confidence: confidence, Set: true}
}

// OrDefault returns the field value, or def when the field is unset.
func (f Field[T]) OrDefault(def T) T {
	if !f.Set {
		return def
	}
	return f.Value
}
