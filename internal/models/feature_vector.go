package models

// FeatureVector is a fixed-schema set of numeric features derived from
// pre-match rating snapshots and match context. Never mutated after
// creation.
type FeatureVector struct {
	Schema []string  `json:"schema"`
	Values []float64 `json:"values"`
}

// NewFeatureVector builds a vector over the given schema. The values
// slice must be aligned with the schema order.
func NewFeatureVector(schema []string, values []float64) (*FeatureVector, error) {
	if len(schema) != len(values) {
		return nil, NewDataError("feature vector has %d values for %d schema fields", len(values), len(schema))
	}
	return &FeatureVector{Schema: schema, Values: values}, nil
}

// Get returns the value for a named feature
func (f *FeatureVector) Get(name string) (float64, bool) {
	for i, n := range f.Schema {
		if n == name {
			return f.Values[i], true
		}
	}
	return 0, false
}

// MatchesSchema reports whether the vector's schema equals expected,
// in order
func (f *FeatureVector) MatchesSchema(expected []string) bool {
	if len(f.Schema) != len(expected) {
		return false
	}
	for i, n := range expected {
		if f.Schema[i] != n {
			return false
		}
	}
	return true
}
