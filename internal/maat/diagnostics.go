package maat

// FieldValue records one field's contribution to the objective at a state.
type FieldValue struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Raw      float64 `json:"raw"`
	Weighted float64 `json:"weighted"`
}

// FieldReport evaluates every field at the given state, for inspecting
// which term drives the objective. Entries are in declaration order.
func (e *Engine[S]) FieldReport(state S) []FieldValue {
	out := make([]FieldValue, 0, len(e.Fields))
	for _, f := range e.Fields {
		raw := f.Func(state)
		out = append(out, FieldValue{
			Name:     f.Name,
			Weight:   f.Weight,
			Raw:      raw,
			Weighted: raw * f.Weight,
		})
	}
	return out
}
