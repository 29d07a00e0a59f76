package domain

// Well-known generation parameter keys
const (
	ParamTemperature = "temperature"
	ParamMaxTokens   = "max_tokens"
	ParamLogitBias   = "logit_bias"
	ParamJSONSchema  = "json_schema"
)

// Params is an open set of generation parameters merged into the request body.
// A Params value is never modified by a generation call; each call works on a Clone.
type Params map[string]any

// Clone returns a copy of p. Nested maps are copied as well so that per-call
// additions never reach the original.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case Params:
		return typed.Clone()
	case map[string]any:
		return map[string]any(Params(typed).Clone())
	case map[string]int:
		out := make(map[string]int, len(typed))
		for k, n := range typed {
			out[k] = n
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
