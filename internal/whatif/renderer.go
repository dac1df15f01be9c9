package whatif

// RequestKind identifies the shape of a value-collection request.
type RequestKind string

const (
	KindRange          RequestKind = "range"
	KindChoice         RequestKind = "choice"
	KindBoundedNumeric RequestKind = "bounded_numeric"
	KindText           RequestKind = "text"
)

// ValueRequest describes one value to collect from a human: the prompt, the
// value domain, and a default. Min/Max/Default apply to range and
// bounded_numeric requests; Choices/DefaultChoice to choice requests;
// DefaultText to text requests.
type ValueRequest struct {
	Prompt        string
	Kind          RequestKind
	Min           int64
	Max           int64
	Default       int64
	Choices       []any
	DefaultChoice any
	DefaultText   string
}

// Renderer collects one concrete value for a request. Each call is a blocking
// round-trip to whatever is presenting the prompt; the returned value must
// match the request kind (int64 for range and bounded_numeric, one of Choices
// for choice, string for text).
type Renderer interface {
	Collect(req ValueRequest) (any, error)
}
