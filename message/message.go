// Package message defines the values exchanged between the request client and
// the transport.
//
// A Call is created per invocation and dropped once its Response has been
// delivered; nothing retains either after that.
package message

// Method is the transport verb of a call.
type Method int

const (
	MethodRead  Method = iota // GET
	MethodWrite               // POST
)

func (m Method) String() string {
	switch m {
	case MethodRead:
		return "read"
	case MethodWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Call describes one request.
//
//   - Operation is the remote action, e.g. "getShortMessagesAsString".
//   - Params are path segments appended verbatim after the operation.
type Call struct {
	Operation string
	Params    []string
	Method    Method
	RequestID string // set by the request id middleware, sent as X-Request-Id
}

// NewCall copies params so later mutation by the caller cannot leak into an
// in-flight request.
func NewCall(method Method, operation string, params ...string) *Call {
	copied := make([]string, len(params))
	copy(copied, params)
	return &Call{Operation: operation, Params: copied, Method: method}
}

// Response is the outcome of a Call: Err is nil on success, in which case
// Payload holds the raw response text.
type Response struct {
	Seq     uint64
	Payload string
	Err     error
}

func (r *Response) Failed() bool {
	return r.Err != nil
}
