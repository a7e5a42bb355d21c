package api

// FailureKind classifies a collaborator call failure. Classification is
// checked in a fixed priority order: transport failures first, then
// not-found, unauthenticated, server fault, an explicit message from the
// response body, and finally a generic fallback.
type FailureKind int

const (
	FailureNetwork FailureKind = iota
	FailureServiceMissing
	FailureUnauthenticated
	FailureServerFault
	FailureDomain
	FailureUnknown
)

// Display texts per failure kind. A FailureDomain error carries the
// collaborator's own message verbatim instead.
const (
	MsgNetwork         = "Cannot connect to server. Please make sure the backend is running."
	MsgServiceMissing  = "Product search service not available. Please try again later."
	MsgUnauthenticated = "Please login to search for products."
	MsgServerFault     = "Server error. Please try again later."
	MsgUnknown         = "Sorry, something went wrong while searching for products."
)

// CallError is the single error type surfaced by the API clients. Message
// is ready for direct display in the transcript.
type CallError struct {
	Kind    FailureKind
	Message string
	Status  int
	Err     error
}

func (e *CallError) Error() string {
	return e.Message
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// networkError wraps a transport-level failure (connection refused, DNS,
// timeout). These take priority over everything else.
func networkError(err error) *CallError {
	return &CallError{Kind: FailureNetwork, Message: MsgNetwork, Err: err}
}

// classifyStatus maps a non-2xx response to a CallError using the status
// code and the message the body carried, if any.
func classifyStatus(status int, bodyMessage string) *CallError {
	switch {
	case status == 404:
		return &CallError{Kind: FailureServiceMissing, Message: MsgServiceMissing, Status: status}
	case status == 401:
		return &CallError{Kind: FailureUnauthenticated, Message: MsgUnauthenticated, Status: status}
	case status >= 500:
		return &CallError{Kind: FailureServerFault, Message: MsgServerFault, Status: status}
	case bodyMessage != "":
		return &CallError{Kind: FailureDomain, Message: bodyMessage, Status: status}
	default:
		return &CallError{Kind: FailureUnknown, Message: MsgUnknown, Status: status}
	}
}
