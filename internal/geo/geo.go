package geo

// Error describes a failure against an external geographic service with
// the HTTP status the proxy should answer with: 502 for transport
// failures, 500 for payloads that defy schema expectations, 404 for an
// empty result set.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func transportErr(msg string) *Error {
	return &Error{Status: 502, Message: msg}
}

func payloadErr(msg string) *Error {
	return &Error{Status: 500, Message: msg}
}

func notFoundErr(msg string) *Error {
	return &Error{Status: 404, Message: msg}
}
