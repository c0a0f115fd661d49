package service

// HTTPError is an error that already knows which status code and message the
// caller should see. Configuration and validation failures carry 400;
// upstream non-2xx responses relay their own status and body text; transport
// failures collapse into a generic per-endpoint 500.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}
