package schoolapi

// Error is the failure of one API call. Its text is always fit for a UI
// banner: the server-provided message when there is one, else the
// per-operation fallback ("Failed to fetch students", ...).
type Error struct {
	StatusCode int    // 0 when the request never completed
	Message    string // server-provided, may be empty

	fallback string
	cause    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.fallback
}

func (e *Error) Unwrap() error { return e.cause }
