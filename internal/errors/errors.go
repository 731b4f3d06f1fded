package errors

// ErrValidation reports a malformed write payload. Handlers translate it to a
// 400 response before any storage mutation happens.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}
