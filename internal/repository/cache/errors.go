package cache

// ErrorHandler carries the HTTP status a cache failure should map to,
// so handlers do not have to guess between 404 and 500.
type ErrorHandler struct {
	Err        error
	StatusCode int
}

func NewErrorHandler(err error, statusCode int) ErrorHandler {
	return ErrorHandler{Err: err, StatusCode: statusCode}
}

func (e ErrorHandler) Error() string {
	return e.Err.Error()
}
