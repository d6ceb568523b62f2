package api

import (
	"fmt"
	"net/http"

	"github.com/hiai-demo-qms/qmshub/internal/common"
)

// ServerError is a non-2xx backend reply. It unwraps to common.ErrServer,
// and additionally to common.ErrUnauthorized when the status is 401, so
// callers can classify with errors.Is.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (e *ServerError) Unwrap() []error {
	if e.Status == http.StatusUnauthorized {
		return []error{common.ErrServer, common.ErrUnauthorized}
	}
	return []error{common.ErrServer}
}
