package payments

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("payment not found")
	ErrDuplicateReference       = errors.New("duplicate transaction reference")
	ErrTransactionNotSuccessful = errors.New("transaction not successful")
	ErrGatewayUnavailable       = errors.New("payment gateway unavailable")
)

// GatewayError is a non-2xx response from the gateway. The status code and
// raw body are passed through to the client unchanged.
type GatewayError struct {
	StatusCode int
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway rejected request: status %d", e.StatusCode)
}
