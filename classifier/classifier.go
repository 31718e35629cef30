// Package classifier talks to the external digit recognition service.
package classifier

import (
	"context"

	"github.com/pkg/errors"

	"github.com/juruen/digitpad/sample"
)

var (
	// ErrTransport covers unreachable services and non 2xx responses.
	ErrTransport = errors.New("classifier transport error")
	// ErrMalformedResponse is returned when the body is not a digit.
	ErrMalformedResponse = errors.New("malformed classifier response")
)

// Classifier predicts the digit drawn in a sample.
type Classifier interface {
	Classify(ctx context.Context, s sample.Sample) (int, error)
}
