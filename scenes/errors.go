package scenes

import (
	"errors"
	"fmt"
)

// Identification failure taxonomy. ErrNotRecognized is the only non-fatal
// signal: the dispatcher advances past it to the next handler. Everything else
// aborts identification and surfaces to the caller.

// ErrNotRecognized means the scene does not match a handler's naming
// convention.
var ErrNotRecognized = errors.New("scene does not match naming convention")

// ErrAmbiguous means more than one candidate matched the top-level naming
// pattern.
var ErrAmbiguous = errors.New("scene naming ambiguity detected")

// ErrUnsupported means no registered handler recognized the scene.
var ErrUnsupported = errors.New("data format not supported")

// ErrAlreadyProcessed guards conversion against clobbering an existing
// canonical output.
var ErrAlreadyProcessed = errors.New("scene already processed")

// UnsupportedProductError reports a recognized but explicitly excluded product
// class, such as a level-0 or ocean product.
type UnsupportedProductError struct {
	Product string
	Reason  string
}

func (e *UnsupportedProductError) Error() string {
	return fmt.Sprintf("product %s not supported: %s", e.Product, e.Reason)
}
