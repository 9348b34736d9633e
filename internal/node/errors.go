package node

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
)

// ErrUnknownProperty is returned when a property key is not defined.
var ErrUnknownProperty = errors.New("unknown property")

// ValidationError is a user-facing compute failure, such as a parameter out
// of its meaningful range. It is shown on the node rather than aborting.
type ValidationError struct {
	// Node is stamped by the manager; nodes leave it zero.
	Node    nodeid.NodeID
	Message string
}

func (e *ValidationError) Error() string {
	if e.Node == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Node, e.Message)
}

// Invalid returns a ValidationError with a formatted message.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
