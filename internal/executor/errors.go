package executor

import "fmt"

// SequenceError reports an action invoked out of valid state-machine order,
// such as placing an item that is not currently held. It is recoverable: the
// text is surfaced back to the caller so it can retry in the right order.
type SequenceError struct {
	Action string
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s out of sequence: %s", e.Action, e.Reason)
}

// InvalidActionError reports malformed or out-of-range action arguments,
// such as an unknown item id or a rotation outside the four cardinal
// orientations. Like SequenceError it is recoverable.
type InvalidActionError struct {
	Action string
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Action, e.Reason)
}

// Recoverable reports whether err is a sequence or invalid-action error that
// the caller can observe and correct, as opposed to a fatal failure.
func Recoverable(err error) bool {
	switch err.(type) {
	case *SequenceError, *InvalidActionError:
		return true
	}
	return false
}
