package widget

import "errors"

var (
	// ErrInvalidComposition rejects a tree shape the toolkit does not support
	ErrInvalidComposition = errors.New("widget: invalid composition")

	// ErrFocusUnavailable reports a render with nothing able to hold the cursor
	ErrFocusUnavailable = errors.New("widget: focus unavailable")
)
