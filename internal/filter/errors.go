package filter

import "errors"

// ErrUnknownReducer is returned by ParseReducer for names it does not know.
var ErrUnknownReducer = errors.New("filter: unknown reducer")
