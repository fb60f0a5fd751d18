package odds

import "errors"

// ErrConfiguration marks a score table the bracket model cannot be built
// from. The underlying cause is wrapped alongside it.
var ErrConfiguration = errors.New("invalid playoff configuration")

// ErrEmptyRef is returned when a query names no entrant.
var ErrEmptyRef = errors.New("empty entrant reference")
