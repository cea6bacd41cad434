package pipeline

import "errors"

// ErrSourceUnavailable is returned when the count-discovery request fails;
// it aborts the run.
var ErrSourceUnavailable = errors.New("catalog source unavailable")
