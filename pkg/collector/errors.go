package collector

import "errors"

// ErrCompleted is returned by Submit once a session has produced its record.
// A session emits exactly one ResponseRecord, ever.
var ErrCompleted = errors.New("collector: session already completed")
