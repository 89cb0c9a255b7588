package prompt

import "errors"

// ErrAborted reports that the participant interrupted the trial (typically
// ctrl+c) before completing it. No record is produced.
var ErrAborted = errors.New("prompt: aborted")
