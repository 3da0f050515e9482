package translation

import "errors"

// Contract-violation errors. These indicate caller mis-sequencing and
// are surfaced immediately, never retried. Stream exhaustion and
// budget exhaustion are normal block-closing conditions, not errors.
var (
	// ErrStreamIndexOutOfRange reports a build start index beyond the
	// supplied stream.
	ErrStreamIndexOutOfRange = errors.New("stream index out of range")
)
