package trace

import (
	"fmt"
	"io"
)

// WriterTracer renders events as text lines on an io.Writer.
type WriterTracer struct {
	w io.Writer
}

// NewWriterTracer creates a tracer that writes to w.
func NewWriterTracer(w io.Writer) *WriterTracer {
	return &WriterTracer{w: w}
}

// Record writes one line per event.
func (t *WriterTracer) Record(e Event) {
	fmt.Fprintf(t.w, "[%s] %s: %s\n", e.Kind, e.Where, e.What)
}
