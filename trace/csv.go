package trace

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVTraceWriter stores events in a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File

	events     []Event
	bufferSize int
}

// NewCSVTraceWriter creates a CSV-backed tracer. If path is empty, a
// unique file name is generated.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the trace file and registers a flush at process exit.
// It fails if the file already exists.
func (t *CSVTraceWriter) Init() error {
	if t.path == "" {
		t.path = "vliwdbt_trace_" + xid.New().String()
	}

	filename := t.path + ".csv"
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("trace file %s already exists", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	t.file = file

	fmt.Fprintf(file, "ID, Kind, Where, What\n")

	atexit.Register(func() {
		t.Flush()
		if err := t.file.Close(); err != nil {
			panic(err)
		}
	})

	return nil
}

// Record buffers an event, flushing when the buffer fills.
func (t *CSVTraceWriter) Record(e Event) {
	if e.ID == "" {
		e.ID = NewID()
	}

	t.events = append(t.events, e)
	if len(t.events) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes the buffered events to the CSV file.
func (t *CSVTraceWriter) Flush() {
	for _, e := range t.events {
		fmt.Fprintf(t.file, "%s, %s, %s, %q\n", e.ID, e.Kind, e.Where, e.What)
	}
	t.events = nil
}
