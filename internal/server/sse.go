package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/career-mentor/internal/mentor"
)

// SSE event names sent while streaming a mentor run.
const (
	eventProgress = "progress"
	eventComplete = "complete"
	eventError    = "error"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// runStream writes a mentor run as Server-Sent Events: one progress event per
// step, then either complete (with the report) or error.
type runStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

func newRunStream(w http.ResponseWriter) (*runStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &runStream{w: w, flusher: flusher}, nil
}

// send writes one numbered event and flushes it to the client.
func (s *runStream) send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Progress forwards a mentor step. A client that went away is ignored here;
// the request context cancels the run.
func (s *runStream) Progress(e mentor.ProgressEvent) {
	_ = s.send(eventProgress, e)
}

// Fail ends the stream with the same error body the JSON endpoints use.
func (s *runStream) Fail(err error) {
	_ = s.send(eventError, map[string]string{
		"error":   errorCode(HTTPStatus(err)),
		"message": err.Error(),
	})
}

// Complete ends the stream with the run report.
func (s *runStream) Complete(report *mentor.Report) {
	_ = s.send(eventComplete, report)
}
