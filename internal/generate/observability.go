package generate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"planfairy/internal/domain"
)

// CallEvent records metadata about a single remote generation attempt.
type CallEvent struct {
	PlanType  domain.PlanType
	LatencyMs int64
	Success   bool
	Fallback  bool // local render substituted for a failed remote call
	ErrorCode string
}

// Observer receives events about generation calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes generation call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] plan_call type=%s latency_ms=%d status=%s fallback=%t\n",
		ts, event.PlanType, event.LatencyMs, status, event.Fallback)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

func errorCode(err error) string {
	var up *UpstreamError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.As(err, &up):
		return fmt.Sprintf("UPSTREAM_%d", up.Status)
	default:
		return "UNKNOWN"
	}
}
