package backup

import (
	"fmt"
	"io"
	"time"
)

// TransferEvent records metadata about one finished backup or restore.
type TransferEvent struct {
	Op        string // "backup" or "restore"
	Bytes     int
	LatencyMs int64
	Success   bool
}

// Observer receives events about drive transfers for logging and metrics.
type Observer interface {
	OnTransferComplete(event TransferEvent)
}

// LogObserver writes transfer events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnTransferComplete(event TransferEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err"
	}
	fmt.Fprintf(o.w, "[%s] drive_%s bytes=%d latency_ms=%d status=%s\n",
		ts, event.Op, event.Bytes, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnTransferComplete(TransferEvent) {}
