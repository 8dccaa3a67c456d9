package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Event is one audited action. Zero IDs are stored as NULL.
type Event struct {
	UserID   uint
	Action   string
	Entity   string
	EntityID uint
	Metadata any
}

type Dispatcher struct {
	writer Writer
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(w Writer) *Dispatcher {
	d := &Dispatcher{
		writer: w,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.writer.Write(ctx, ev); err != nil {
			slog.Error("audit write failed",
				slog.String("action", ev.Action),
				slog.String("entity", ev.Entity),
				slog.Any("err", err),
			)
		}
		cancel()
	}
}

// Dispatch never blocks the caller; when the queue is full the event is
// dropped. A nil Dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		slog.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close drains queued events and stops the worker. Dispatch must not be
// called afterwards.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
