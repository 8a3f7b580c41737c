package sim

import (
	"context"
	"time"

	"github.com/verte-zerg/nixie/internal/prompt"
)

// Request asks the idle appliance to open a screen.
type Request uint8

const (
	RequestSettings Request = iota + 1
	RequestInfo
)

// Keys queues encoder and button edges from the front end. Edges that
// arrive while the queue is full are dropped, like a busy microcontroller
// missing them.
type Keys struct {
	signals  chan prompt.Signal
	requests chan Request
	feedback func()
}

func NewKeys() *Keys {
	return &Keys{
		signals:  make(chan prompt.Signal, 16),
		requests: make(chan Request, 1),
	}
}

// Send queues sig and reports whether it was accepted.
func (k *Keys) Send(sig prompt.Signal) bool {
	select {
	case k.signals <- sig:
		return true
	default:
		return false
	}
}

// Open asks for a screen. A request made while another is pending is
// dropped.
func (k *Keys) Open(r Request) bool {
	select {
	case k.requests <- r:
		return true
	default:
		return false
	}
}

// OnSignal registers fn to run on the reading goroutine for every edge
// taken from the queue. It must be called before the queue is read.
func (k *Keys) OnSignal(fn func()) {
	k.feedback = fn
}

func (k *Keys) take(sig prompt.Signal) prompt.Signal {
	if k.feedback != nil {
		k.feedback()
	}
	return sig
}

func (k *Keys) Await(ctx context.Context, timeout time.Duration) prompt.Signal {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case sig := <-k.signals:
		return k.take(sig)
	case <-timer.C:
		return prompt.SignalNone
	case <-ctx.Done():
		return prompt.SignalNone
	}
}
