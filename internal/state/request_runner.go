package state

import (
	"context"
	"sync"
	"time"
)

// RequestKind groups requests where only the newest one matters.
type RequestKind int

const (
	RequestTags RequestKind = iota
	RequestDirectory
	RequestVolumes
	RequestSearch
	RequestMutation
)

func (k RequestKind) String() string {
	switch k {
	case RequestTags:
		return "tags"
	case RequestDirectory:
		return "directory"
	case RequestVolumes:
		return "volumes"
	case RequestSearch:
		return "search"
	case RequestMutation:
		return "mutation"
	default:
		return "unknown"
	}
}

// RequestRunner performs backend calls off the event loop.
type RequestRunner interface {
	Start(req Request)
	Cancel(token int)
}

// Request describes one backend call. Run performs it and returns the action
// carrying the result; Callback receives that action unless the request was
// cancelled first.
type Request struct {
	Token    int
	Kind     RequestKind
	Run      func(ctx context.Context) Action
	Callback func(Action)
}

// NewAsyncRequestRunner constructs the default goroutine-based runner. A
// positive timeout bounds every call.
func NewAsyncRequestRunner(timeout time.Duration) RequestRunner {
	return &asyncRequestRunner{
		timeout: timeout,
		jobs:    make(map[int]context.CancelFunc),
	}
}

type asyncRequestRunner struct {
	timeout time.Duration
	mu      sync.Mutex
	jobs    map[int]context.CancelFunc
}

func (r *asyncRequestRunner) Start(req Request) {
	if req.Token == 0 || req.Run == nil || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if r.timeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, r.timeout)
		parentCancel := cancel
		cancel = func() {
			timeoutCancel()
			parentCancel()
		}
	}

	r.mu.Lock()
	r.jobs[req.Token] = cancel
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			delete(r.jobs, req.Token)
			r.mu.Unlock()
			cancel()
		}()

		result := req.Run(ctx)

		// Cancelled by a newer request; a timeout still reports its error.
		if ctx.Err() == context.Canceled {
			return
		}

		req.Callback(result)
	}()
}

func (r *asyncRequestRunner) Cancel(token int) {
	r.mu.Lock()
	if cancel, ok := r.jobs[token]; ok {
		cancel()
		delete(r.jobs, token)
	}
	r.mu.Unlock()
}
