package bridge

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Sink receives settled responses for blocking commands, and the
// ShutdownInProgress reports for requests abandoned during drain. The
// response ID matches the originating request.
type Sink func(Response)

// Config tunes the dispatcher's worker pool.
type Config struct {
	MaxWorkers int
	QueueSize  int
}

func defaultConfig() Config {
	return Config{MaxWorkers: 4, QueueSize: 64}
}

type state int

const (
	stateCreated state = iota // built, not yet reachable from the UI
	stateAccepting
	stateDraining
	stateClosed
)

type pendingCall struct {
	req     Request
	cmd     Command
	ctx     context.Context
	cancel  context.CancelFunc
	settled atomic.Bool
}

// Dispatcher is the only path from the UI surface into host
// functionality. It resolves requests against the registry, executes
// each handler exactly once, and guarantees exactly one response per
// request. Handler failures never terminate the process.
type Dispatcher struct {
	registry *Registry
	sink     Sink
	cfg      Config

	mu       sync.Mutex
	state    state
	pending  map[string]*pendingCall
	inflight sync.WaitGroup

	queue     chan *pendingCall
	stopCh    chan struct{}
	workers   sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher over the given registry. The sink
// may be nil when no asynchronous completions are expected.
func NewDispatcher(registry *Registry, sink Sink, cfg Config) *Dispatcher {
	def := defaultConfig()
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = def.MaxWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}

	d := &Dispatcher{
		registry: registry,
		sink:     sink,
		cfg:      cfg,
		pending:  make(map[string]*pendingCall),
		queue:    make(chan *pendingCall, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.MaxWorkers; i++ {
		d.workers.Add(1)
		go d.worker()
	}

	return d
}

// Start makes the dispatcher reachable. Requests arriving before Start
// or after Close are answered with a ShutdownInProgress error.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == stateCreated {
		d.state = stateAccepting
	}
}

// Dispatch resolves and executes one request. Non-blocking commands
// settle synchronously. Blocking commands are handed to the worker
// pool and acknowledged with StatusAccepted; their settled response is
// delivered through the sink under the request's correlation ID.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	cmd, err := d.registry.Resolve(req.Command)

	d.mu.Lock()
	if d.state != stateAccepting {
		d.mu.Unlock()
		return errResponse(req.ID, KindShutdownInProgress, "dispatcher is not accepting requests")
	}
	if err != nil {
		d.mu.Unlock()
		return errResponse(req.ID, KindUnknownCommand, err.Error())
	}
	d.inflight.Add(1)

	if !cmd.Blocking {
		d.mu.Unlock()
		defer d.inflight.Done()
		return d.run(ctx, cmd, req)
	}

	// The caller's context dies with the bound call, so worker runs
	// get their own cancelable context.
	callCtx, cancel := context.WithCancel(context.Background())
	call := &pendingCall{req: req, cmd: cmd, ctx: callCtx, cancel: cancel}
	d.pending[req.ID] = call
	d.mu.Unlock()

	select {
	case d.queue <- call:
		return Response{ID: req.ID, Status: StatusAccepted}
	default:
		d.forget(req.ID)
		cancel()
		d.inflight.Done()
		return errResponse(req.ID, KindHandlerFailure, "worker queue is full")
	}
}

// run executes the handler exactly once, converting failures and
// panics into HandlerFailure responses.
func (d *Dispatcher) run(ctx context.Context, cmd Command, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[bridge] handler %s panicked: %v", req.Command, r)
			resp = errResponse(req.ID, KindHandlerFailure, fmt.Sprintf("handler panic: %v", r))
		}
	}()

	payload, err := cmd.Handler(ctx, req.Args)
	if err != nil {
		return errResponse(req.ID, KindHandlerFailure, err.Error())
	}
	return okResponse(req.ID, payload)
}

func (d *Dispatcher) worker() {
	defer d.workers.Done()
	for {
		select {
		case <-d.stopCh:
			return
		case call := <-d.queue:
			d.execute(call)
		}
	}
}

func (d *Dispatcher) execute(call *pendingCall) {
	defer d.inflight.Done()
	defer call.cancel()
	defer d.forget(call.req.ID)

	if call.settled.Load() {
		// Abandoned during drain before the handler started.
		return
	}

	resp := d.run(call.ctx, call.cmd, call.req)
	if call.settled.CompareAndSwap(false, true) {
		d.emit(resp)
	}
}

func (d *Dispatcher) forget(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, id)
}

func (d *Dispatcher) emit(resp Response) {
	if d.sink != nil {
		d.sink(resp)
	}
}

// Close stops accepting new requests and drains in-flight ones. When
// the drain deadline elapses, remaining requests are abandoned and
// reported as ShutdownInProgress through the sink; their contexts are
// canceled so cooperative handlers can bail out.
func (d *Dispatcher) Close(drainTimeout time.Duration) {
	d.closeOnce.Do(func() {
		if drainTimeout <= 0 {
			drainTimeout = 5 * time.Second
		}
		d.close(drainTimeout)
	})
}

func (d *Dispatcher) close(drainTimeout time.Duration) {
	d.mu.Lock()
	d.state = stateDraining
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		close(d.stopCh)
		d.workers.Wait()
	case <-time.After(drainTimeout):
		log.Printf("[bridge] drain deadline elapsed, abandoning remaining requests")
		close(d.stopCh)
		d.abandonPending()
	}

	d.mu.Lock()
	d.state = stateClosed
	d.mu.Unlock()
}

func (d *Dispatcher) abandonPending() {
	d.mu.Lock()
	calls := make([]*pendingCall, 0, len(d.pending))
	for _, call := range d.pending {
		calls = append(calls, call)
	}
	d.mu.Unlock()

	for _, call := range calls {
		call.cancel()
		if call.settled.CompareAndSwap(false, true) {
			d.emit(errResponse(call.req.ID, KindShutdownInProgress,
				"request abandoned at shutdown deadline"))
		}
	}
}
