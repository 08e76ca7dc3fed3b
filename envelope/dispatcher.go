package envelope

import "sync"

// Dispatcher offloads solves to worker goroutines so a caller's UI (or
// request loop) stays responsive. Each Submit runs one complete solve;
// when a newer sequence number has been submitted in the meantime, the
// older result is dropped instead of delivered. The solver itself is
// never interrupted - superseding happens only at this boundary.
type Dispatcher struct {
	mu     sync.Mutex
	latest uint64

	results chan Response
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher whose Results channel buffers up
// to buffer responses (minimum 1). Delivery never blocks a worker: when
// the buffer is full because the consumer stalled, the OLDEST
// undelivered response is dropped to make room - newest wins, the same
// policy as sequence superseding - so Wait cannot deadlock behind a
// slow consumer.
func NewDispatcher(buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}

	return &Dispatcher{results: make(chan Response, buffer)}
}

// Results delivers responses for non-superseded requests.
func (d *Dispatcher) Results() <-chan Response {
	return d.results
}

// Submit schedules req on a fresh worker goroutine and returns
// immediately. Requests whose sequence number is below the highest one
// seen so far are already stale and never run.
func (d *Dispatcher) Submit(req Request) {
	d.mu.Lock()
	if req.Seq > d.latest {
		d.latest = req.Seq
	}
	stale := req.Seq < d.latest
	d.mu.Unlock()
	if stale {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		resp := Solve(req)

		d.mu.Lock()
		stale := req.Seq < d.latest
		d.mu.Unlock()
		if stale {
			return // a newer request superseded this one mid-solve
		}
		d.deliver(resp)
	}()
}

// deliver enqueues resp without ever blocking: if the buffer is full,
// the oldest undelivered response is discarded first. The loop absorbs
// races with concurrent workers and consumers.
func (d *Dispatcher) deliver(resp Response) {
	for {
		select {
		case d.results <- resp:
			return
		default:
		}
		select {
		case <-d.results:
		default:
		}
	}
}

// Wait blocks until every submitted solve has finished (delivered or
// dropped). Intended for orderly shutdown and tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
