package probe

import "github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"

// workerQueueDepth sizes a worker's private job queue. A card exposes at
// most a handful of endpoints per direction, so this never fills in
// practice; the dispatcher would simply block on its own send if it did.
const workerQueueDepth = 64

type jobKind int

const (
	jobGetDevice jobKind = iota
	jobDone
)

type job struct {
	kind    jobKind
	name    string
	cardKey string
	dir     alsa.Direction
}

type workerResult struct {
	playback []Endpoint
	capture  []Endpoint
}

// worker owns all probing for one physical card. Jobs are consumed strictly
// in order by a single goroutine, which is what guarantees a card is never
// opened by two concurrent sessions; cards that lack a builtin mixer fail
// when that happens.
type worker struct {
	cardKey string
	jobs    chan job
	results chan workerResult
	done    chan struct{} // closed when the worker goroutine exits
}

func newWorker(cardKey string, prober *Prober) *worker {
	w := &worker{
		cardKey: cardKey,
		jobs:    make(chan job, workerQueueDepth),
		results: make(chan workerResult, 1),
		done:    make(chan struct{}),
	}
	go w.run(prober)
	return w
}

func (w *worker) run(prober *Prober) {
	defer close(w.done)

	var res workerResult
	for j := range w.jobs {
		switch j.kind {
		case jobDone:
			w.results <- res
			return
		case jobGetDevice:
			ep := prober.ProbeEndpoint(j.name, j.cardKey, j.dir)
			if ep == nil {
				continue
			}
			if ep.Direction == alsa.Capture {
				res.capture = append(res.capture, *ep)
			} else {
				res.playback = append(res.playback, *ep)
			}
		}
	}
}

// send delivers a job unless the worker goroutine has already exited. The
// jobs channel is buffered, so done is checked first; a send that would only
// park the job in a dead worker's queue must report failure instead.
func (w *worker) send(j job) bool {
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.jobs <- j:
		return true
	case <-w.done:
		return false
	}
}

// Dispatcher routes endpoints to the worker owning their card key, spawning
// workers on demand. The worker map is owned and mutated by the single
// dispatching goroutine only.
type Dispatcher struct {
	prober  *Prober
	workers map[string]*worker
}

// NewDispatcher creates a dispatcher over the given prober.
func NewDispatcher(prober *Prober) *Dispatcher {
	return &Dispatcher{
		prober:  prober,
		workers: make(map[string]*worker),
	}
}

// AddJob queues one endpoint for probing on its card's worker. If the card's
// worker has died, it is dropped and a fresh one spawned, so later jobs for
// the card are not lost.
func (d *Dispatcher) AddJob(name string, dir alsa.Direction) {
	cardKey := CardKey(name)
	j := job{kind: jobGetDevice, name: name, cardKey: cardKey, dir: dir}

	if w, ok := d.workers[cardKey]; ok {
		if w.send(j) {
			return
		}
		delete(d.workers, cardKey)
	}

	w := newWorker(cardKey, d.prober)
	if w.send(j) {
		d.workers[cardKey] = w
	}
}

// Finalize tells every worker to finish its queue, waits for each, and
// merges their accumulators. A worker that exited without delivering a
// result contributes nothing: its card's endpoints are silently absent,
// which is the documented partial-failure mode.
func (d *Dispatcher) Finalize() (playback, capture []Endpoint) {
	for _, w := range d.workers {
		w.send(job{kind: jobDone})

		var res workerResult
		var ok bool
		select {
		case res = <-w.results:
			ok = true
		case <-w.done:
			// The goroutine may have delivered just before exiting.
			select {
			case res = <-w.results:
				ok = true
			default:
			}
		}
		if ok {
			playback = append(playback, res.playback...)
			capture = append(capture, res.capture...)
		}
	}
	d.workers = make(map[string]*worker)
	return playback, capture
}

// Close terminates all workers without collecting results. Used on early
// abort so no worker goroutine is leaked.
func (d *Dispatcher) Close() {
	for _, w := range d.workers {
		w.send(job{kind: jobDone})
		<-w.done
	}
	d.workers = make(map[string]*worker)
}
