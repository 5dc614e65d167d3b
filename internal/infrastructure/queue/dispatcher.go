package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/api/metrics"
	"github.com/homeservice/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	jobTimeout     = 10 * time.Second
)

// Dispatcher runs mark-all-read jobs on a fixed set of workers, sharded by
// client id so that jobs of one visitor run in submission order.
type Dispatcher struct {
	workers []chan ports.MarkReadJob
	backend ports.NotificationBackend
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, backend ports.NotificationBackend, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.MarkReadJob, numWorkers),
		backend: backend,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MarkReadJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands job to the worker responsible for its client. It never
// blocks: when that worker's buffer is full the job is dropped and false
// is returned.
func (d *Dispatcher) Enqueue(job ports.MarkReadJob) bool {
	idx := d.shardIndex(job.ClientID)
	select {
	case d.workers[idx] <- job:
		metrics.MarkReadQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.MarkReadJobsTotal.WithLabelValues("dropped").Inc()
		return false
	}
}

// shardIndex maps a client id deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientID string) int {
	return int(xxhash.Sum64String(clientID) % uint64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MarkReadJob) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.MarkReadQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, job)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, job ports.MarkReadJob) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := d.backend.MarkAllRead(ctx, job.Token)
	metrics.MarkReadDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.MarkReadJobsTotal.WithLabelValues("error").Inc()
		d.log.Warn().Err(err).
			Str("client_id", job.ClientID).
			Int("worker_id", workerID).
			Msg("mark all read failed")
		return
	}
	metrics.MarkReadJobsTotal.WithLabelValues("ok").Inc()
}
