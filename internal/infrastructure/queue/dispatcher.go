package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/api/metrics"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher delivers queued reset mails through a fixed set of workers,
// sharded by recipient so repeated requests for the same address stay in
// order. Delivery failures are logged and dropped; the requesting user has
// already received their response by the time a mail is dequeued.
type Dispatcher struct {
	workers []chan ports.ResetMail
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ResetMail, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ResetMail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a mail to the worker responsible for its recipient. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(mail ports.ResetMail) {
	d.workers[d.shardIndex(mail.To)] <- mail
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ResetMail) {
	for {
		select {
		case <-ctx.Done():
			return
		case mail, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := d.mailer.SendPasswordReset(ctx, mail.To, mail.Token)
			metrics.EmailDeliveryDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ResetEmailsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("to", mail.To).
					Int("worker_id", id).
					Msg("password reset email delivery failed")
				continue
			}
			metrics.ResetEmailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
