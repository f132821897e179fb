// Package workpool runs tasks on a fixed set of goroutines that each install
// fault translation before taking work.
//
// Every task runs under xgxfault.Guard, so a fault fails that task only; the
// worker keeps draining the queue. Any other panic stops its worker and the
// batch: it is recovered into a *PanicError, the batch context is cancelled
// and no further tasks are dispatched. Run returns every error, joined.
package workpool

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	xgxfault "github.com/xgx-io/xgx-fault"
	"github.com/xgx-io/xgx-fault/faultmetrics"
	"github.com/xgx-io/xgx-fault/logfault"
)

// Task is a unit of fault-prone work.
type Task func(ctx context.Context) error

// Pool is a fixed-size worker pool. A Pool may Run several batches, one at
// a time or concurrently; each Run starts its own workers.
type Pool struct {
	name    string
	size    int
	lockOS  bool
	log     logrus.FieldLogger
	metrics *faultmetrics.Collector
	onFault func(xgxfault.Fault)
}

// PanicError reports a task that panicked with a value other than a fault.
type PanicError struct {
	Worker string
	Task   int
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workpool: task %d panicked on %s: %v", e.Task, e.Worker, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Option configures a Pool.
type Option func(*Pool)

// WithLockOSThread locks each worker to its OS thread and names the thread
// after the worker.
func WithLockOSThread() Option { return func(p *Pool) { p.lockOS = true } }

// WithLogger sets the logger faults are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics counts installs and translated faults on c.
func WithMetrics(c *faultmetrics.Collector) Option { return func(p *Pool) { p.metrics = c } }

// WithFaultHandler calls fn, on the worker goroutine, for every translated
// fault.
func WithFaultHandler(fn func(xgxfault.Fault)) Option { return func(p *Pool) { p.onFault = fn } }

// New returns a pool of size workers named "<name>-<i>". size < 1 means 1.
func New(name string, size int, opts ...Option) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{name: name, size: size, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the number of workers per Run.
func (p *Pool) Size() int { return p.size }

// Run executes tasks and waits for them. Task errors, translated faults
// included, are returned combined with xgxfault.Join in task order, followed
// by any *PanicError. When ctx is cancelled, tasks not yet dispatched are
// skipped and ctx.Err() is appended.
func (p *Pool) Run(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}
	workers := min(p.size, len(tasks))

	errs := make([]error, len(tasks))
	queue := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		name := fmt.Sprintf("%s-%d", p.name, w)
		g.Go(func() error {
			return p.work(gctx, name, queue, tasks, errs)
		})
	}

	var cancelled error
dispatch:
	for i := range tasks {
		select {
		case queue <- i:
		case <-gctx.Done():
			// nil when a worker failed rather than the caller cancelling.
			cancelled = ctx.Err()
			break dispatch
		}
	}
	close(queue)
	failed := g.Wait()

	return xgxfault.Join(append(errs, failed, cancelled)...)
}

func (p *Pool) work(ctx context.Context, name string, queue <-chan int, tasks []Task, errs []error) (err error) {
	opts := []xgxfault.Option{xgxfault.WithLabels(ctx)}
	if p.lockOS {
		opts = append(opts, xgxfault.WithLockOSThread())
	}
	xgxfault.EnsureInstalled(name, opts...)
	defer xgxfault.Release()
	if p.metrics != nil {
		p.metrics.ObserveInstall()
	}

	current := -1
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Worker: name, Task: current, Value: r}
			p.log.WithField("worker", name).WithField("task", current).Errorf("task panicked: %v", r)
		}
	}()

	for i := range queue {
		current = i
		terr := xgxfault.Guard(func() error { return tasks[i](ctx) })
		if f, ok := xgxfault.AsFault(terr); ok {
			p.report(i, f)
		}
		errs[i] = terr
	}
	return nil
}

func (p *Pool) report(task int, f xgxfault.Fault) {
	p.log.WithError(f).WithFields(logfault.Fields(f)).WithField("task", task).Error("task faulted")
	if p.metrics != nil {
		p.metrics.Observe(f)
	}
	if p.onFault != nil {
		p.onFault(f)
	}
}
