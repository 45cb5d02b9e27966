package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/tristanschneider/syx-sub002/internal/task"
)

var (
	tracer = otel.Tracer("syx-sub002/scheduler")
	meter  = otel.Meter("syx-sub002/scheduler")
)

// Executor runs a Graph to completion against a fixed worker pool, honoring
// the pinning rules in §4.6. mainIndex names the thread index reserved for
// PinMain tasks.
type Executor struct {
	workers    int
	mainIndex  int
	frameHist  metric.Float64Histogram
	newArgs    func(threadIndex int) *task.Args
	hungAfter  time.Duration
}

// NewExecutor creates an Executor over a fixed pool of workers threads.
// newArgs builds the per-thread task.Args (shadow database accessor, etc)
// each dispatched task receives.
func NewExecutor(workers int, newArgs func(threadIndex int) *task.Args) (*Executor, error) {
	if workers < 1 {
		return nil, fmt.Errorf("scheduler: workers must be >= 1, got %d", workers)
	}
	hist, err := meter.Float64Histogram(
		"syx_sub002_frame_duration_seconds",
		metric.WithDescription("wall-clock duration of one Graph.Run call"),
	)
	if err != nil {
		return nil, fmt.Errorf("scheduler: creating frame histogram: %w", err)
	}
	return &Executor{
		workers:   workers,
		newArgs:   newArgs,
		frameHist: hist,
		hungAfter: 30 * time.Second,
	}, nil
}

// Run executes every task in g to completion. Ready tasks (those whose
// deps have all completed) are dispatched as their pinning allows; PinAny
// tasks compete for the semaphore-bounded worker pool, PinMain and
// PinSpecific tasks run serialized per designated thread, and PinSynchronous
// tasks run alone as a barrier.
func (e *Executor) Run(ctx context.Context, g *Graph) error {
	start := time.Now()
	defer func() {
		e.frameHist.Record(ctx, time.Since(start).Seconds())
	}()

	ctx, span := tracer.Start(ctx, "scheduler.Run")
	defer span.End()

	n := g.Len()
	done := make([]chan struct{}, n)
	for i := range done {
		done[i] = make(chan struct{})
	}

	sem := semaphore.NewWeighted(int64(e.workers))
	var mainMu sync.Mutex
	specificMu := make(map[int]*sync.Mutex)
	for _, nd := range g.nodes {
		if nd.task.Pinning == task.PinSpecific && specificMu[nd.task.ThreadIndex] == nil {
			specificMu[nd.task.ThreadIndex] = &sync.Mutex{}
		}
	}
	var synchronousMu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)

	for i := 0; i < n; i++ {
		i := i
		nd := g.nodes[i]
		group.Go(func() error {
			for _, dep := range nd.deps {
				select {
				case <-done[dep]:
				case <-groupCtx.Done():
					return groupCtx.Err()
				}
			}

			threadIndex := 0
			switch nd.task.Pinning {
			case task.PinMain:
				mainMu.Lock()
				defer mainMu.Unlock()
				threadIndex = e.mainIndex
			case task.PinSpecific:
				mu := specificMu[nd.task.ThreadIndex]
				mu.Lock()
				defer mu.Unlock()
				threadIndex = nd.task.ThreadIndex
			case task.PinSynchronous:
				synchronousMu.Lock()
				defer synchronousMu.Unlock()
			default:
				if err := sem.Acquire(groupCtx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
			}

			if err := e.runOne(groupCtx, nd.task, threadIndex); err != nil {
				return err
			}
			close(done[i])
			return nil
		})
	}

	return group.Wait()
}

func (e *Executor) runOne(ctx context.Context, t *task.AppTask, threadIndex int) error {
	_, span := tracer.Start(ctx, "scheduler.Task", trace.WithAttributes(
		attribute.String("task.name", t.Name),
		attribute.String("task.pinning", t.Pinning.String()),
		attribute.Int("task.thread", threadIndex),
	))
	defer span.End()

	args := e.newArgs(threadIndex)
	args.ThreadIndex = threadIndex
	t.Callback(args)
	return nil
}

// WatchSynchronousBarrier is an optional helper for detecting a hung
// synchronous task instead of deadlocking the run indefinitely: it polls
// done with backoff and reports an error once the deadline elapses.
func WatchSynchronousBarrier(ctx context.Context, done <-chan struct{}, deadline time.Duration) error {
	b := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	start := time.Now()
	return backoff.Retry(func() error {
		select {
		case <-done:
			return nil
		default:
			if time.Since(start) > deadline {
				return backoff.Permanent(fmt.Errorf("scheduler: synchronous task did not complete within %s", deadline))
			}
			return fmt.Errorf("scheduler: still waiting")
		}
	}, b)
}
