// Package dispatch runs a frame's systems: access-checked systems packed
// into conflict-free stages that run concurrently, then thread-local
// systems in a fixed order on the calling goroutine.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resource names a piece of shared state a system touches: a process-wide
// resource or a component storage.
type Resource string

// Access declares what a system reads and writes.
type Access struct {
	Reads  []Resource
	Writes []Resource
}

// Conflicts reports whether a and b may not run concurrently: both write
// the same resource, or one writes what the other reads.
func (a Access) Conflicts(b Access) bool {
	for _, w := range a.Writes {
		if slices.Contains(b.Writes, w) || slices.Contains(b.Reads, w) {
			return true
		}
	}
	for _, w := range b.Writes {
		if slices.Contains(a.Reads, w) {
			return true
		}
	}
	return false
}

// System is a unit of per-frame work over a world of type W that may run
// concurrently with systems it does not conflict with.
type System[W any] interface {
	Name() string
	Access() Access
	Run(ctx context.Context, w W) error
}

// Local is a system that must run on the dispatching goroutine, in
// registration order, after every concurrent stage.
type Local[W any] interface {
	Name() string
	Run(ctx context.Context, w W) error
}

// Builder collects systems and derives the schedule.
type Builder[W any] struct {
	systems []System[W]
	locals  []Local[W]
	log     *zap.Logger
}

// NewBuilder returns an empty builder.
func NewBuilder[W any]() *Builder[W] {
	return &Builder[W]{log: zap.NewNop()}
}

// WithLogger sets the logger the dispatcher reports schedules and system
// errors on.
func (b *Builder[W]) WithLogger(log *zap.Logger) *Builder[W] {
	b.log = log
	return b
}

// Add registers a concurrent system.
func (b *Builder[W]) Add(s System[W]) *Builder[W] {
	b.systems = append(b.systems, s)
	return b
}

// AddLocal registers a thread-local system.
func (b *Builder[W]) AddLocal(s Local[W]) *Builder[W] {
	b.locals = append(b.locals, s)
	return b
}

// Build packs the concurrent systems into stages. Each system lands one
// stage after the latest earlier-registered system it conflicts with, so
// systems that touch the same state keep their registration order and
// no stage holds two conflicting systems.
func (b *Builder[W]) Build() *Dispatcher[W] {
	stageOf := make([]int, len(b.systems))
	var stages [][]System[W]

	for i, s := range b.systems {
		stage := 0
		for j := 0; j < i; j++ {
			if stageOf[j] >= stage && s.Access().Conflicts(b.systems[j].Access()) {
				stage = stageOf[j] + 1
			}
		}
		stageOf[i] = stage
		if stage == len(stages) {
			stages = append(stages, nil)
		}
		stages[stage] = append(stages[stage], s)
	}

	d := &Dispatcher[W]{
		stages: stages,
		locals: slices.Clone(b.locals),
		log:    b.log,
	}
	b.log.Debug("schedule built",
		zap.Any("stages", d.Stages()),
		zap.Strings("local", d.LocalNames()))
	return d
}

// Dispatcher runs one frame of systems.
type Dispatcher[W any] struct {
	stages [][]System[W]
	locals []Local[W]
	log    *zap.Logger
}

// Stages returns the system names per stage.
func (d *Dispatcher[W]) Stages() [][]string {
	out := make([][]string, len(d.stages))
	for i, stage := range d.stages {
		for _, s := range stage {
			out[i] = append(out[i], s.Name())
		}
	}
	return out
}

// LocalNames returns the thread-local systems in run order.
func (d *Dispatcher[W]) LocalNames() []string {
	names := make([]string, len(d.locals))
	for i, s := range d.locals {
		names[i] = s.Name()
	}
	return names
}

// Dispatch runs every stage, then every thread-local system. A failing
// system does not stop the frame; the returned error joins all failures.
func (d *Dispatcher[W]) Dispatch(ctx context.Context, w W) error {
	var errs []error

	for _, stage := range d.stages {
		if len(stage) == 1 {
			if err := run[W](ctx, stage[0], w); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		var g errgroup.Group
		for _, s := range stage {
			g.Go(func() error {
				return run[W](ctx, s, w)
			})
		}
		if err := g.Wait(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, s := range d.locals {
		if err := run[W](ctx, s, w); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type runner[W any] interface {
	Name() string
	Run(ctx context.Context, w W) error
}

func run[W any](ctx context.Context, s runner[W], w W) error {
	if err := s.Run(ctx, w); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	return nil
}
