package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"avatar_platform/internal/logger"
	"avatar_platform/internal/metrics"
)

// Bootstrap step names, used in errors, logs and metric labels.
const (
	StepSchema = "schema"
	StepSeed   = "seed"
)

// SchemaMigrator creates or upgrades the store schema.
type SchemaMigrator interface {
	Migrate(ctx context.Context) (int, error)
}

// Seeder fills the store with initial rows when it is empty.
type Seeder interface {
	Seed(ctx context.Context) (int, error)
}

// StepError tells which bootstrap step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("bootstrap %s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// Bootstrap runs schema migration and catalog seeding once per process.
//
// The done flag is checked without locking: requests arriving together
// before the first run completes may each run the steps. Both steps are
// idempotent, so the cost is a few redundant queries.
type Bootstrap struct {
	migrator SchemaMigrator
	seeder   Seeder
	metrics  *metrics.Metrics
	log      *logger.Logger

	done atomic.Bool
}

func NewBootstrap(migrator SchemaMigrator, seeder Seeder, m *metrics.Metrics, log *logger.Logger) *Bootstrap {
	return &Bootstrap{migrator: migrator, seeder: seeder, metrics: m, log: log}
}

// Ensure runs the bootstrap unless it already ran. Failures are logged and
// swallowed; the flag is set either way so a broken store is not retried
// on every request.
func (b *Bootstrap) Ensure(ctx context.Context) {
	if b.done.Load() {
		return
	}
	_ = b.Run(ctx)
	b.done.Store(true)
}

// Done reports whether Ensure has completed at least once.
func (b *Bootstrap) Done() bool {
	return b.done.Load()
}

// Run executes both steps unconditionally and returns a *StepError on failure.
// The seed step is skipped when the schema step fails.
func (b *Bootstrap) Run(ctx context.Context) error {
	if b.migrator != nil {
		applied, err := b.migrator.Migrate(ctx)
		if err != nil {
			b.fail(StepSchema, err)
			return &StepError{Step: StepSchema, Err: err}
		}
		b.succeed(StepSchema, "applied", applied)
	}

	if b.seeder != nil {
		inserted, err := b.seeder.Seed(ctx)
		if err != nil {
			b.fail(StepSeed, err)
			return &StepError{Step: StepSeed, Err: err}
		}
		b.succeed(StepSeed, "inserted", inserted)
	}
	return nil
}

func (b *Bootstrap) fail(step string, err error) {
	b.metrics.ObserveBootstrap(step, metrics.OutcomeFailure)
	if b.log != nil {
		b.log.Errorw("bootstrap_"+step+"_failed", "err", err)
	}
}

func (b *Bootstrap) succeed(step, countKey string, n int) {
	b.metrics.ObserveBootstrap(step, metrics.OutcomeSuccess)
	if b.log != nil {
		b.log.Infow("bootstrap_"+step+"_done", countKey, n)
	}
}
