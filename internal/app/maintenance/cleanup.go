package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ivoicehq/ivoice-server/internal/services"
	"github.com/ivoicehq/ivoice-server/pkg/logger"
)

const (
	defaultCleanupSpec = "@hourly"
	defaultSignupAge   = 24 * time.Hour
)

// Cleaner periodically removes unverified accounts whose verification window
// lapsed long ago, keeping the users table free of abandoned signups.
type Cleaner struct {
	auth     *services.AuthService
	cron     *cron.Cron
	now      func() time.Time
	log      *zap.Logger
	schedule string
	maxAge   time.Duration
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cutoff comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithSchedule overrides the cron specification for the purge job.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithMaxAge adjusts how long an unverified account may linger after its OTP expires.
func WithMaxAge(age time.Duration) Option {
	return func(cleaner *Cleaner) {
		if age > 0 {
			cleaner.maxAge = age
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. A nil auth service
// results in the purge job being skipped.
func NewCleaner(auth *services.AuthService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		auth:     auth,
		now:      time.Now,
		schedule: defaultCleanupSpec,
		maxAge:   defaultSignupAge,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the purge job with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.auth == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("signup cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes the purge immediately. Primarily used in tests and during
// graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.auth == nil {
		return nil
	}

	var errs error

	cutoff := c.now().Add(-c.maxAge)
	removed, err := c.auth.PurgeExpiredUnverified(ctx, cutoff)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if removed > 0 {
		c.log.Info("purged stale unverified accounts", zap.Int64("count", removed))
	}

	return errs
}
