package background

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const (
	logPrefix = "background"

	// DefaultReloadInterval is used when no positive interval is configured
	DefaultReloadInterval = 10 * time.Minute
)

// Reloadable is something refreshed on a schedule
type Reloadable interface {
	Reload(ctx context.Context) error
}

// Reloader calls Reload on every tick until its context is done
type Reloader struct {
	target   Reloadable
	interval time.Duration
	timeout  time.Duration
	metrics  tally.Scope
}

func NewReloader(target Reloadable, interval, timeout time.Duration, metrics tally.Scope) *Reloader {
	if metrics == nil {
		metrics = tally.NoopScope
	}

	if interval <= 0 {
		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"interval": interval,
		}).Warnf("invalid reload interval, use %s", DefaultReloadInterval)
		interval = DefaultReloadInterval
	}

	return &Reloader{
		target:   target,
		interval: interval,
		timeout:  timeout,
		metrics:  metrics,
	}
}

// Once runs a single reload bounded by the reloader timeout
func (r *Reloader) Once(ctx context.Context) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.target.Reload(ctx); err != nil {
		r.metrics.Counter("reload_failed").Inc(1)
		return err
	}

	r.metrics.Counter("reload").Inc(1)
	return nil
}

// Run blocks, reloading every interval
func (r *Reloader) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithField("prefix", logPrefix).Info("stop reloader")
			return
		case <-ticker.C:
			if err := r.Once(ctx); err != nil {
				log.WithFields(log.Fields{
					"prefix": logPrefix,
					"error":  err,
				}).Warn("scheduled reload")
			}
		}
	}
}
