package main

import (
	"context"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/confirm-trends/external/jhu"
	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/schema"
	"github.com/bitmark-inc/confirm-trends/store"
)

type confirmCrawler struct {
	feed    jhu.Feed
	store   store.ConfirmUpdater
	metrics tally.Scope
}

// Run fetches the feed, normalizes it and publishes the result. Any error
// aborts the refresh before anything is written.
func (c confirmCrawler) Run(ctx context.Context) (schema.Refresh, error) {
	table, err := c.feed.Fetch(ctx)
	if nil != err {
		return c.fail("fetch confirmed time series", err)
	}

	dataset, err := loader.Normalize(table)
	if nil != err {
		return c.fail("normalize confirmed time series", err)
	}

	refresh, err := c.store.ReplaceDataset(ctx, dataset)
	if nil != err {
		return c.fail("publish confirm data-set", err)
	}

	c.metrics.Counter("refresh").Inc(1)
	c.metrics.Gauge("countries").Update(float64(refresh.Countries))
	log.WithFields(log.Fields{
		"prefix":     logPrefix,
		"refresh_id": refresh.ID,
		"countries":  refresh.Countries,
		"dates":      refresh.Dates,
	}).Info("refresh confirm data-set")

	return refresh, nil
}

func (c confirmCrawler) fail(msg string, err error) (schema.Refresh, error) {
	c.metrics.Counter("refresh_failed").Inc(1)
	sentry.CaptureException(err)
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"error":  err,
	}).Error(msg)
	return schema.Refresh{}, err
}

// newCrawler - new refresh job of the confirmed time series
func newCrawler(feed jhu.Feed, s store.ConfirmUpdater, metrics tally.Scope) *confirmCrawler {
	if metrics == nil {
		metrics = tally.NoopScope
	}

	return &confirmCrawler{
		feed:    feed,
		store:   s,
		metrics: metrics,
	}
}
