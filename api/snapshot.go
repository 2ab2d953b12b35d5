package api

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/schema"
	"github.com/bitmark-inc/confirm-trends/store"
)

type published struct {
	dataset *loader.Dataset
	refresh schema.Refresh
}

// Snapshot holds the dataset queries are served from. A reload swaps the
// whole dataset at once; readers never observe a partial one.
type Snapshot struct {
	value  atomic.Value
	getter store.ConfirmGetter
}

// NewSnapshot returns an empty snapshot loading from getter.
func NewSnapshot(getter store.ConfirmGetter) *Snapshot {
	return &Snapshot{getter: getter}
}

// Publish makes dataset the current one.
func (s *Snapshot) Publish(dataset *loader.Dataset, refresh schema.Refresh) {
	s.value.Store(published{dataset: dataset, refresh: refresh})
}

// Current returns the published dataset, nil before the first publish.
func (s *Snapshot) Current() (*loader.Dataset, schema.Refresh) {
	p, ok := s.value.Load().(published)
	if !ok {
		return nil, schema.Refresh{}
	}
	return p.dataset, p.refresh
}

// Reload publishes the latest dataset of the store. On error the current
// dataset stays in place.
func (s *Snapshot) Reload(ctx context.Context) error {
	dataset, refresh, err := s.getter.LatestDataset(ctx)
	if nil != err {
		log.WithError(err).Warn("reload confirm data-set")
		return err
	}

	if _, current := s.Current(); current.ID == refresh.ID && refresh.ID != "" {
		return nil
	}

	s.Publish(dataset, refresh)
	log.WithFields(logrus.Fields{
		"refresh_id": refresh.ID,
		"countries":  dataset.Len(),
	}).Info("reload confirm data-set")
	return nil
}
