package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/schema"
)

var (
	ErrNoDataset = errors.New("no confirm data-set")
)

type ConfirmUpdater interface {
	// ReplaceDataset publishes a normalized dataset as the latest refresh and
	// removes the series of earlier refreshes.
	ReplaceDataset(ctx context.Context, dataset *loader.Dataset) (schema.Refresh, error)
}

type ConfirmGetter interface {
	// LatestDataset loads the series of the most recent published refresh.
	LatestDataset(ctx context.Context) (*loader.Dataset, schema.Refresh, error)
}

type ConfirmOperator interface {
	ConfirmUpdater
	ConfirmGetter
}

func (m mongoDB) ReplaceDataset(ctx context.Context, dataset *loader.Dataset) (schema.Refresh, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	first, last := dataset.Span()
	refresh := schema.Refresh{
		ID:        uuid.New().String(),
		CreatedAt: now,
		Countries: dataset.Len(),
		Dates:     dataset.Dates(),
		FirstDate: first,
		LastDate:  last,
	}

	series := m.client.Database(m.database).Collection(schema.SeriesCollection)

	models := make([]mongo.WriteModel, 0, dataset.Len())
	for _, country := range dataset.Countries() {
		s, err := dataset.Series(country)
		if nil != err {
			return schema.Refresh{}, err
		}

		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"refresh_id": refresh.ID, "country": country}).
			SetReplacement(schema.StoredSeries{
				RefreshID:  refresh.ID,
				Country:    country,
				Points:     s.Points,
				UpdateTime: now.Unix(),
			}).
			SetUpsert(true))
	}

	if len(models) > 0 {
		res, err := series.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
		if nil != err {
			log.WithFields(log.Fields{
				"prefix":     mongoLogPrefix,
				"refresh_id": refresh.ID,
				"error":      err,
			}).Error("write confirm series")

			// drop what was written so far, the refresh is never published
			_, _ = series.DeleteMany(context.Background(), bson.M{"refresh_id": refresh.ID})
			return schema.Refresh{}, err
		}

		log.WithFields(log.Fields{
			"prefix":     mongoLogPrefix,
			"refresh_id": refresh.ID,
			"upserted":   res.UpsertedCount,
		}).Debug("write confirm series")
	}

	if _, err := m.client.Database(m.database).Collection(schema.RefreshCollection).InsertOne(ctx, refresh); nil != err {
		log.WithFields(log.Fields{
			"prefix":     mongoLogPrefix,
			"refresh_id": refresh.ID,
			"error":      err,
		}).Error("insert confirm refresh")
		_, _ = series.DeleteMany(context.Background(), bson.M{"refresh_id": refresh.ID})
		return schema.Refresh{}, err
	}

	res, err := series.DeleteMany(ctx, bson.M{"refresh_id": bson.M{"$ne": refresh.ID}})
	if nil != err {
		// stale series are unreachable, the next refresh retries the cleanup
		log.WithField("prefix", mongoLogPrefix).Warnf("delete stale confirm series with error: %s", err)
	} else {
		log.WithFields(log.Fields{
			"prefix":  mongoLogPrefix,
			"records": res.DeletedCount,
		}).Debug("delete stale confirm series")
	}

	log.WithFields(log.Fields{
		"prefix":     mongoLogPrefix,
		"refresh_id": refresh.ID,
		"countries":  refresh.Countries,
		"dates":      refresh.Dates,
	}).Info("publish confirm data-set")

	return refresh, nil
}

func (m mongoDB) LatestDataset(ctx context.Context) (*loader.Dataset, schema.Refresh, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var refresh schema.Refresh
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	err := m.client.Database(m.database).Collection(schema.RefreshCollection).FindOne(ctx, bson.M{}, opts).Decode(&refresh)
	if nil != err {
		if err == mongo.ErrNoDocuments {
			return nil, schema.Refresh{}, ErrNoDataset
		}
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("find latest confirm refresh")
		return nil, schema.Refresh{}, err
	}

	cur, err := m.client.Database(m.database).Collection(schema.SeriesCollection).Find(ctx, bson.M{"refresh_id": refresh.ID})
	if nil != err {
		log.WithFields(log.Fields{
			"prefix":     mongoLogPrefix,
			"refresh_id": refresh.ID,
			"error":      err,
		}).Error("find confirm series")
		return nil, schema.Refresh{}, err
	}
	defer cur.Close(ctx)

	series := make(map[string]schema.CountryDailySeries, refresh.Countries)
	for cur.Next(ctx) {
		var s schema.StoredSeries
		if err := cur.Decode(&s); nil != err {
			log.WithField("prefix", mongoLogPrefix).Errorf("decode confirm series with error: %s", err)
			return nil, schema.Refresh{}, err
		}

		for i := range s.Points {
			s.Points[i].Date = loader.Day(s.Points[i].Date)
		}
		series[s.Country] = schema.CountryDailySeries{Country: s.Country, Points: s.Points}
	}
	if err := cur.Err(); nil != err {
		return nil, schema.Refresh{}, err
	}

	log.WithFields(log.Fields{
		"prefix":     mongoLogPrefix,
		"refresh_id": refresh.ID,
		"countries":  len(series),
	}).Debug("load confirm data-set")

	return loader.NewDataset(series), refresh, nil
}
