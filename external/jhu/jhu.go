package jhu

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/schema"
)

const (
	logPrefix      = "jhu"
	defaultURL     = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_confirmed_global.csv"
	defaultTimeout = 60 * time.Second
)

var (
	errResponseStatus = fmt.Errorf("response status not ok")
)

// Feed - fetch the wide-format confirmed time series
type Feed interface {
	Fetch(ctx context.Context) (schema.RawTable, error)
}

type feed struct {
	url    string
	client *http.Client
}

func (f feed) Fetch(ctx context.Context) (schema.RawTable, error) {
	req, err := http.NewRequest(http.MethodGet, f.url, nil)
	if nil != err {
		return schema.RawTable{}, err
	}

	resp, err := f.client.Do(req.WithContext(ctx))
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    f.url,
			"error":  err,
		}).Error("get confirmed time series")
		return schema.RawTable{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    f.url,
			"status": resp.StatusCode,
		}).Error("get confirmed time series")
		return schema.RawTable{}, fmt.Errorf("%w: %d", errResponseStatus, resp.StatusCode)
	}

	table, err := loader.ParseCSV(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("parse confirmed time series")
		return schema.RawTable{}, err
	}

	return table, nil
}

// New returns a feed reading url, or the JHU CSSE global confirmed series
// when url is empty. A zero timeout uses the default.
func New(url string, timeout time.Duration) Feed {
	u := defaultURL
	if url != "" {
		u = url
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &feed{
		url:    u,
		client: &http.Client{Timeout: timeout},
	}
}
