package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/trend"
)

const (
	dateLayout = "2006-01-02"
)

type trendQueryParams struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

func (s *Server) countries(c *gin.Context) {
	dataset, refresh := s.snapshot.Current()
	if nil == dataset {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorDatasetNotReady)
		return
	}

	first, last := dataset.Span()
	c.JSON(http.StatusOK, gin.H{
		"countries":  dataset.Countries(),
		"first_date": first,
		"last_date":  last,
		"refresh_id": refresh.ID,
	})
}

func (s *Server) trends(c *gin.Context) {
	dataset, refresh := s.snapshot.Current()
	if nil == dataset {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorDatasetNotReady)
		return
	}

	var params trendQueryParams
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	start, end := trend.DefaultRange(dataset)
	if params.Start != "" {
		d, err := time.Parse(dateLayout, params.Start)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, fmt.Errorf("invalid start: %w", err))
			return
		}
		start = d
	}
	if params.End != "" {
		d, err := time.Parse(dateLayout, params.End)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, fmt.Errorf("invalid end: %w", err))
			return
		}
		end = d
	}

	country := c.Param("country")
	timer := s.metrics.Timer("trend_compute").Start()
	derived, summary, err := trend.Query(dataset, country, start, end)
	timer.Stop()

	switch {
	case err == nil:
	case errors.Is(err, loader.ErrUnknownCountry):
		s.metrics.Tagged(map[string]string{"result": "unknown_country"}).Counter("trend_query").Inc(1)
		abortWithEncoding(c, http.StatusNotFound, errorUnknownCountry, err)
		return
	case errors.Is(err, trend.ErrInvalidRange):
		s.metrics.Tagged(map[string]string{"result": "invalid_range"}).Counter("trend_query").Inc(1)
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	s.metrics.Tagged(map[string]string{"result": "ok"}).Counter("trend_query").Inc(1)

	c.JSON(http.StatusOK, gin.H{
		"country":    country,
		"start":      start.Format(dateLayout),
		"end":        end.Format(dateLayout),
		"refresh_id": refresh.ID,
		"series":     derived,
		"summary":    summary,
	})
}
