package logmodule

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestGinrus(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Ginrus("API"))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ok?a=1", nil))

	entry := hook.LastEntry()
	assert.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "API", entry.Data["prefix"])
	assert.Equal(t, "/ok", entry.Data["path"])
	assert.Equal(t, "a=1", entry.Data["query"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/missing", nil))
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestTallyReporter(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(level)

	r := NewTallyReporter("metrics")
	assert.True(t, r.Capabilities().Reporting())
	assert.True(t, r.Capabilities().Tagging())

	r.ReportCounter("query", map[string]string{"status": "ok"}, 3)
	entry := hook.LastEntry()
	assert.Equal(t, "query", entry.Data["metric"])
	assert.Equal(t, int64(3), entry.Data["counter"])
	assert.Equal(t, "metrics", entry.Data["prefix"])

	r.ReportTimer("compute", nil, time.Second)
	assert.Equal(t, time.Second, hook.LastEntry().Data["timer"])

	r.ReportHistogramValueSamples("h", nil, nil, 0, 1, 2)
	assert.Equal(t, int64(2), hook.LastEntry().Data["samples"])
}
