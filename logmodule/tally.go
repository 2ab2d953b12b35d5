package logmodule

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

type logReporter struct {
	entry *log.Entry
}

// NewTallyReporter returns a tally stats reporter writing every reported
// value as a debug log line.
func NewTallyReporter(prefix string) tally.StatsReporter {
	return &logReporter{
		entry: log.WithField("prefix", prefix),
	}
}

func (r *logReporter) Capabilities() tally.Capabilities {
	return r
}

func (r *logReporter) Reporting() bool {
	return true
}

func (r *logReporter) Tagging() bool {
	return true
}

func (r *logReporter) Flush() {}

func (r *logReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.entry.WithFields(log.Fields{"metric": name, "tags": tags, "counter": value}).Debug("metrics")
}

func (r *logReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.entry.WithFields(log.Fields{"metric": name, "tags": tags, "gauge": value}).Debug("metrics")
}

func (r *logReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.entry.WithFields(log.Fields{"metric": name, "tags": tags, "timer": interval}).Debug("metrics")
}

func (r *logReporter) ReportHistogramValueSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound float64,
	samples int64,
) {
	r.entry.WithFields(log.Fields{
		"metric":  name,
		"tags":    tags,
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Debug("metrics")
}

func (r *logReporter) ReportHistogramDurationSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound time.Duration,
	samples int64,
) {
	r.entry.WithFields(log.Fields{
		"metric":  name,
		"tags":    tags,
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Debug("metrics")
}
