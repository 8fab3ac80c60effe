package prof

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Logger receives timing lines. Commands replace it with their configured
// logger; by default it is the logrus standard logger.
var Logger logrus.FieldLogger = logrus.StandardLogger()

// Track logs the duration since start with the given name at debug level.
// Use it as: defer prof.Track(time.Now(), "NewBasis").
func Track(start time.Time, name string) {
	Logger.WithFields(logrus.Fields{
		"op":      name,
		"elapsed": time.Since(start),
	}).Debug("timing")
}

// Stopwatch accumulates the elapsed time of repeated sections.
type Stopwatch struct {
	Total time.Duration
	Runs  int
}

// Time runs f and adds its duration to the stopwatch.
func (s *Stopwatch) Time(f func()) {
	start := time.Now()
	f()
	s.Total += time.Since(start)
	s.Runs++
}

// Merge adds the runs recorded by o.
func (s *Stopwatch) Merge(o Stopwatch) {
	s.Total += o.Total
	s.Runs += o.Runs
}

// Mean returns the average duration per run.
func (s *Stopwatch) Mean() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Runs)
}
