// Package probe measures how often approximate arithmetic on encoded
// numbers decodes to the wrong integer.
//
// A run multiplies (or multiplies then divides) pairs of operands below a
// limit, compares every decoded result with ground truth and tallies the
// disagreements. Runs are parallel over rows of operand pairs; the basis
// is shared read-only between workers.
package probe

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"hrr-numbers/hrr"
	"hrr-numbers/primes"
	"hrr-numbers/prof"
)

// Op is the operation under test.
type Op string

const (
	// OpMul checks decode(i*j) == i·j mod M.
	OpMul Op = "mul"
	// OpDiv checks decode((i*j)/j) == i for every j coprime to M.
	OpDiv Op = "div"
)

// Config controls a probe run.
type Config struct {
	Op          Op     `mapstructure:"op" yaml:"op"`
	Limit       int64  `mapstructure:"limit" yaml:"limit"`               // operands in [0, Limit); 0 means floor(sqrt(M))
	Sample      int    `mapstructure:"sample" yaml:"sample"`             // random pairs; 0 means every pair
	Seed        string `mapstructure:"seed" yaml:"seed"`                 // PRNG key for Sample
	Workers     int    `mapstructure:"workers" yaml:"workers"`           // 0 means GOMAXPROCS
	MaxFailures int    `mapstructure:"max_failures" yaml:"max_failures"` // failures kept in the report
}

// DefaultConfig is the classic range check: all products of pairs
// below sqrt(M).
func DefaultConfig() Config {
	return Config{
		Op:          OpMul,
		Seed:        "hrr-probe",
		MaxFailures: 20,
	}
}

// Failure is one wrong result.
type Failure struct {
	I    int64 `yaml:"i"`
	J    int64 `yaml:"j"`
	Want int64 `yaml:"want"`
	Got  int64 `yaml:"got"`
}

// Report summarises a run.
type Report struct {
	Op        Op        `yaml:"op"`
	Primes    []int64   `yaml:"primes"`
	Modulus   int64     `yaml:"modulus"`
	Beta      float64   `yaml:"beta"`
	Limit     int64     `yaml:"limit"`
	Pairs     int       `yaml:"pairs"`
	Failures  int       `yaml:"failures"`
	ErrorRate float64   `yaml:"error_rate"`
	Elapsed   string    `yaml:"elapsed"`
	RowMean   string    `yaml:"row_mean"` // mean wall time per evaluated row
	Examples  []Failure `yaml:"examples,omitempty"`
}

// pair is one unit of work.
type pair struct{ i, j int64 }

// Run probes b according to cfg. It stops early, returning ctx.Err(),
// when ctx is cancelled.
func Run(ctx context.Context, b *hrr.Basis, cfg Config, log logrus.FieldLogger) (*Report, error) {
	start := time.Now()
	if cfg.Op == "" {
		cfg.Op = OpMul
	}
	if cfg.Op != OpMul && cfg.Op != OpDiv {
		return nil, fmt.Errorf("probe: unknown op %q", cfg.Op)
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = int64(math.Sqrt(float64(b.Modulus())))
	}
	if limit > b.Modulus() {
		return nil, fmt.Errorf("probe: limit %d exceeds modulus %d", limit, b.Modulus())
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// 1) Work rows: one per left operand, or chunks of random pairs
	var (
		sampled [][]pair
		nrows   = int(limit)
	)
	if cfg.Sample > 0 {
		ps, err := samplePairs(cfg.Seed, cfg.Sample, limit)
		if err != nil {
			return nil, err
		}
		sampled = chunk(ps, 256)
		nrows = len(sampled)
	}
	rowAt := func(r int) []pair {
		if sampled != nil {
			return sampled[r]
		}
		row := make([]pair, limit)
		for j := range row {
			row[j] = pair{int64(r), int64(j)}
		}
		return row
	}

	log = log.WithFields(logrus.Fields{"op": cfg.Op, "beta": b.Beta(), "modulus": b.Modulus()})
	log.WithFields(logrus.Fields{"rows": nrows, "workers": workers}).Info("probe started")

	// 2) Evaluate rows in parallel
	var (
		mu       sync.Mutex
		rep      = &Report{Op: cfg.Op, Primes: b.Primes(), Modulus: b.Modulus(), Beta: b.Beta(), Limit: limit}
		rowTime  prof.Stopwatch
		done     atomic.Int64
		progress = newProgress(nrows, log)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for r := 0; r < nrows; r++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var (
				sw    prof.Stopwatch
				pairs int
				fails []Failure
				err   error
			)
			sw.Time(func() { pairs, fails, err = evalRow(b, cfg.Op, rowAt(r)) })
			if err != nil {
				return err
			}
			mu.Lock()
			rowTime.Merge(sw)
			rep.Pairs += pairs
			rep.Failures += len(fails)
			for _, f := range fails {
				if len(rep.Examples) >= cfg.MaxFailures {
					break
				}
				rep.Examples = append(rep.Examples, f)
			}
			mu.Unlock()
			progress.tick(done.Add(1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if rep.Pairs > 0 {
		rep.ErrorRate = float64(rep.Failures) / float64(rep.Pairs)
	}
	rep.Elapsed = time.Since(start).Round(time.Millisecond).String()
	rep.RowMean = rowTime.Mean().Round(time.Microsecond).String()
	log.WithFields(logrus.Fields{
		"pairs":      rep.Pairs,
		"failures":   rep.Failures,
		"error_rate": rep.ErrorRate,
		"elapsed":    rep.Elapsed,
		"row_mean":   rep.RowMean,
	}).Info("probe finished")
	return rep, nil
}

// evalRow returns how many pairs were checked and which failed. Division
// skips divisors that share a factor with M.
func evalRow(b *hrr.Basis, op Op, row []pair) (int, []Failure, error) {
	m := b.Modulus()
	var (
		n     int
		fails []Failure
	)
	for _, pr := range row {
		if op == OpDiv {
			if g, _, _ := primes.ExtendedGCD(pr.j, m); g != 1 {
				continue
			}
		}
		x, err := b.Encode(pr.i)
		if err != nil {
			return 0, nil, err
		}
		y, err := b.Encode(pr.j)
		if err != nil {
			return 0, nil, err
		}
		z, err := x.Mul(y)
		if err != nil {
			return 0, nil, err
		}
		want := mulMod(pr.i, pr.j, m)
		if op == OpDiv {
			if z, err = z.Div(y); err != nil {
				return 0, nil, err
			}
			want = pr.i
		}
		n++
		if got := z.Decode(); got != want {
			fails = append(fails, Failure{I: pr.i, J: pr.j, Want: want, Got: got})
		}
	}
	return n, fails, nil
}

// mulMod returns a·b mod m for 0 <= a, b < m without overflow.
func mulMod(a, b, m int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	_, rem := bits.Div64(hi, lo, uint64(m))
	return int64(rem)
}

func chunk(ps []pair, size int) [][]pair {
	var out [][]pair
	for len(ps) > size {
		out = append(out, ps[:size])
		ps = ps[size:]
	}
	if len(ps) > 0 {
		out = append(out, ps)
	}
	return out
}

// progress logs every 5% of completed rows.
type progress struct {
	total int64
	step  int64
	log   logrus.FieldLogger
}

func newProgress(total int, log logrus.FieldLogger) *progress {
	step := int64(total+19) / 20
	if step == 0 {
		step = 1
	}
	return &progress{total: int64(total), step: step, log: log}
}

func (p *progress) tick(done int64) {
	if done%p.step != 0 && done != p.total {
		return
	}
	p.log.WithField("done", fmt.Sprintf("%d%%", 100*done/p.total)).Debug("probe progress")
}
