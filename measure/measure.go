package measure

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// Enabled gates all counting. It is read once from HRR_MEASURE.
var Enabled bool
var Global Counter

func init() {
	Enabled = os.Getenv("HRR_MEASURE") == "1"
	Global = Counter{M: make(map[string]int64)}
}

// Counter keys used by the hrr package.
const (
	Encodes  = "encode"
	Decodes  = "decode"
	Cleanups = "cleanup"
	TableB   = "table_bytes"
)

// BytesComplex is the in-memory size of one complex128 table cell.
const BytesComplex = 16

// BytesTable returns the size of a rows×slots complex128 table.
func BytesTable(rows, slots int) int {
	return rows * slots * BytesComplex
}

// BytesVector returns the size of a phase vector over k primes.
func BytesVector(k int) int {
	return k * BytesComplex
}

func Human(n int64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
	)
	switch {
	case n >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

type Counter struct {
	mu sync.Mutex
	M  map[string]int64
}

func (c *Counter) Add(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	c.M[key] += n
	c.mu.Unlock()
}

// Get returns the current value of key.
func (c *Counter) Get(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.M[key]
}

// Reset clears every counter.
func (c *Counter) Reset() {
	c.mu.Lock()
	c.M = make(map[string]int64)
	c.mu.Unlock()
}

// Dump writes the counters to w in key order. Byte counters are
// humanised, the others are printed as plain counts.
func (c *Counter) Dump(w io.Writer) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.M))
	for k := range c.M {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(w, "[measure] report:")
	for _, k := range keys {
		if k == TableB {
			fmt.Fprintf(w, "[measure] %s = %s\n", k, Human(c.M[k]))
			continue
		}
		fmt.Fprintf(w, "[measure] %s = %d\n", k, c.M[k])
	}
}
