package benchplot

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/benchmark/parse"
)

var (
	procsSuffix = regexp.MustCompile(`-\d+$`)
	sizeSegment = regexp.MustCompile(`^(?:[A-Za-z_]+=)?(\d+)$`)
)

// ReadGoBench reads the output of `go test -bench` and returns a table
// with one row per benchmark line. The columns are
//     method         String  benchmark name without "Benchmark" and size
//     size           Int     last sub-benchmark segment, "N" or "key=N"
//     ns_per_op      Float
//     us_per_op      Float
//     bytes_per_op   Int
//     allocs_per_op  Int
// Lines which are not benchmark results are ignored, benchmarks without
// a size segment are skipped with a warning.
func ReadGoBench(r io.Reader, name string) (*Table, error) {
	t := NewTable(name, nil)
	method := NewField(0, String, t.Pool)
	size := NewField(0, Int, t.Pool)
	ns := NewField(0, Float, t.Pool)
	us := NewField(0, Float, t.Pool)
	bytes := NewField(0, Int, t.Pool)
	allocs := NewField(0, Int, t.Pool)

	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line := sc.Text()
		if !strings.HasPrefix(line, "Benchmark") {
			continue
		}
		b, err := parse.ParseLine(line)
		if err != nil {
			debugf(logrus.Fields{"line": lineno}, "gobench: %v", err)
			continue
		}
		m, n, ok := splitBenchName(b.Name)
		if !ok {
			warnf(logrus.Fields{"line": lineno, "benchmark": b.Name},
				"gobench: no size in benchmark name, skipped")
			continue
		}
		method.Data = append(method.Data, float64(t.Pool.Add(m)))
		size.Data = append(size.Data, float64(n))
		ns.Data = append(ns.Data, b.NsPerOp)
		us.Data = append(us.Data, b.NsPerOp/1000)
		bytes.Data = append(bytes.Data, float64(b.AllocedBytesPerOp))
		allocs.Data = append(allocs.Data, float64(b.AllocsPerOp))
		t.N++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	t.Add("method", method)
	t.Add("size", size)
	t.Add("ns_per_op", ns)
	t.Add("us_per_op", us)
	t.Add("bytes_per_op", bytes)
	t.Add("allocs_per_op", allocs)
	return t, nil
}

// splitBenchName splits "BenchmarkFind/hashMap/size=1000-8" into the
// method "Find/hashMap" and the size 1000.
func splitBenchName(name string) (method string, size int64, ok bool) {
	name = strings.TrimPrefix(name, "Benchmark")
	name = procsSuffix.ReplaceAllString(name, "")
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return "", 0, false
	}
	m := sizeSegment.FindStringSubmatch(name[i+1:])
	if m == nil {
		return "", 0, false
	}
	size, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return name[:i], size, true
}
