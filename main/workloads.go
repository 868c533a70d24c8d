package main

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rawbytedev/anybox"
)

// record is 64 bytes, too large for a one-word buffer.
type record struct {
	ID   int64
	Data [7]int64
}

var workloads = map[string]func(n int) int64{
	"inline":  runInline,
	"heap":    runHeap,
	"swap":    runSwap,
	"handle":  runHandle,
	"convert": runConvert,
}

var sink int64

// Names lists the known workloads in order.
func Names() []string {
	names := make([]string, 0, len(workloads))
	for name := range workloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Result struct {
	Name       string
	Iterations int
	Elapsed    time.Duration
	Allocs     uint64
}

func (r Result) NsPerOp() float64 {
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Iterations)
}

func (r Result) AllocsPerOp() float64 {
	return float64(r.Allocs) / float64(r.Iterations)
}

// Run executes one workload n times.
func Run(name string, n int) (Result, error) {
	fn, ok := workloads[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
	}
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrBadIterations, n)
	}
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()
	sink += fn(n)
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)
	return Result{
		Name:       name,
		Iterations: n,
		Elapsed:    elapsed,
		Allocs:     after.Mallocs - before.Mallocs,
	}, nil
}

func runInline(n int) int64 {
	var sum int64
	for i := 0; i < n; i++ {
		a := anybox.Of(int64(i))
		sum += anybox.Get[int64](&a)
	}
	return sum
}

func runHeap(n int) int64 {
	var sum int64
	for i := 0; i < n; i++ {
		a := anybox.Of(record{ID: int64(i)})
		sum += anybox.Get[record](&a).ID
		a.Reset()
	}
	return sum
}

func runSwap(n int) int64 {
	x := anybox.Of(int32(1))
	y := anybox.Of(record{ID: 2})
	for i := 0; i < n; i++ {
		x.Swap(&y)
	}
	if p, ok := anybox.TryGet[int32](&x); ok {
		return int64(*p)
	}
	return anybox.Get[record](&x).ID
}

func runHandle(n int) int64 {
	var ext record
	for i := 0; i < n; i++ {
		a := anybox.FromHandle[anybox.Word](anybox.Ref(&ext))
		anybox.Set(&a, record{ID: int64(i)})
	}
	return ext.ID
}

func runConvert(n int) int64 {
	var sum int64
	small := anybox.Of([3]int64{1, 2, 3})
	for i := 0; i < n; i++ {
		big := anybox.Convert[anybox.Quad](&small)
		sum += anybox.Get[[3]int64](&big)[0]
	}
	return sum
}
