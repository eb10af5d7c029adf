package bench

import (
	"bytes"
	"context"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/common"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/media/fixtures"
	"github.com/ValentinKolb/mediaser/lib/serializer"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"
	"testing"
	"time"
)

var Logger = logger.GetLogger("bench")

// Result is the outcome of one mode of one serializer
type Result struct {
	RunID      string
	Serializer string
	Features   Features
	Mode       string

	// Benchmark is the raw result of testing.Benchmark, zero if the mode was skipped
	Benchmark testing.BenchmarkResult
	// ItemsPerOp is the number of items one operation handles (the batch size in batch mode)
	ItemsPerOp int
	Latency    LatencyStats
	Size       SizeStats

	// Err is set if the serializer failed the correctness check or the mode itself
	Err error
}

// Skipped reports whether the mode produced no measurement
func (r *Result) Skipped() bool {
	return r.Err != nil || r.Benchmark.N == 0
}

// op runs one benchmark operation n times
type op func(n int) error

// measureFunc turns an op into a benchmark result
type measureFunc func(run op) (testing.BenchmarkResult, error)

// Runner benchmarks the configured serializers on a fixed set of generated items
type Runner struct {
	conf     common.BenchConfig
	registry *Registry
	runID    string
	items    []*media.MediaContent
	timers   gometrics.Registry
	measure  measureFunc
}

// NewRunner validates conf against the registry and generates the benchmark items.
// The first item is always the standard item, the remaining ones are generated from the seed.
func NewRunner(conf common.BenchConfig, registry *Registry) (*Runner, error) {
	if err := conf.Validate(registry.Names()); err != nil {
		return nil, fmt.Errorf("invalid benchmark configuration: %w", err)
	}

	opts := fixtures.GenerateOptions{
		Images:       conf.Images,
		Persons:      conf.Persons,
		Pods:         conf.Pods,
		PodDepth:     conf.PodDepth,
		OptionalRate: conf.OptionalRate,
	}
	items := append([]*media.MediaContent{fixtures.Standard()}, fixtures.Generate(conf.Seed, conf.Items-1, opts)...)

	return &Runner{
		conf:     conf,
		registry: registry,
		runID:    uuid.NewString(),
		items:    items,
		timers:   gometrics.NewRegistry(),
		measure:  benchmark,
	}, nil
}

// RunID identifies the run in reports
func (r *Runner) RunID() string {
	return r.runID
}

// Items returns the benchmark items
func (r *Runner) Items() []*media.MediaContent {
	return r.items
}

// Run benchmarks every configured serializer in every configured mode, in the
// configured order. report is called after each result if it is not nil.
// Run stops early only if ctx is cancelled.
func (r *Runner) Run(ctx context.Context, report func(Result)) ([]Result, error) {
	var results []Result
	add := func(res Result) {
		results = append(results, res)
		if report != nil {
			report(res)
		}
	}

	var opts []codec.Option
	if r.conf.MaxPodDepth > 0 {
		opts = append(opts, codec.WithMaxPodDepth(r.conf.MaxPodDepth))
	}

	for _, name := range r.conf.Serializers {
		entry, _ := r.registry.Get(name)
		s := entry.Factory(opts...)

		sizes, checkErr := Check(s, r.items)
		if checkErr != nil {
			Logger.Warningf("skipping %s: %v", name, checkErr)
		} else {
			Logger.Infof("benchmarking %s (%s) with %d items", name, entry.Features, len(r.items))
		}
		size := NewSizeStats(sizes)

		for _, mode := range r.conf.Modes {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			res := Result{
				RunID:      r.runID,
				Serializer: name,
				Features:   entry.Features,
				Mode:       mode,
				ItemsPerOp: 1,
				Size:       size,
				Err:        checkErr,
			}
			if mode == common.ModeBatch {
				res.ItemsPerOp = len(r.items)
			}
			if checkErr == nil {
				timer := gometrics.GetOrRegisterTimer(name+"/"+mode, r.timers)
				run, err := r.op(ctx, s, mode, timer)
				if err == nil {
					res.Benchmark, err = r.measure(run)
				}
				res.Err = err
				res.Latency = newLatencyStats(timer)
			}
			add(res)
		}
	}
	return results, nil
}

// --------------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------------

// op builds the operation of a mode. Every iteration is recorded in timer.
func (r *Runner) op(ctx context.Context, s serializer.ISerializer, mode string, timer gometrics.Timer) (op, error) {
	items := r.items

	switch mode {
	case common.ModeSerialize:
		return func(n int) error {
			for i := 0; i < n; i++ {
				start := time.Now()
				if _, err := s.Serialize(items[i%len(items)]); err != nil {
					return err
				}
				timer.UpdateSince(start)
			}
			return nil
		}, nil

	case common.ModeDeserialize:
		encoded := make([][]byte, len(items))
		for i, item := range items {
			data, err := s.Serialize(item)
			if err != nil {
				return nil, err
			}
			encoded[i] = data
		}
		return func(n int) error {
			for i := 0; i < n; i++ {
				start := time.Now()
				if _, err := s.Deserialize(encoded[i%len(encoded)]); err != nil {
					return err
				}
				timer.UpdateSince(start)
			}
			return nil
		}, nil

	case common.ModeRoundTrip:
		return func(n int) error {
			for i := 0; i < n; i++ {
				start := time.Now()
				if err := roundTrip(s, items[i%len(items)]); err != nil {
					return err
				}
				timer.UpdateSince(start)
			}
			return nil
		}, nil

	case common.ModeBatch:
		var buf bytes.Buffer
		return func(n int) error {
			for i := 0; i < n; i++ {
				start := time.Now()
				buf.Reset()
				if err := s.SerializeItems(items, &buf); err != nil {
					return err
				}
				if _, err := s.DeserializeItems(&buf, len(items)); err != nil {
					return err
				}
				timer.UpdateSince(start)
			}
			return nil
		}, nil

	case common.ModeParallel:
		workers := r.conf.Parallelism
		return func(n int) error {
			g, gctx := errgroup.WithContext(ctx)
			per := (n + workers - 1) / workers
			for w := 0; w < workers; w++ {
				from, to := w*per, min((w+1)*per, n)
				if from >= to {
					break
				}
				g.Go(func() error {
					for i := from; i < to; i++ {
						if i&1023 == 0 {
							if err := gctx.Err(); err != nil {
								return err
							}
						}
						start := time.Now()
						if err := roundTrip(s, items[i%len(items)]); err != nil {
							return err
						}
						timer.UpdateSince(start)
					}
					return nil
				})
			}
			return g.Wait()
		}, nil

	default:
		return nil, fmt.Errorf("unknown benchmark mode: %s", mode)
	}
}

func roundTrip(s serializer.ISerializer, item *media.MediaContent) error {
	data, err := s.Serialize(item)
	if err != nil {
		return err
	}
	_, err = s.Deserialize(data)
	return err
}

// benchmark measures run with testing.Benchmark. After the first error the
// remaining rounds return immediately and the error is reported.
func benchmark(run op) (testing.BenchmarkResult, error) {
	var err error
	res := testing.Benchmark(func(b *testing.B) {
		b.ReportAllocs()
		if err != nil {
			return
		}
		b.ResetTimer()
		err = run(b.N)
	})
	if err != nil {
		return testing.BenchmarkResult{}, err
	}
	return res, nil
}
