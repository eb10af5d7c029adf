// Package bench is the benchmark harness of mediaser. It registers serializers with
// their features, checks that each one reproduces the benchmark items and measures
// them in several modes.
//
// The package focuses on:
//   - A concurrent safe registry of serializers and their features
//   - A correctness check that runs before any measurement
//   - Programmatic benchmarks with testing.Benchmark, outside of go test
//   - Per operation latency percentiles and encoded size statistics
//   - Console and CSV reports
//
// Key Components:
//
//   - Registry: Entries keyed by name in an xsync.MapOf. DefaultRegistry holds the four
//     serializers of the serializer package.
//
//   - Runner: Generates the items from the configured seed (the standard item always comes
//     first), then runs each configured mode for each serializer:
//     serialize, deserialize, roundtrip (one item per operation), batch (all items through
//     one stream per operation) and parallel (round trips spread over goroutines with errgroup).
//     Latencies are recorded in go-metrics timers.
//
//   - Check: Serializes and deserializes every item alone and as a batch and compares the
//     results. A serializer that fails is reported with its error and not measured.
//
//   - Reports: PrintResult writes one line per result, WriteCSV writes one row per result
//     including the run id and the content parameters.
//
// Usage:
//
//	runner, err := bench.NewRunner(conf, bench.DefaultRegistry())
//	if err != nil {
//	    // ...
//	}
//	results, err := runner.Run(ctx, func(res bench.Result) {
//	    bench.PrintResult(os.Stdout, res)
//	})
package bench
