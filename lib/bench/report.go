package bench

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/common"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// PrintResult prints the result of a benchmark in a formatted way
func PrintResult(w io.Writer, res Result) {
	test := res.Serializer + " " + res.Mode
	if res.Err != nil {
		fmt.Fprintf(w, "%-28sfailed: %v\n", test, res.Err)
		return
	}
	if res.Skipped() {
		fmt.Fprintf(w, "%-28sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(res.Benchmark.NsPerOp()), 1) // prevent division by zero
	itemsPerSec := float64(res.ItemsPerOp) / (nsPerOp / 1e9)

	fmt.Fprintf(w, "%-28s%.0fns/op (%s/op)\t%.0f items/sec\t%d allocs/op\t%.0f B/item\tp99 %s\n",
		test, nsPerOp, time.Duration(nsPerOp), itemsPerSec,
		res.Benchmark.AllocsPerOp(), res.Size.Mean, res.Latency.P99)
}

// WriteResultsToCSV writes benchmark results to a CSV file
func WriteResultsToCSV(csvPath string, results []Result, config *common.BenchConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, results, config); err != nil {
		return err
	}
	return file.Close()
}

// csvHeader is the first row of every CSV report
var csvHeader = []string{
	"RunID", "Serializer", "Format", "Graph", "Class", "Mode",
	"N", "NsPerOp", "DurationPerOp", "ItemsPerSec", "AllocsPerOp", "AllocedBytesPerOp",
	"LatencyMean", "LatencyP50", "LatencyP99", "LatencyMax",
	"SizeTotal", "SizeMean", "SizeMin", "SizeMax", "SizeStdDev",
	"Skipped", "Error",
	"Seed", "Items", "Images", "Persons", "Pods", "PodDepth", "OptionalRate", "Parallelism",
}

// WriteCSV writes the results as CSV with one row per result
func WriteCSV(w io.Writer, results []Result, config *common.BenchConfig) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, res := range results {
		var nsPerOp, itemsPerSec float64
		var errText string
		if !res.Skipped() {
			nsPerOp = math.Max(float64(res.Benchmark.NsPerOp()), 1)
			itemsPerSec = float64(res.ItemsPerOp) / (nsPerOp / 1e9)
		}
		if res.Err != nil {
			errText = res.Err.Error()
		}

		row := []string{
			res.RunID,
			res.Serializer,
			res.Features.Format,
			res.Features.Graph,
			res.Features.Class,
			res.Mode,
			strconv.Itoa(res.Benchmark.N),
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", itemsPerSec),
			strconv.FormatInt(res.Benchmark.AllocsPerOp(), 10),
			strconv.FormatInt(res.Benchmark.AllocedBytesPerOp(), 10),
			res.Latency.Mean.String(),
			res.Latency.P50.String(),
			res.Latency.P99.String(),
			res.Latency.Max.String(),
			strconv.Itoa(res.Size.Total),
			fmt.Sprintf("%.1f", res.Size.Mean),
			fmt.Sprintf("%.0f", res.Size.Min),
			fmt.Sprintf("%.0f", res.Size.Max),
			fmt.Sprintf("%.1f", res.Size.StdDeviation),
			strconv.FormatBool(res.Skipped()),
			errText,
			strconv.FormatInt(config.Seed, 10),
			strconv.Itoa(config.Items),
			strconv.Itoa(config.Images),
			strconv.Itoa(config.Persons),
			strconv.Itoa(config.Pods),
			strconv.Itoa(config.PodDepth),
			strconv.FormatFloat(config.OptionalRate, 'f', 2, 64),
			strconv.Itoa(config.Parallelism),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s %s: %w", res.Serializer, res.Mode, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
