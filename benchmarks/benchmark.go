package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"chunkdb/pkg/config"
	"chunkdb/pkg/database"
	"chunkdb/pkg/logging"
)

// BenchmarkResult captures timing statistics for one command shape at one
// chunk cap.
type BenchmarkResult struct {
	Command        string        `json:"command"`
	ChunkCap       int           `json:"chunk_cap"`
	Iterations     int           `json:"iterations"`
	TotalDuration  time.Duration `json:"total_duration_ns"`
	AvgDuration    time.Duration `json:"avg_duration_ns"`
	MinDuration    time.Duration `json:"min_duration_ns"`
	MaxDuration    time.Duration `json:"max_duration_ns"`
	MedianDuration time.Duration `json:"median_duration_ns"`
	P95Duration    time.Duration `json:"p95_duration_ns"`
	RowsReturned   int           `json:"rows_returned"`
	RowsPerSecond  float64       `json:"rows_per_second"`
	SuccessCount   int           `json:"success_count"`
	ErrorCount     int           `json:"error_count"`
	Timestamp      time.Time     `json:"timestamp"`
}

// BenchmarkReport aggregates every result of a run. The interesting
// comparison is the same command across chunk caps: the engine should
// slow down gracefully as the cap shrinks, never run out of memory.
type BenchmarkReport struct {
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	TotalDuration time.Duration     `json:"total_duration_ns"`
	TableRows     int               `json:"table_rows"`
	ChunkCaps     []int             `json:"chunk_caps"`
	Results       []BenchmarkResult `json:"results"`
	DataDir       string            `json:"data_dir"`
}

// main runs the suite. Configuration comes from environment variables:
//
//   - BENCHMARK_OUTPUT: directory for the JSON report (default: ./benchmark-results)
//   - BENCHMARK_ITERATIONS: executions per command (default: 10)
//   - BENCHMARK_ROWS: rows seeded into the items table (default: 2000)
//   - BENCHMARK_CHUNK_CAPS: comma-separated caps to sweep (default: 1,50,500)
//   - DATA_DIR: scratch directory for table files (default: under os.TempDir)
func main() {
	outputDir := envOr("BENCHMARK_OUTPUT", "./benchmark-results")
	iterations := envIntOr("BENCHMARK_ITERATIONS", 10)
	tableRows := envIntOr("BENCHMARK_ROWS", 2000)
	dataDir := envOr("DATA_DIR", filepath.Join(os.TempDir(), "chunkdb_bench"))
	caps := parseCaps(envOr("BENCHMARK_CHUNK_CAPS", "1,50,500"))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	initLogging(outputDir)
	defer logging.Close()

	report := BenchmarkReport{
		StartTime: time.Now(),
		TableRows: tableRows,
		ChunkCaps: caps,
		DataDir:   dataDir,
	}

	for _, chunkCap := range caps {
		fmt.Printf("=== chunk cap %d ===\n", chunkCap)

		db, err := openFreshDatabase(dataDir, chunkCap)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}

		if err := seed(db, tableRows); err != nil {
			log.Fatalf("failed to seed tables: %v", err)
		}

		results := runSuite(db, chunkCap, iterations, tableRows)
		report.Results = append(report.Results, results...)

		db.Close()
	}

	report.EndTime = time.Now()
	report.TotalDuration = report.EndTime.Sub(report.StartTime)

	if err := writeReport(outputDir, report); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	fmt.Printf("\nDone in %v. Report written to %s\n",
		report.TotalDuration.Round(time.Millisecond), outputDir)
}

// runSuite measures every command shape once per cap. Mutating commands
// are phrased to leave the table unchanged so iterations stay comparable.
func runSuite(db *database.Database, chunkCap, iterations, tableRows int) []BenchmarkResult {
	mid := tableRows / 2

	commands := []struct {
		name    string
		command string
	}{
		{"full scan", "showColumns|items|all"},
		{"projection", "showColumns|items|name,price"},
		{"filter", fmt.Sprintf("filter|items|price|%d|biggerThan", mid)},
		{"sort", "sort|items|price"},
		{"group", "formGroups|items|category"},
		{"aggregate avg", "aggregate|items|price|avg"},
		{"join", "getCommon|items|categories|category|category"},
		{"update rewrite", "set|items|category|cat_3|category|cat_3"},
		{"delete rewrite", "remove|items|price|-1"},
	}

	results := make([]BenchmarkResult, 0, len(commands))
	for _, c := range commands {
		result := measure(db, c.command, chunkCap, iterations)
		results = append(results, result)
		fmt.Printf("  %-16s avg %-12v p95 %-12v %.0f rows/s\n",
			c.name, result.AvgDuration.Round(time.Microsecond),
			result.P95Duration.Round(time.Microsecond), result.RowsPerSecond)
	}
	return results
}

func measure(db *database.Database, command string, chunkCap, iterations int) BenchmarkResult {
	durations := make([]time.Duration, 0, iterations)
	result := BenchmarkResult{
		Command:    command,
		ChunkCap:   chunkCap,
		Iterations: iterations,
		Timestamp:  time.Now(),
	}

	for i := 0; i < iterations; i++ {
		start := time.Now()
		res, err := db.ExecuteCommand(command)
		elapsed := time.Since(start)

		if err != nil {
			result.ErrorCount++
			continue
		}
		result.SuccessCount++
		result.RowsReturned = len(res.Rows)
		durations = append(durations, elapsed)
	}

	if len(durations) == 0 {
		return result
	}

	slices.Sort(durations)
	for _, d := range durations {
		result.TotalDuration += d
	}
	result.AvgDuration = result.TotalDuration / time.Duration(len(durations))
	result.MinDuration = durations[0]
	result.MaxDuration = durations[len(durations)-1]
	result.MedianDuration = durations[len(durations)/2]
	result.P95Duration = percentile(durations, 0.95)
	if result.AvgDuration > 0 {
		result.RowsPerSecond = float64(result.RowsReturned) / result.AvgDuration.Seconds()
	}
	return result
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// openFreshDatabase wipes the scratch directory so every cap starts from
// identical on-disk state.
func openFreshDatabase(dataDir string, chunkCap int) (*database.Database, error) {
	if err := os.RemoveAll(dataDir); err != nil {
		return nil, err
	}
	return database.NewDatabase(config.Config{
		Name:     "bench",
		DataDir:  dataDir,
		ChunkCap: chunkCap,
	})
}

func seed(db *database.Database, tableRows int) error {
	seedCommands := []string{
		"newTable|items|id,name,category,price",
		"newTable|categories|category,label",
	}
	for i := 0; i < 10; i++ {
		seedCommands = append(seedCommands,
			fmt.Sprintf("addToTable|categories|cat_%d,Category %d", i, i))
	}
	for _, command := range seedCommands {
		if _, err := db.ExecuteCommand(command); err != nil {
			return err
		}
	}

	// Rows go in reverse order so sort benchmarks never see presorted
	// input on the first iteration.
	for i := tableRows; i >= 1; i-- {
		command := fmt.Sprintf("addToTable|items|%d,item_%d,cat_%d,%d", i, i, i%10, i)
		if _, err := db.ExecuteCommand(command); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(outputDir string, report BenchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("benchmark_%s.json",
		report.StartTime.Format("20060102_150405")))
	return os.WriteFile(path, data, 0644)
}

func initLogging(outputDir string) {
	err := logging.Init(logging.Config{
		Level:      logging.LevelWarn,
		OutputPath: filepath.Join(outputDir, "bench.log"),
		Format:     "text",
	})
	if err != nil {
		logging.InitDefault()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parseCaps(raw string) []int {
	parts := strings.Split(raw, ",")
	caps := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err == nil && n >= 1 {
			caps = append(caps, n)
		}
	}
	if len(caps) == 0 {
		caps = []int{config.DefaultChunkCap}
	}
	return caps
}
