package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/limaJavier/logicgrid/pkg/model"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	executablePath          = "../../bin/logicgrid"
	puzzleDirectory         = "../../test/puzzles/"
	MB              float32 = 1024
)

type StrategyType int

const (
	sequential StrategyType = iota
	parallel
)

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	unverified
	failed
)

var (
	strategyTypes = map[StrategyType]string{
		sequential: "sequential",
		parallel:   "parallel",
	}
	resultTypes = map[ResultType]string{
		solved:        "solved",
		unsatisfiable: "unsatisfiable",
		unverified:    "unverified",
		failed:        "failed",
	}
	backends = []string{"bdd", "search", "gini", "kissat", "cadical", "minisat", "cryptominisat", "glucosesimp", "slime", "ortoolsat"}
)

type PuzzleMetadata struct {
	Name       string
	File       string
	Objects    int
	Properties int
	Values     int
	Clues      int
}

type BenchmarkResult struct {
	Backend       string
	Strategy      StrategyType
	Workers       int
	Puzzle        PuzzleMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where results will be written")
	backendsPtr := flag.String("backends", strings.Join(backends, ","), "Comma separated list of backends to benchmark")
	flag.Parse()

	puzzles := getPuzzles()
	selected := strings.Split(*backendsPtr, ",")
	results := make([]BenchmarkResult, 0, len(puzzles)*len(selected)*len(strategyTypes))

	for _, puzzle := range puzzles {
		for _, strategy := range []StrategyType{sequential, parallel} {
			for _, backend := range selected {
				workers := getWorkers(strategy)
				log.Infof("Benchmarking puzzle \"%v\" with backend \"%v\" and strategy \"%v\" (%v workers)", puzzle.Name, backend, strategyTypes[strategy], workers)

				duration, maxMemory, cpuPercentage, result := measure(backend, workers, puzzle)
				results = append(results, BenchmarkResult{
					Backend:       backend,
					Strategy:      strategy,
					Workers:       workers,
					Puzzle:        puzzle,
					Duration:      duration,
					Memory:        maxMemory,
					CpuPercentage: cpuPercentage,
					Result:        result,
				})
			}
		}
	}

	file, err := os.Create(*outPtr)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}
}

func getWorkers(strategy StrategyType) int {
	if strategy == sequential {
		return 1
	}
	return runtime.GOMAXPROCS(0)
}

// getPuzzles lists the builtin Einstein puzzle followed by every puzzle file
func getPuzzles() []PuzzleMetadata {
	puzzles := []PuzzleMetadata{{Name: "einstein (builtin)", Objects: 5, Properties: 5, Values: 5, Clues: 15}}

	puzzleFiles, err := os.ReadDir(puzzleDirectory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}
	for _, file := range puzzleFiles {
		filename := puzzleDirectory + file.Name()
		puzzle, err := model.PuzzleFromFile(filename)
		if err != nil {
			log.Fatalf("cannot parse puzzle file: %v", err)
		}

		puzzles = append(puzzles, PuzzleMetadata{
			Name:       puzzle.Name,
			File:       filename,
			Objects:    puzzle.Domain.ObjectCount(),
			Properties: puzzle.Domain.PropertyCount(),
			Values:     puzzle.Domain.ValueCount(),
			Clues:      len(puzzle.Clues),
		})
	}
	return puzzles
}

func arguments(backend string, workers int, puzzle PuzzleMetadata) []string {
	args := []string{"-v", executablePath}
	if puzzle.File == "" {
		args = append(args, "einstein")
	} else {
		args = append(args, "solve", "--file", puzzle.File)
	}
	return append(args, "--backend", backend, "--workers", fmt.Sprint(workers))
}

func measure(backend string, workers int, puzzle PuzzleMetadata) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", arguments(backend, workers, puzzle)...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState == nil {
		log.Fatalf("cannot run %v through /usr/bin/time", executablePath)
	}
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result = solved
	case 15:
		result = unverified
	case 20:
		result = unsatisfiable
	default:
		log.Warnf("an error occurred during the execution of \"logicgrid\" at puzzle \"%v\" using backend \"%v\": %v", puzzle.Name, backend, stdErr.String())
		return 0, 0, 0, failed
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Backend", "Strategy", "Workers", "Puzzle", "Objects", "Properties", "Values", "Clues", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Backend,
			strategyTypes[result.Strategy],
			fmt.Sprintf("%d", result.Workers),
			result.Puzzle.Name,
			fmt.Sprintf("%d", result.Puzzle.Objects),
			fmt.Sprintf("%d", result.Puzzle.Properties),
			fmt.Sprintf("%d", result.Puzzle.Values),
			fmt.Sprintf("%d", result.Puzzle.Clues),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func parseDurationLine(line string) int64 {
	durationStr := strings.TrimSpace(strings.Split(line, "(h:mm:ss or m:ss):")[1])
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// parseMemoryLine converts the reported kilobytes into megabytes
func parseMemoryLine(line string) float32 {
	memoryStr := strings.TrimSpace(strings.Split(line, ":")[1])
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.TrimSuffix(strings.TrimSpace(strings.Split(line, ":")[1]), "%")
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
