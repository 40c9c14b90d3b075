package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/foundervalue/internal/model"
)

// Runner values one scenario file
type Runner interface {
	RunFile(ctx context.Context, path string) (*model.Report, error)
}

// ScenarioJob values one scenario file
type ScenarioJob struct {
	Path   string
	Runner Runner
}

// Execute executes the scenario job
func (j *ScenarioJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.RunFile(ctx, j.Path)
	return &ScenarioResult{Path: j.Path, Report: report, Error: err}
}

// ScenarioResult is the outcome of one scenario job
type ScenarioResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the scenario result
func (r *ScenarioResult) GetError() error {
	return r.Error
}

// BatchProcessor values many scenarios concurrently
type BatchProcessor struct {
	runner Runner
	pool   *Pool
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner: runner,
		pool:   NewPool(concurrency),
	}
}

// ProcessPaths values every path; results keep input order
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ScenarioResult {
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		jobs[i] = &ScenarioJob{Path: p, Runner: b.runner}
	}

	results := b.pool.Run(ctx, jobs)
	out := make([]*ScenarioResult, len(results))
	for i, r := range results {
		sr, ok := r.(*ScenarioResult)
		if !ok {
			sr = &ScenarioResult{Path: paths[i], Error: r.GetError()}
		}
		out[i] = sr
	}
	return out
}

// ProcessSource values a directory of scenarios, a list file, or a single scenario
func (b *BatchProcessor) ProcessSource(ctx context.Context, source string) ([]*ScenarioResult, error) {
	paths, err := ResolveScenarioPaths(source)
	if err != nil {
		return nil, err
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ResolveScenarioPaths expands source into scenario file paths.
// A directory yields its *.yaml, *.yml and *.json files in name order; a
// .txt or .list file is read one path per line; anything else is a single scenario.
func ResolveScenarioPaths(source string) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", source, err)
	}

	if info.IsDir() {
		return scenarioFilesInDir(source)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".txt", ".list":
		return ReadPathsFromFile(source)
	default:
		return []string{source}, nil
	}
}

func scenarioFilesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadPathsFromFile reads scenario paths from a file (one per line).
// Relative paths resolve against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(filePath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
