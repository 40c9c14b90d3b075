package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/foundervalue/internal/llm"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/pipeline"
	"github.com/ppiankov/foundervalue/internal/util"
	"github.com/ppiankov/foundervalue/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchLLM     llmFlags
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Value many scenario files in parallel",
	Long: `Batch values every scenario in a directory (*.yaml, *.yml, *.json) or
listed in a .txt file (one path per line), using a worker pool, and
writes a JSON and Markdown report per scenario.

Example:
  foundervalue batch ./scenarios
  foundervalue batch portfolio.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./foundervalue-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchLLM.register(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if cmd.Flags().Changed("concurrency") || cfg.Concurrency.Workers <= 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if err := batchLLM.apply(cfg); err != nil {
		return err
	}

	line := strings.Repeat("═", 59)
	fmt.Fprintf(os.Stderr, "\n%s\n  foundervalue batch\n%s\n\n", line, line)
	fmt.Fprintf(os.Stderr, "  Source:       %s\n", source)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, pipeline.WithThrottle(newThrottle(cfg)))
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	results, err := processor.ProcessSource(ctx, source)
	if err != nil {
		return fmt.Errorf("process %s: %w", source, err)
	}

	successCount, failureCount := 0, 0
	names := make(map[string]int)
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %v\n", result.Error)
			continue
		}

		name := reportName(result.Path, result.Report, names)
		jsonPath := filepath.Join(outputDir, name+".json")
		mdPath := filepath.Join(outputDir, name+".md")
		renderer := p.Renderer()
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}

		if result.Report.LLM != nil {
			llmPath := filepath.Join(outputDir, name+".llm.md")
			if err := renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(result.Report.LLM), llmPath); err != nil {
				fmt.Fprintf(os.Stderr, "⚠ %s: narrative not written: %v\n", result.Path, err)
			}
		}

		successCount++
		res := result.Report.Results
		fmt.Fprintf(os.Stderr, "✓ %s (%s): %s to %s\n", name, result.Report.StageLabel,
			util.FormatCurrency(res.AggregateLow), util.FormatCurrency(res.AggregateHigh))
	}

	fmt.Fprintf(os.Stderr, "\n%s\n  Batch Complete\n%s\n\n", line, line)
	fmt.Fprintf(os.Stderr, "  Total:     %d scenarios\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n\n", outputDir)

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d scenarios failed", failureCount)
	}
	return nil
}

// reportName derives a unique file stem from the company or the scenario file name
func reportName(path string, report *model.Report, seen map[string]int) string {
	base := report.Company
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	name := sanitizeFilename(base)

	seen[name]++
	if n := seen[name]; n > 1 {
		name = fmt.Sprintf("%s-%d", name, n)
	}
	return name
}

// sanitizeFilename makes s safe to use as a file name
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = strings.ToLower(replacer.Replace(strings.TrimSpace(s)))
	if s == "" || s == "." || s == ".." {
		s = "scenario"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
