package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/teq/check"
	"github.com/gnoverse/teq/formatter"
)

var (
	checkJsonOutput bool
	outPath         string
	workers         int
	showProgress    bool
	failFast        bool
	watchMode       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Evaluate the queries of equality documents",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide document or directory paths")
			os.Exit(1)
		}

		if watchMode {
			runWatchMode(logger, args)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		opts := check.Options{Workers: workers, Progress: showProgress, FailFast: failFast}
		runCheck(ctx, logger, args, opts, checkJsonOutput, outPath)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output reports in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel evaluations (0 uses all CPUs)")
	checkCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar while evaluating")
	checkCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop scheduling queries after the first mismatch")
	checkCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-check documents whenever they change")
}

func runCheck(ctx context.Context, logger *zap.Logger, paths []string, opts check.Options, isJson bool, jsonOutput string) {
	reports, err := collectReports(ctx, logger, paths, opts)
	if err != nil {
		logger.Error("Error checking documents", zap.Error(err))
		os.Exit(1)
	}

	printReports(logger, reports, isJson, jsonOutput)

	for _, report := range reports {
		if report.Mismatches > 0 {
			os.Exit(1)
		}
	}
}

// collectReports scans every path for documents and evaluates each one.
func collectReports(ctx context.Context, logger *zap.Logger, paths []string, opts check.Options) ([]*check.Report, error) {
	var docs []string
	for _, path := range paths {
		found, err := check.Scan(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, found...)
	}

	reports := make([]*check.Report, 0, len(docs))
	for _, doc := range docs {
		report, err := checkOne(ctx, logger, doc, opts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func checkOne(ctx context.Context, logger *zap.Logger, path string, opts check.Options) (*check.Report, error) {
	doc, err := check.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	p, err := check.BuildPremise(doc.Premise)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	queries, err := check.BuildQueries(doc.Queries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	results, err := check.RunParallel(ctx, logger, p, queries, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return check.NewReport(path, doc.Name, results), nil
}

func printReports(logger *zap.Logger, reports []*check.Report, isJson bool, jsonOutput string) {
	if !isJson {
		// text output
		fmt.Print(formatter.FormatAll(reports))
		return
	}

	// JSON output
	d, err := json.Marshal(reports)
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
	} else {
		f, err := os.Create(jsonOutput)
		if err != nil {
			logger.Error("Error creating JSON output file", zap.Error(err))
			return
		}
		defer f.Close()
		_, err = f.Write(d)
		if err != nil {
			logger.Error("Error writing JSON output file", zap.Error(err))
			return
		}
	}
}

// runWatchMode checks everything once, then re-checks documents as they
// change until interrupted.
func runWatchMode(logger *zap.Logger, paths []string) {
	for _, path := range paths {
		docs, err := check.Scan(path)
		if err != nil {
			logger.Error("Error scanning path", zap.String("path", path), zap.Error(err))
			continue
		}
		for _, doc := range docs {
			report, err := check.CheckDocument(doc)
			if err != nil {
				logger.Error("Error checking document", zap.String("document", doc), zap.Error(err))
				continue
			}
			fmt.Println(formatter.Format(report))
		}
	}

	watcher, err := check.NewWatcher(logger, func(report *check.Report) {
		fmt.Println(formatter.Format(report))
	})
	if err != nil {
		logger.Fatal("Failed to create watcher", zap.Error(err))
	}
	if err := watcher.StartWatching(paths); err != nil {
		logger.Fatal("Failed to start watching", zap.Error(err))
	}
	defer watcher.StopWatching()

	fmt.Println("Watching for document changes. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
