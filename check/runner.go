package check

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/gnoverse/teq"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Result records the verdict for one query.
type Result struct {
	Left     string `json:"left"`
	Right    string `json:"right"`
	Equal    bool   `json:"equal"`
	Want     *bool  `json:"want,omitempty"`
	Mismatch bool   `json:"mismatch"`
	Skipped  bool   `json:"skipped,omitempty"`
}

// Report bundles the results of one document.
type Report struct {
	Document   string   `json:"document"`
	Name       string   `json:"name"`
	Results    []Result `json:"results"`
	Mismatches int      `json:"mismatches"`
}

// NewReport wraps results and counts their mismatches.
func NewReport(document, name string, results []Result) *Report {
	report := &Report{Document: document, Name: name, Results: results}
	for _, r := range results {
		if r.Mismatch {
			report.Mismatches++
		}
	}
	return report
}

func evaluate(p *teq.Premise, q Query) Result {
	equal := teq.Equals(q.Left, q.Right, p)
	return Result{
		Left:     q.Left.String(),
		Right:    q.Right.String(),
		Equal:    equal,
		Want:     q.Want,
		Mismatch: q.Want != nil && *q.Want != equal,
	}
}

// Run evaluates every query against the premise, in order.
func Run(p *teq.Premise, queries []Query) []Result {
	results := make([]Result, len(queries))
	for i, q := range queries {
		results[i] = evaluate(p, q)
	}
	return results
}

// Options controls how a batch of queries is evaluated.
type Options struct {
	// Workers caps concurrent evaluations. Zero means one per CPU.
	Workers int
	// Progress renders a progress bar while the batch runs.
	Progress bool
	// FailFast stops scheduling new queries after the first mismatch.
	FailFast bool
}

// RunParallel evaluates queries concurrently. Queries are safe to
// evaluate in parallel because the premise is only read. Queries left
// unevaluated, because the context was canceled or FailFast tripped,
// are returned with Skipped set.
func RunParallel(ctx context.Context, logger *zap.Logger, p *teq.Premise, queries []Query, opts Options) ([]Result, error) {
	results := make([]Result, len(queries))
	for i, q := range queries {
		results[i] = Result{
			Left:    q.Left.String(),
			Right:   q.Right.String(),
			Want:    q.Want,
			Skipped: true,
		}
	}

	// limit the number of workers
	maxWorkers := opts.Workers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	sem := make(chan struct{}, maxWorkers)

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(queries),
			progressbar.OptionSetDescription("checking"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i, q := range queries {
		select {
		case <-runCtx.Done():
			// remaining queries stay skipped
		default:
			sem <- struct{}{}
			wg.Add(1)
			go func(i int, q Query) {
				defer wg.Done()
				defer func() { <-sem }()

				result := evaluate(p, q)
				results[i] = result

				if result.Mismatch {
					if logger != nil {
						logger.Warn("verdict mismatch",
							zap.String("left", result.Left),
							zap.String("right", result.Right),
							zap.Bool("got", result.Equal))
					}
					if opts.FailFast {
						cancel()
					}
				}
				if bar != nil {
					bar.Add(1)
				}
			}(i, q)
		}
	}

	wg.Wait()
	if bar != nil {
		fmt.Println()
	}
	return results, ctx.Err()
}

// CheckDocument loads one document, builds its premise, and evaluates
// its queries in order.
func CheckDocument(path string) (*Report, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	p, err := BuildPremise(doc.Premise)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	queries, err := BuildQueries(doc.Queries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return NewReport(path, doc.Name, Run(p, queries)), nil
}
