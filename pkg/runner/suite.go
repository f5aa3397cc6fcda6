package runner

import (
	"context"
	"time"

	"github.com/umputun/uicheck/pkg/scenario"
	"github.com/umputun/uicheck/pkg/status"
)

// Summary aggregates the results of a suite run.
type Summary struct {
	Results  []Result
	Passed   int
	Failed   int
	Skipped  int
	NotRun   []string // scenarios never started because the run was canceled
	Duration time.Duration
}

// OK reports whether no scenario failed and the run was not cut short.
func (s Summary) OK() bool {
	return s.Failed == 0 && len(s.NotRun) == 0
}

// FailedNames returns names of failed scenarios in run order.
func (s Summary) FailedNames() []string {
	var res []string
	for _, r := range s.Results {
		if r.State == status.StateFailed {
			res = append(res, r.Scenario)
		}
	}
	return res
}

// RunAll executes scenarios one after another, each in its own browser.
// Cancellation fails the scenario in progress and leaves the rest not started.
func (r *Runner) RunAll(ctx context.Context, scenarios []scenario.Scenario) Summary {
	start := time.Now()
	var sum Summary
	for i, sc := range scenarios {
		if ctx.Err() != nil {
			for _, rest := range scenarios[i:] {
				sum.NotRun = append(sum.NotRun, rest.Name)
			}
			r.log.Warn("run canceled, %d scenario(s) not started", len(sum.NotRun))
			break
		}
		r.log.PrintSection(status.NewScenarioSection(i+1, len(scenarios), sc.Name))
		res := r.Run(ctx, sc)
		switch res.State {
		case status.StatePassed:
			sum.Passed++
		case status.StateSkipped:
			sum.Skipped++
		default:
			sum.Failed++
		}
		sum.Results = append(sum.Results, res)
		if r.cfg.OnResult != nil {
			r.cfg.OnResult(res)
		}
	}
	sum.Duration = time.Since(start)
	r.log.PrintSection(status.NewSummarySection(sum.Passed, sum.Failed, sum.Skipped))
	return sum
}
