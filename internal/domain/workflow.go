package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"testgrade.dev/pkg/testgrade/internal/adapter"
	"testgrade.dev/pkg/testgrade/internal/controller"
	m "testgrade.dev/pkg/testgrade/internal/model"
	"testgrade.dev/pkg/testgrade/pkg"
)

// AssessArgs contains the arguments for a batch quality assessment.
type AssessArgs struct {
	Paths              []m.Path
	TaskDescription    string
	ImplementationPath m.Path
	Language           m.Language
	Reports            m.Path
	Threads            uint
}

// SessionArgs contains the arguments for running a TDD evaluation session.
type SessionArgs struct {
	SpecPath m.Path
	Reports  m.Path
	// Alignment is an externally computed alignment score to fold into
	// the verdict; negative means none was provided.
	Alignment float64
	Timeout   time.Duration
}

// ViewArgs contains the arguments for viewing stored reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the use cases exposed by the CLI.
type Workflow interface {
	Assess(ctx context.Context, args AssessArgs) error
	RunSession(ctx context.Context, args SessionArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SampleFSAdapter
	adapter.TestRunnerAdapter
	adapter.ReportStore
	controller.UI
	Aggregator
	Evaluator
	*Combiner
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SampleFSAdapter,
	runner adapter.TestRunnerAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	aggregator Aggregator,
	evaluator Evaluator,
	combiner *Combiner,
) Workflow {
	return &workflow{
		SampleFSAdapter:   fsAdapter,
		TestRunnerAdapter: runner,
		ReportStore:       reportStore,
		UI:                ui,
		Aggregator:        aggregator,
		Evaluator:         evaluator,
		Combiner:          combiner,
	}
}

// Assess loads every sample, evaluates them concurrently and persists
// plus displays the resulting reports. Per-file reports spill to disk so
// large batches never hold every evidence map in memory at once.
func (w *workflow) Assess(ctx context.Context, args AssessArgs) error {
	if err := w.Start(ctx, controller.WithAssessMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	samples, err := w.LoadSamples(ctx, args.Paths, args.TaskDescription, args.ImplementationPath, args.Language)
	if err != nil {
		return fmt.Errorf("load samples: %w", err)
	}

	if len(samples) == 0 {
		return fmt.Errorf("no test files found under %v", args.Paths)
	}

	spill, err := pkg.NewSpill[m.ReportEntry]("reports")
	if err != nil {
		return fmt.Errorf("create report spill: %w", err)
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Error("failed to close report spill", "error", err)
		}
	}()

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(int(args.Threads))
	}

	for _, sample := range samples {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			report := w.Evaluate(sample.Sample)

			return spill.Append(m.ReportEntry{Path: sample.Path, Report: report})
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("evaluate samples: %w", err)
	}

	entries := make([]m.ReportEntry, 0, spill.Len())

	err = spill.Range(func(_ uint64, entry m.ReportEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return fmt.Errorf("collect reports: %w", err)
	}

	if args.Reports != "" {
		if err := w.SaveReports(args.Reports, entries); err != nil {
			return fmt.Errorf("save reports: %w", err)
		}
	}

	if err := w.DisplayReports(ctx, entries); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// RunSession replays a session spec iteration by iteration: read the
// generated tests and implementation snapshot, execute (or take the
// recorded outcome), advance the evaluator and display progress. A fatal
// outcome aborts the session but still yields a verdict.
func (w *workflow) RunSession(ctx context.Context, args SessionArgs) error {
	spec, err := adapter.LoadSessionSpec(args.SpecPath)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithSessionMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	session := w.NewSession(spec.ID, spec.Task, m.ParseLanguage(spec.Language))

	implementation := ""

	for index, iteration := range spec.Iterations {
		w.DisplayIterationStart(ctx, session.ID, index+1)

		tests, err := w.ReadFile(ctx, m.Path(iteration.Tests))
		if err != nil {
			return fmt.Errorf("iteration %d: %w", index+1, err)
		}

		if iteration.Implementation != "" {
			implementation, err = w.ReadFile(ctx, m.Path(iteration.Implementation))
			if err != nil {
				return fmt.Errorf("iteration %d: %w", index+1, err)
			}
		}

		outcome, err := w.iterationOutcome(ctx, iteration, session.Language, tests, implementation, args.Timeout)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", index+1, err)
		}

		record, err := w.Advance(ctx, session, tests, implementation, outcome)
		if err != nil {
			if errors.Is(err, ErrFatalOutcome) {
				slog.Warn("session aborted", "session", session.ID, "iteration", index+1)
				break
			}

			return fmt.Errorf("iteration %d: %w", index+1, err)
		}

		w.DisplayIterationResult(ctx, record)

		if session.State.Terminal() {
			break
		}
	}

	final, accepted := w.Finalize(session)

	if args.Alignment >= 0 {
		final, accepted = w.combineVerdict(session, final, args.Alignment)
		session.FinalScore = final
		session.Accepted = accepted
	}

	w.DisplaySessionVerdict(ctx, session, final, accepted)

	if args.Reports != "" {
		if err := w.SaveSession(args.Reports, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	w.Wait(ctx)

	return nil
}

// View loads stored reports and displays them.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithAssessMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	entries, err := w.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.DisplayReports(ctx, entries); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) iterationOutcome(
	ctx context.Context,
	iteration adapter.IterationSpec,
	language m.Language,
	tests, implementation string,
	timeout time.Duration,
) (m.ExecutionOutcome, error) {
	if iteration.Outcome != nil {
		return *iteration.Outcome, nil
	}

	return w.Run(ctx, adapter.RunSpec{
		TestSource:     tests,
		Implementation: implementation,
		Language:       language,
		Timeout:        timeout,
	})
}

// combineVerdict folds an external alignment score into the session
// score. The task-relevance signal comes from the last iteration's
// relevance metric and only applies when a task description exists.
func (w *workflow) combineVerdict(session *m.Session, final, alignment float64) (float64, bool) {
	var opts []CombineOption

	if session.TaskDescription != "" && len(session.Iterations) > 0 {
		last := session.Iterations[len(session.Iterations)-1]
		opts = append(opts, WithTaskRelevance(last.Report.MetricScore(m.MetricRelevance)))
	}

	return w.Combine(final, alignment, opts...)
}
