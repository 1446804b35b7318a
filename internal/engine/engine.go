package engine

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"gougewatch/internal/config"
	"gougewatch/internal/data"
	"gougewatch/internal/fetcher"
	"gougewatch/internal/layers"
	"gougewatch/internal/logging"
	"gougewatch/internal/render"
	"gougewatch/internal/sections"
	"gougewatch/internal/sections/widgets"
	"gougewatch/internal/supabase"
)

func exitCodeForRun(fatal, partial bool) int {
	// Exit code contract:
	// 0 = clean run, every section rendered
	// 2 = partial failure (some datasets or sections errored)
	// 3 = fatal error (dashboard did not render)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*render.Manager, error) {
	outMgr := render.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(render.NewConsoleSink(nil, cfg.Output.ConsoleFormat)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := render.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := render.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := render.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// HTML Sink
	if cfg.Output.HTML != "" {
		hs, err := render.NewHTMLSink(cfg.Output.HTML)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(hs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

// ComposeSections assembles the full section list for a run: every registered
// static section plus one map section per configured layer, then filters by
// the --sections selector.
func ComposeSections(cfg *config.Config) ([]sections.Section, error) {
	all := sections.List()

	layerSet, err := layers.Load(cfg.Datasets.LayersFile)
	if err != nil {
		return nil, err
	}
	for _, l := range layerSet {
		all = append(all, widgets.NewMapLayerSection(l))
	}

	return sections.Select(all, cfg.Sections.Selector)
}

func applySectionOptionsIfAny(cfg *config.Config, selected []sections.Section) error {
	// applySectionOptionsIfAny applies per-section configuration supplied via
	// repeated --set flags.
	//
	// --set values are parsed as "sectionID.option=value" and routed to the
	// matching section's Configure method (only sections that implement
	// sections.ConfigurableSection).
	//
	// Example:
	//   gougewatch render --set listings-table.table=gouges_v2

	if len(cfg.Sections.Set) == 0 {
		return nil
	}

	assignments, err := config.ParseSectionOptionAssignments(cfg.Sections.Set)
	if err != nil {
		return err
	}

	byID := make(map[string]sections.Section, len(selected))
	for _, s := range selected {
		byID[s.ID()] = s
	}

	for sectionID, opts := range assignments {
		s, ok := byID[sectionID]
		if !ok {
			return fmt.Errorf("unknown section ID %q", sectionID)
		}
		cs, ok := s.(sections.ConfigurableSection)
		if !ok {
			return fmt.Errorf("section %q does not support options", sectionID)
		}

		allowed := make(map[string]struct{})
		for _, opt := range cs.Options() {
			allowed[opt.Name] = struct{}{}
		}
		for name := range opts {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("unknown option %q for section %q", name, sectionID)
			}
		}

		if err := cs.Configure(opts); err != nil {
			return fmt.Errorf("configure section %q: %w", sectionID, err)
		}
	}

	return nil
}

// sectionResultIfDependenciesMissingOrFailed returns a synthetic section
// status/message when required datasets are missing or failed to fetch.
//
// Datasets are fetched ahead of time and placed into the run's
// data.DataContext; if a declared dataset is missing from the DataContext (or
// failed to fetch), the section can't be built normally.
func sectionResultIfDependenciesMissingOrFailed(dc data.DataContext, deps []data.DatasetRequest, depErrs map[string]error, verbose bool) (sections.Status, string, bool) {
	var missing []string
	var failedDepMessages []string
	hasSkippableFailure := false
	hasHardFailure := false

	for _, d := range deps {
		if _, ok := dc.Get(d); ok {
			continue
		}
		if depErrs != nil {
			if depErr := depErrs[d.ID()]; depErr != nil {
				pres := presentDatasetError(depErr, verbose)
				// If multiple datasets fail, include the identity so the user can tell
				// what failed. If exactly one fails, emit only the message.
				failedDepMessages = append(failedDepMessages, fmt.Sprintf("%s: %s", d.ID(), pres.message))
				if pres.disposition == depErrDispositionSkip {
					hasSkippableFailure = true
				} else {
					hasHardFailure = true
				}
				continue
			}
		}
		missing = append(missing, d.ID())
	}

	if len(failedDepMessages) > 0 {
		status := sections.StatusError
		if hasSkippableFailure && !hasHardFailure {
			status = sections.StatusSkipped
		}

		msg := strings.Join(failedDepMessages, "; ")
		if len(failedDepMessages) == 1 {
			if _, after, ok := strings.Cut(failedDepMessages[0], ": "); ok {
				msg = after
			}
		}
		return status, msg, true
	}

	if len(missing) > 0 {
		return sections.StatusError, fmt.Sprintf("Missing datasets: %v", missing), true
	}

	return "", "", false
}

func undeclaredDatasetAccesses(accessed []string, declared []data.DatasetRequest) []string {
	if len(accessed) == 0 {
		return nil
	}
	decl := make(map[string]struct{}, len(declared))
	for _, d := range declared {
		decl[d.ID()] = struct{}{}
	}

	var out []string
	for _, id := range accessed {
		if _, ok := decl[id]; ok {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

type Engine struct {
	Client *supabase.Client
	Log    logging.Logger

	// schedulerExecute is a test seam for streaming execution.
	// If nil, Engine uses the real fetcher + scheduler.
	schedulerExecute func(ctx context.Context, cfg *config.Config, plan *RenderPlan) (<-chan DatasetResult, <-chan error)
}

func NewEngine(client *supabase.Client, log logging.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{
		Client: client,
		Log:    log,
	}
}

func (e *Engine) executePlanStream(ctx context.Context, cfg *config.Config, plan *RenderPlan) (<-chan DatasetResult, <-chan error) {
	if e.schedulerExecute != nil {
		return e.schedulerExecute(ctx, cfg, plan)
	}

	budget := fetcher.NewRequestBudget()
	f := fetcher.NewFetcher(e.Client, budget)
	f.SetRowLimit(cfg.Datasets.Limit)

	scheduler, err := NewScheduler(f, cfg.Runtime.Concurrency)
	if err != nil {
		resCh := make(chan DatasetResult)
		errCh := make(chan error, 1)
		close(resCh)
		errCh <- err
		close(errCh)
		return resCh, errCh
	}
	return scheduler.Execute(ctx, plan)
}

// collectResults drains the dataset result stream into a DataContext plus a
// per-dataset error map, forwarding a dataset.fetched event for each.
func collectResults(resCh <-chan DatasetResult, outMgr *render.Manager, runID string, verbose bool) (data.DataContext, map[string]error) {
	dataMap := make(map[string]any)
	depErrs := make(map[string]error)

	for res := range resCh {
		id := res.Request.ID()
		ev := render.Event{Type: "dataset.fetched", RunID: runID, Dataset: id}
		if res.Err != nil {
			depErrs[id] = res.Err
			ev.Error = presentDatasetError(res.Err, verbose).message
		} else {
			dataMap[id] = res.Value
		}
		_ = outMgr.Write(ev)
	}

	return data.NewMapDataContext(dataMap), depErrs
}

// buildSections builds each planned section against the fetched data, forwards
// fragments to the output sinks, and reports whether any section errored.
func buildSections(ctx context.Context, cfg *config.Config, plan *RenderPlan, dc data.DataContext, depErrs map[string]error, outMgr *render.Manager) (hasErrors bool) {
	for _, section := range plan.Sections {
		deps := plan.SectionDeps[section.ID()]

		if status, msg, ok := sectionResultIfDependenciesMissingOrFailed(dc, deps, depErrs, cfg.Runtime.Verbose); ok {
			_ = outMgr.Write(sections.Fragment{
				SectionID: section.ID(),
				Title:     section.Title(),
				Status:    status,
				Message:   msg,
			})
			if status == sections.StatusError {
				hasErrors = true
			}
			continue
		}

		// Enforce the sections contract: a section must not read datasets it did
		// not declare in Dependencies(). This prevents sections from implicitly
		// relying on other sections' datasets.
		tracked := data.NewTrackingDataContext(dc)
		frag, err := section.Build(ctx, tracked)
		undeclared := undeclaredDatasetAccesses(tracked.AccessedIDs(), deps)
		if len(undeclared) > 0 {
			msg := fmt.Sprintf("Section accessed undeclared datasets: %s. Declare them in Dependencies().", strings.Join(undeclared, ", "))
			if err != nil {
				msg = fmt.Sprintf("%s (build error: %v)", msg, err)
			}
			_ = outMgr.Write(sections.Fragment{SectionID: section.ID(), Title: section.Title(), Status: sections.StatusError, Message: msg})
			hasErrors = true
			continue
		}
		if err != nil {
			_ = outMgr.Write(sections.Fragment{
				SectionID: section.ID(),
				Title:     section.Title(),
				Status:    sections.StatusError,
				Message:   fmt.Sprintf("Build failed: %v", err),
			})
			hasErrors = true
			continue
		}

		// Backfill identifiers so output stays consistent and well-formed.
		// Sections care about their content; the engine already knows the section
		// ID and title, so we stamp them here to keep sinks (ndjson/report/html) happy.
		if frag.SectionID == "" {
			frag.SectionID = section.ID()
		}
		if frag.Title == "" {
			frag.Title = section.Title()
		}
		if frag.Status == "" {
			frag.Status = sections.StatusOK
		}
		if frag.Status == sections.StatusError {
			hasErrors = true
		}

		_ = outMgr.Write(frag)
	}

	return hasErrors
}

func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	if !cfg.Output.NoConsole {
		fmt.Fprintln(os.Stderr, "Resolving sections...")
	}
	selected, err := ComposeSections(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving sections: %v\n", err)
		return exitCodeForRun(true, false)
	}
	if len(selected) == 0 {
		fmt.Fprintln(os.Stderr, "No sections selected.")
		return exitCodeForRun(true, false)
	}

	if err := applySectionOptionsIfAny(cfg, selected); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring sections: %v\n", err)
		return exitCodeForRun(true, false)
	}

	plan := NewRenderPlan()
	for _, s := range selected {
		if err := plan.AddSection(ctx, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error planning section %s: %v\n", s.ID(), err)
			return exitCodeForRun(true, false)
		}
	}

	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Selected %d sections (%d datasets).\n", len(plan.Sections), len(plan.Requests))
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return exitCodeForRun(true, false)
	}
	defer outMgr.Close()

	runID := uuid.NewString()
	e.Log.Infow("run started", "run_id", runID, "sections", len(plan.Sections), "datasets", len(plan.Requests))
	_ = outMgr.Write(render.Event{Type: "run.started", RunID: runID, Sections: len(plan.Sections), Datasets: len(plan.Requests)})

	resCh, errCh := e.executePlanStream(ctx, cfg, plan)

	dc, depErrs := collectResults(resCh, outMgr, runID, cfg.Runtime.Verbose)
	hasErrors := buildSections(ctx, cfg, plan, dc, depErrs, outMgr)

	var schedErr error
	// Drain scheduler errors; we only need to know whether any fatal error occurred (keep one non-nil error).
	for err := range errCh {
		if err != nil {
			schedErr = err
		}
	}
	if schedErr != nil {
		e.Log.Errorw("run aborted", "run_id", runID, "error", schedErr)
	}

	fatal := schedErr != nil
	code := exitCodeForRun(fatal, hasErrors)
	_ = outMgr.Write(render.Event{Type: "run.finished", RunID: runID, ExitCode: code})
	return code
}
