package engine

import (
	"absint/cfg"
	"absint/check"
	"absint/diag"
	"absint/interproc"
)

// Application is the whole-program input a frontend hands to the
// engine: every CFG reachable from the entry point, their formal
// parameter lists (for interprocedural binding), and which graph to
// start from (spec §6, "run(application)").
type Application struct {
	Graphs  map[string]cfg.Graph
	Formals map[string][]string
	EntryID string
}

// Engine is a configured, ready-to-run analysis (spec §6,
// "configure(options) -> engine").
type Engine struct {
	r *resolved
}

// Configure validates opts and builds an Engine. Every error returned
// here is a diag.SetupError (spec §7, "misconfiguration... before
// fixpoint").
func Configure(opts Options) (*Engine, error) {
	r, err := configure(opts)
	if err != nil {
		return nil, err
	}
	return &Engine{r: r}, nil
}

// Run drives the configured analysis over application to a fixpoint
// and returns the warnings emitted by every registered check, in
// registration order (spec §6, "run(application) -> collection<Warning>").
func (e *Engine) Run(app Application) ([]check.Warning, error) {
	if _, ok := app.Graphs[app.EntryID]; !ok {
		return nil, &diag.ValidationError{Code: diag.CodeValidationBadCFG, Message: "entry graph " + app.EntryID + " not found in application"}
	}

	cfgConfig := cfg.Config{
		WideningThreshold:  e.r.opts.WideningThreshold,
		NarrowingSteps:     e.r.opts.NarrowingSteps,
		Worklist:           e.r.opts.FixpointWorkingSet,
		AllowDuplicateWork: e.r.opts.AllowDuplicateWork,
	}

	var byGraph map[string][]interproc.AnalyzedCFG

	if e.r.opts.InterproceduralAnalysis {
		driver := interproc.NewDriver(app.Graphs, app.Formals, e.r.opts.CallGraph, e.r.opts.OpenCallPolicy, e.r.opts.ContextSensitivityK, cfgConfig, e.r.newBottomState())
		if _, err := driver.Fixpoint(app.EntryID, e.r.newState()); err != nil {
			return nil, err
		}
		byGraph = driverResults(app.Graphs, driver)
	} else {
		result, err := cfg.Run(app.Graphs[app.EntryID], e.r.newState(), e.r.newBottomState(), cfgConfig)
		if err != nil {
			return nil, err
		}
		byGraph = map[string][]interproc.AnalyzedCFG{
			app.EntryID: {{ID: app.EntryID, Graph: app.Graphs[app.EntryID], Result: result}},
		}
	}

	runner := check.NewRunner()
	for _, c := range e.r.opts.SyntacticChecks {
		runner.Register(c)
	}
	for _, c := range e.r.opts.SemanticChecks {
		runner.Register(c)
	}

	results := check.NewResults(byGraph)
	return runner.Run(app.Graphs, results), nil
}

func driverResults(graphs map[string]cfg.Graph, d *interproc.Driver) map[string][]interproc.AnalyzedCFG {
	out := make(map[string][]interproc.AnalyzedCFG, len(graphs))
	for id := range graphs {
		out[id] = d.GetAnalysisResultsOf(id)
	}
	return out
}
