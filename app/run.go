package app

import (
	"context"
	"log"

	"cleanml/domain/result"
	"cleanml/ports"
)

// Run executes one reporting run end to end: load the result store,
// summarize it, render the requested report kinds, and write the run
// manifest. Any failure aborts the run; there is no partial-success
// mode.
func (r *Reporter) Run(ctx context.Context, source ports.ResultSource, plots, ttests bool) error {
	store, err := source.Load(ctx)
	if err != nil {
		return err
	}
	log.Printf("[Reporter] Run %s over %d result entries", r.manifest.RunID, len(store))

	if plots {
		summary, err := result.Summarize(store, r.errorTypes)
		if err != nil {
			return err
		}
		if err := r.PlotAll(summary); err != nil {
			return err
		}
	}
	if ttests {
		if err := r.TTestReport(store); err != nil {
			return err
		}
	}
	return r.manifest.Write(r.outDir)
}
