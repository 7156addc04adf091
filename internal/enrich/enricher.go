package enrich

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/civic-tools/district-cli/internal/model"
	"github.com/civic-tools/district-cli/internal/store"
	"github.com/civic-tools/district-cli/internal/table"
)

// RunOptions tunes one batch run.
type RunOptions struct {
	Limit  int  // max rows to process; 0 means all pending
	DryRun bool // count pending work without calling the API

	// OnRow, when set, is called after each processed row with the
	// running counts. The enrich command uses it to drive a progress bar.
	OnRow func(processed, total int)
}

// Enricher drives batch enrichment over one address table.
type Enricher struct {
	table    *table.Table
	resolver *Resolver
	store    store.Store
	opts     RunOptions
}

// New creates an Enricher.
func New(tbl *table.Table, resolver *Resolver, st store.Store, opts RunOptions) *Enricher {
	return &Enricher{
		table:    tbl,
		resolver: resolver,
		store:    st,
		opts:     opts,
	}
}

// Run enriches every pending row of the table, then persists the table
// and records the run. A row is pending while its state house
// representative cell is blank.
//
// Cancellation is honored only at row boundaries: an in-flight lookup
// always completes and its cells are written before the loop stops. On
// any outcome, including row failures, the whole table is saved so
// finished rows are never lost.
func (e *Enricher) Run(ctx context.Context) (*model.RunResult, error) {
	log := zap.L().With(zap.String("file", e.table.Path()))

	if _, ok := e.table.ColumnIndex(model.ColumnAddress); !ok {
		return nil, eris.Errorf("enrich: table %s has no %q column", e.table.Path(), model.ColumnAddress)
	}
	e.table.EnsureColumns(model.OutputColumns()...)

	pending := e.table.Pending(model.ColumnStateHouseRep)
	log.Info("enrich: starting batch",
		zap.Int("rows", e.table.Len()),
		zap.Int("pending", len(pending)),
	)

	if e.opts.DryRun {
		log.Info("enrich: dry run, nothing looked up", zap.Int("pending", len(pending)))
		return &model.RunResult{Pending: len(pending), Remaining: len(pending)}, nil
	}

	run, err := e.store.CreateRun(ctx, e.table.Path(), len(pending))
	if err != nil {
		return nil, eris.Wrap(err, "enrich: create run")
	}

	work := pending
	if e.opts.Limit > 0 && e.opts.Limit < len(work) {
		work = work[:e.opts.Limit]
	}

	// Row work runs on a context that survives cancellation so the
	// current lookup finishes cleanly; the interrupt is picked up at
	// the top of the loop.
	rowCtx := context.WithoutCancel(ctx)

	start := time.Now()
	result := &model.RunResult{Pending: len(pending)}
	var runErr error

	for _, idx := range work {
		if ctx.Err() != nil {
			result.Interrupted = true
			log.Info("enrich: interrupted, saving progress", zap.Int("processed", result.Processed))
			break
		}

		addr, _ := e.table.Cell(idx, model.ColumnAddress)
		row, err := model.NewRow(addr)
		if err != nil {
			runErr = eris.Wrapf(err, "enrich: row %d", idx)
			break
		}

		districts, fromCache, err := e.resolver.Resolve(rowCtx, row.Address)
		if err != nil {
			runErr = eris.Wrapf(err, "enrich: row %d (%s)", idx, row.Address)
			break
		}

		if err := e.apply(idx, districts); err != nil {
			runErr = err
			break
		}
		result.Processed++
		if e.opts.OnRow != nil {
			e.opts.OnRow(result.Processed, len(work))
		}

		if fromCache {
			result.CacheHits++
			log.Debug("enrich: row from cache",
				zap.Int("row", idx),
				zap.String("address", row.Address),
			)
			continue
		}

		log.Info("enrich: row enriched",
			zap.Int("row", idx),
			zap.String("address", row.Address),
			zap.Int("districts", len(districts)),
			zap.Duration("delay", e.resolver.Limiter().Delay()),
		)

		// The pace between rows follows the adaptive delay. Cancellation
		// only cuts the nap short; the loop head decides what it means.
		e.resolver.Limiter().Sleep(ctx)
	}

	// Persist the table before anything else; completed rows must
	// survive whatever ended the loop.
	if err := e.table.Save(); err != nil {
		if runErr == nil {
			runErr = err
		} else {
			log.Error("enrich: table save failed after run error", zap.Error(err))
		}
	}

	result.Remaining = result.Pending - result.Processed
	result.DurationMS = time.Since(start).Milliseconds()
	if runErr != nil {
		result.Error = runErr.Error()
	}

	if err := e.store.FinishRun(rowCtx, run.ID, result); err != nil {
		log.Warn("enrich: failed to record run result", zap.Error(err))
	}

	log.Info("enrich: batch finished",
		zap.String("run_id", run.ID),
		zap.Int("processed", result.Processed),
		zap.Int("remaining", result.Remaining),
		zap.Int("cache_hits", result.CacheHits),
		zap.Bool("interrupted", result.Interrupted),
		zap.Int64("duration_ms", result.DurationMS),
	)

	return result, runErr
}

// apply writes the resolved seats into the row's district cells.
// Jurisdictions absent from the lookup leave their cells untouched, so
// a row with no matched divisions stays pending.
func (e *Enricher) apply(idx int, districts model.Districts) error {
	chambers := e.resolver.Chambers()
	for _, j := range model.Jurisdictions() {
		seat, ok := districts[j]
		if !ok {
			continue
		}
		districtCol, repCol := j.Columns()
		if err := e.table.SetCell(idx, districtCol, seat.Label(chambers[j].Term)); err != nil {
			return err
		}
		if err := e.table.SetCell(idx, repCol, seat.Official); err != nil {
			return err
		}
	}
	return nil
}
