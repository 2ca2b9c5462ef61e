// Package bulk processes batches of pricing rows. Rows are independent
// of each other: one bad row yields a failure result for that row only
// and never aborts the batch.
package bulk

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ingredient-pricing/core/pricing"
	"ingredient-pricing/internal/config"
	"ingredient-pricing/internal/errors"
	"ingredient-pricing/internal/logging"
)

// Row statuses; the text is user-facing contract.
const (
	StatusSuccess    = "Calculated successfully"
	StatusNoQuantity = "Quantity was not provided, so pricing could not be calculated"
)

// Row is one input line from a tabular source. QuantityMissing is
// decided once at the ingestion boundary (empty, "nan" or "none"
// cells) and never re-derived downstream.
type Row struct {
	Ingredient      string
	Quantity        string
	QuantityMissing bool
	Price           string
}

// ResultRow is a Row annotated with its pricing outcome and a
// human-readable status string.
type ResultRow struct {
	Row
	Outcome pricing.Outcome
	Status  string
}

// Processor runs a calculator over batches of rows with a bounded
// worker pool. Output order always matches input order.
type Processor struct {
	calc    *pricing.Calculator
	maxRows int
	workers int
	log     *zap.Logger
}

// NewProcessor creates a processor from bulk configuration.
func NewProcessor(calc *pricing.Calculator, cfg config.BulkConfig) *Processor {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		calc:    calc,
		maxRows: cfg.MaxRows,
		workers: workers,
		log:     logging.Named("bulk"),
	}
}

// MaxRows returns the batch row cap.
func (p *Processor) MaxRows() int {
	return p.maxRows
}

// Process computes one ResultRow per input row. Batches over the row
// cap are rejected before any row is processed. Rows run concurrently
// but results[i] always corresponds to rows[i].
func (p *Processor) Process(ctx context.Context, rows []Row) ([]ResultRow, *errors.Error) {
	if len(rows) > p.maxRows {
		return nil, errors.RowLimit(p.maxRows)
	}

	batchID := uuid.NewString()
	p.log.Info("processing batch",
		zap.String("batch_id", batchID),
		zap.Int("rows", len(rows)),
	)

	results := make([]ResultRow, len(rows))

	workers := p.workers
	if workers > len(rows) {
		workers = len(rows)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.processRow(rows[i])
			}
		}()
	}

feed:
	for i := range rows {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Internal("batch processing canceled", err)
	}

	failures := 0
	for i := range results {
		if !results[i].Outcome.Success {
			failures++
		}
	}
	p.log.Info("batch complete",
		zap.String("batch_id", batchID),
		zap.Int("rows", len(rows)),
		zap.Int("failures", failures),
	)

	return results, nil
}

// processRow prices a single row. Missing quantities short-circuit
// with their dedicated status; everything else goes through the
// calculator and maps its outcome to a status string.
func (p *Processor) processRow(row Row) ResultRow {
	if row.QuantityMissing {
		return ResultRow{
			Row: row,
			Outcome: pricing.Outcome{
				IngredientName: row.Ingredient,
			},
			Status: StatusNoQuantity,
		}
	}

	outcome := p.calc.Calculate(row.Ingredient, row.Quantity, row.Price)
	status := StatusSuccess
	if !outcome.Success {
		status = "Error: " + outcome.Err.Message
	}

	return ResultRow{
		Row:     row,
		Outcome: outcome,
		Status:  status,
	}
}
