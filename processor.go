package emvqr

import (
	"context"
	"fmt"
	"sync"
)

// Processor encodes batches of transactions for one merchant using a
// bounded pool of goroutines, e.g. to print a sheet of codes at once.
type Processor struct {
	encoder      *Encoder
	concurrency  int              // Max number of goroutines for encoding
	errorHandler func(int, error) // Callback for each failed transaction
}

// NewProcessor creates a new Processor around enc.
func NewProcessor(enc *Encoder, opts ...ProcessorOption) *Processor {
	p := &Processor{
		encoder:     enc,
		concurrency: 4, // Default concurrency
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.concurrency < 1 {
		p.concurrency = 1
	}
	return p
}

// EncodeBatch encodes txs concurrently. Results are in input order. If any
// transaction fails, or ctx is cancelled, no results are returned and the
// error of the lowest failing index is reported.
func (p *Processor) EncodeBatch(ctx context.Context, txs []Transaction) ([]string, error) {
	results := make([]string, len(txs))
	errs := make([]error, len(txs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency) // Limit concurrent goroutines

	for i, tx := range txs {
		// Don't start new jobs once the context is cancelled
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)
		go func(idx int, tx Transaction) {
			defer wg.Done()
			defer func() { <-semaphore }()

			payload, err := p.encoder.Encode(tx)
			if err != nil {
				errs[idx] = err
				if p.errorHandler != nil {
					p.errorHandler(idx, err)
				}
				return
			}
			results[idx] = payload
		}(i, tx)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return results, nil
}
