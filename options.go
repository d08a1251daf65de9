package emvqr

import "log/slog"

// EncoderOption represents a functional option for encoder configuration
type EncoderOption func(*Encoder)

// WithLogger makes the encoder log every payload it produces at debug
// level.
func WithLogger(logger *slog.Logger) EncoderOption {
	return func(e *Encoder) {
		e.logger = logger
	}
}

// WithDefaultRemarks sets the bill reference used when a transaction has
// no remarks. It is sanitized like remarks are.
func WithDefaultRemarks(remarks string) EncoderOption {
	return func(e *Encoder) {
		e.defaultRemarks = SanitizeText(remarks)
	}
}

// WithAdditionalDataOrder sets the order of the tag 62 sub-tags. Gateways
// differ in which order triggers their notifications; the default is
// terminal id (07) then bill reference (01).
func WithAdditionalDataOrder(subTags ...string) EncoderOption {
	return func(e *Encoder) {
		e.additionalOrder = append([]string(nil), subTags...)
	}
}

// ProcessorOption defines a function signature for configuring a Processor.
type ProcessorOption func(*Processor)

// WithConcurrency sets the maximum number of concurrent goroutines for the processor.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		p.concurrency = n
	}
}

// WithErrorHandler sets a callback invoked for every failed transaction of
// a batch, with its index.
func WithErrorHandler(handler func(index int, err error)) ProcessorOption {
	return func(p *Processor) {
		p.errorHandler = handler
	}
}
