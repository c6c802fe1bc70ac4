package zipack

// ProgressFunc receives progress reports during Pack and Unpack.
//
// The processed and total counts are in bytes; ratio is processed/total clamped to [0, 1].
// Pack measures both against the combined size of the source files; Unpack measures
// processed in compressed record bytes against the archive's own size on disk, so its ratio
// approaches but only reaches 1 with the final report. Every operation ends with exactly one
// report at ratio 1 regardless of the totals, including operations over zero bytes.
//
// Callbacks run synchronously on the calling goroutine between transfers; a slow callback
// slows the operation down.
type ProgressFunc func(processed, total int64, ratio float64)

// progress accumulates the byte counts for a single operation.
//
// The total is fixed at creation; processed only ever grows.
type progress struct {
	fn        ProgressFunc
	total     int64
	processed int64
}

func newProgress(fn ProgressFunc, total int64) *progress {
	return &progress{fn: fn, total: total}
}

// add advances processed by n bytes and emits a report.
func (p *progress) add(n int64) {
	p.processed += n

	if p.fn == nil {
		return
	}

	var ratio float64
	if p.total > 0 {
		if ratio = float64(p.processed) / float64(p.total); ratio > 1 {
			ratio = 1
		}
	}

	p.fn(p.processed, p.total, ratio)
}

// done emits the final report at ratio 1.
func (p *progress) done() {
	if p.fn != nil {
		p.fn(p.processed, p.total, 1)
	}
}
