package naming

// OccurrenceKey groups identical results within one run so repeats can be
// numbered.
type OccurrenceKey struct {
	PayerCode   string
	Beneficiary string
	Amount      string
}

// Counter numbers repeated (payer, beneficiary, amount) results. First call
// per key returns 1, each later call increments. Scoped to one run; the
// pipeline owns it and accesses it sequentially, so no locking here. Callers
// that parallelize page processing must serialize Next and preserve input
// order, since ascending numbering per key is observable output.
type Counter struct {
	seen map[OccurrenceKey]int
}

func NewCounter() *Counter {
	return &Counter{seen: make(map[OccurrenceKey]int)}
}

// Next returns the occurrence number for key, starting at 1.
func (c *Counter) Next(key OccurrenceKey) int {
	c.seen[key]++
	return c.seen[key]
}

// Reset clears all counts for a new run.
func (c *Counter) Reset() {
	c.seen = make(map[OccurrenceKey]int)
}
