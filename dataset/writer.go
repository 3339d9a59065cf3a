package dataset

import (
	"context"

	"github.com/titigmr/cart/feature"
)

/*
Writer is an interface for a destination to which samples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given
	// samples and will return the actually written
	// number of samples and an error (if not all samples
	// could be written)
	Write(context.Context, []feature.Sample) (int, error)
	// Count returns the total number of samples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

/*
WriteSet takes a context, a Writer and a Set, writes all the samples of
the set on the writer and flushes it.
*/
func WriteSet(ctx context.Context, w Writer, s *Set) error {
	_, err := w.Write(ctx, s.Samples())
	if err != nil {
		return err
	}
	return w.Flush()
}
