package cart

import "go.uber.org/zap"

// Unbounded is the MaxDepth of a Strategy that grows trees until their
// leaves cannot be split any further.
const Unbounded = -1

// Strategy holds the configuration
// for how deep a tree may grow and where
// its growth is reported.
type Strategy struct {
	// MaxDepth is the maximum number of edges
	// from the root to any leaf. Nodes at this
	// depth are not developed at all. A negative
	// value means no limit.
	MaxDepth int
	// Logger receives debug entries about every
	// developed node. A nil Logger discards them.
	Logger *zap.Logger
}

// DefaultStrategy returns a Strategy with
// no depth limit and no logging.
func DefaultStrategy() *Strategy {
	return &Strategy{MaxDepth: Unbounded}
}

// Splits returns whether a node at the given depth
// may be split.
func (st *Strategy) Splits(depth int) bool {
	return st.MaxDepth < 0 || depth < st.MaxDepth
}

func (st *Strategy) logger() *zap.Logger {
	if st.Logger == nil {
		return zap.NewNop()
	}
	return st.Logger
}
