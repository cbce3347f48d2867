package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so that every roll leaves an audit trail.
// All rolls are logged at debug level with sides and result.
//
// Roller itself satisfies Source, so it can be injected anywhere a plain
// Source is expected.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to
// logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn returns a random int in [0, n) from the wrapped Source.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("dice roll",
		zap.Int("sides", n),
		zap.Int("result", v+1),
	)
	return v
}
