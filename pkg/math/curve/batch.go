package curve

import (
	"context"
	"fmt"
	"math/big"

	"github.com/taurusgroup/weierstrass/pkg/pool"
)

// ScalarMultAll returns [n₀⋅v, n₁⋅v, …] for the given scalars.
//
// The multiplications share no state and are spread over pl; a nil pool computes them
// one after the other. The first failing multiplication aborts the others.
func (v *Point) ScalarMultAll(ctx context.Context, pl *pool.Pool, scalars []*big.Int) ([]*Point, error) {
	results := make([]*Point, len(scalars))
	err := pl.Parallelize(ctx, len(scalars), func(_ context.Context, i int) error {
		r, err := v.ScalarMult(scalars[i])
		if err != nil {
			return fmt.Errorf("scalar %d: %w", i, err)
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("curve.Point.ScalarMultAll: %w", err)
	}
	return results, nil
}
