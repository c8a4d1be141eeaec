// Package order finds the order of points and enumerates their multiples.
package order

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/taurusgroup/weierstrass/pkg/math/curve"
)

var (
	// ErrOrderNotFound is returned when no multiple of a point below the search bound is the identity.
	ErrOrderNotFound = errors.New("order: no multiple of the point is the identity within the bound")
	// ErrWrongOrder is returned by Verify when n⋅G is not the identity.
	ErrWrongOrder = errors.New("order: n⋅G is not the identity")
)

var one = big.NewInt(1)

// Enumerate returns [G, 2G, …, count⋅G], computed by successive additions of g.
//
// Counting the distinct points of a long enough sequence estimates the order of g.
func Enumerate(g *curve.Point, count int) ([]*curve.Point, error) {
	if g == nil || count < 0 {
		return nil, fmt.Errorf("order.Enumerate: %w: count %d", curve.ErrInvalidOperand, count)
	}
	points := make([]*curve.Point, 0, count)
	acc := g
	for i := 0; i < count; i++ {
		points = append(points, acc)
		next, err := acc.Add(g)
		if err != nil {
			return nil, fmt.Errorf("order.Enumerate: %w", err)
		}
		acc = next
	}
	return points, nil
}

// Distinct returns the number of different points in points.
func Distinct(points []*curve.Point) int {
	seen := make(map[string]struct{}, len(points))
	for _, v := range points {
		seen[key(v)] = struct{}{}
	}
	return len(seen)
}

// Order returns the smallest n ≥ 1 such that n⋅G is the identity.
//
// The accumulator starts at G and G is added until the identity is reached, counting
// the points visited. This takes O(n) additions; use OrderBSGS for larger groups.
func Order(g *curve.Point) (*big.Int, error) {
	if g == nil {
		return nil, fmt.Errorf("order.Order: %w: nil point", curve.ErrInvalidOperand)
	}
	n := big.NewInt(1)
	for acc := g; !acc.IsIdentity(); n.Add(n, one) {
		next, err := acc.Add(g)
		if err != nil {
			return nil, fmt.Errorf("order.Order: %w", err)
		}
		acc = next
	}
	return n, nil
}

// OrderBSGS returns the smallest n ≥ 1 such that n⋅G is the identity, using
// baby-step giant-step in O(√B) additions and memory, where
//
//	B = p + 1 + 2⌈√p⌉
//
// bounds the size of the group of points (Hasse). For a composite modulus, the bound
// may not hold, in which case ErrOrderNotFound is returned.
func OrderBSGS(g *curve.Point) (*big.Int, error) {
	if g == nil {
		return nil, fmt.Errorf("order.OrderBSGS: %w: nil point", curve.ErrInvalidOperand)
	}
	p := g.Curve().P()
	sqrtP := new(big.Int).Sqrt(p)
	if new(big.Int).Mul(sqrtP, sqrtP).Cmp(p) != 0 {
		sqrtP.Add(sqrtP, one)
	}
	bound := new(big.Int).Add(p, one)
	bound.Add(bound, new(big.Int).Lsh(sqrtP, 1))

	n, err := searchBSGS(g, bound)
	if err != nil {
		return nil, fmt.Errorf("order.OrderBSGS: %w", err)
	}
	return n, nil
}

// searchBSGS returns the smallest n ∈ [1, bound] with n⋅G = O.
//
// With m = ⌈√bound⌉, the baby steps j⋅G for 0 ≤ j < m are stored, and n = i⋅m + j is found
// as the first giant step i for which j⋅G = −(i⋅m)⋅G.
func searchBSGS(g *curve.Point, bound *big.Int) (*big.Int, error) {
	m := new(big.Int).Sqrt(bound)
	if new(big.Int).Mul(m, m).Cmp(bound) != 0 {
		m.Add(m, one)
	}
	if !m.IsInt64() {
		return nil, fmt.Errorf("%w: bound %v is too large", ErrOrderNotFound, bound)
	}
	steps := m.Int64()

	// baby steps; a repetition means the order is below m
	baby := make(map[string]int64, steps)
	acc := g.Curve().Identity()
	for j := int64(0); j < steps; j++ {
		if j > 0 && acc.IsIdentity() {
			return big.NewInt(j), nil
		}
		baby[key(acc)] = j
		next, err := acc.Add(g)
		if err != nil {
			return nil, err
		}
		acc = next
	}

	// giant steps: compare −(i⋅m)⋅G with the table
	stride, err := g.ScalarMult(m)
	if err != nil {
		return nil, err
	}
	stride = stride.Negate()
	giant := stride
	for i := int64(1); i <= steps; i++ {
		if j, ok := baby[key(giant)]; ok {
			n := new(big.Int).Mul(big.NewInt(i), m)
			n.Add(n, big.NewInt(j))
			if n.Cmp(bound) > 0 {
				break
			}
			return n, nil
		}
		if giant, err = giant.Add(stride); err != nil {
			return nil, err
		}
	}
	return nil, ErrOrderNotFound
}

// Verify returns nil if n ≥ 1 and n⋅G is the identity.
//
// It does not check that n is the smallest such integer.
func Verify(g *curve.Point, n *big.Int) error {
	if g == nil || n == nil || n.Sign() <= 0 {
		return fmt.Errorf("order.Verify: %w: order must be positive", curve.ErrInvalidOperand)
	}
	r, err := g.ScalarMult(n)
	if err != nil {
		return fmt.Errorf("order.Verify: %w", err)
	}
	if !r.IsIdentity() {
		return fmt.Errorf("order.Verify: %w: n = %v", ErrWrongOrder, n)
	}
	return nil
}

func key(v *curve.Point) string {
	if v.IsIdentity() {
		return "O"
	}
	return v.X().Text(16) + ":" + v.Y().Text(16)
}
