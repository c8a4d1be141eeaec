package curve

import (
	"fmt"
	"math/big"

	"github.com/taurusgroup/weierstrass/pkg/math/arith"
)

// Point is an element of the group of points of a Curve.
//
// It is either the identity (the point at infinity), or an affine point (x, y) with
// coordinates in [0, p) satisfying the curve equation. The identity is a separate
// case and is never represented by coordinates, so (0, 0) is an ordinary affine
// point whenever a₆ ≡ 0.
//
// Points are immutable, every operation returns a new Point.
type Point struct {
	curve    *Curve
	x, y     *big.Int
	infinity bool
}

// NewPoint returns the affine point (x, y) on c.
//
// An error wrapping ErrPointNotOnCurve is returned if x or y is outside of [0, p), or if
// (x, y) does not satisfy the curve equation. The identity is obtained with c.Identity().
func NewPoint(c *Curve, x, y *big.Int) (*Point, error) {
	if c == nil || x == nil || y == nil {
		return nil, fmt.Errorf("curve.NewPoint: %w: nil parameter", ErrInvalidOperand)
	}
	if x.Sign() < 0 || x.Cmp(c.p) >= 0 || y.Sign() < 0 || y.Cmp(c.p) >= 0 {
		return nil, fmt.Errorf("curve.NewPoint: %w: (%v, %v) is not reduced modulo %v", ErrPointNotOnCurve, x, y, c.p)
	}
	if !c.IsOnCurve(x, y) {
		return nil, fmt.Errorf("curve.NewPoint: %w: (%v, %v)", ErrPointNotOnCurve, x, y)
	}
	return &Point{
		curve: c,
		x:     new(big.Int).Set(x),
		y:     new(big.Int).Set(y),
	}, nil
}

// MustPoint is NewPoint, but panics on error.
func MustPoint(c *Curve, x, y *big.Int) *Point {
	v, err := NewPoint(c, x, y)
	if err != nil {
		panic(err)
	}
	return v
}

// newAffine builds a point from coordinates computed by the group law, which are
// already reduced and on the curve.
func newAffine(c *Curve, x, y *big.Int) *Point {
	return &Point{curve: c, x: x, y: y}
}

// Curve returns the curve v belongs to.
func (v *Point) Curve() *Curve {
	return v.curve
}

// IsIdentity returns true if v is the point at infinity.
func (v *Point) IsIdentity() bool {
	return v.infinity
}

// X returns a copy of the x coordinate, or nil for the identity.
func (v *Point) X() *big.Int {
	if v.infinity {
		return nil
	}
	return new(big.Int).Set(v.x)
}

// Y returns a copy of the y coordinate, or nil for the identity.
func (v *Point) Y() *big.Int {
	if v.infinity {
		return nil
	}
	return new(big.Int).Set(v.y)
}

// Equal returns true if v and u lie on equal curves and are the same point.
func (v *Point) Equal(u *Point) bool {
	if v == nil || u == nil {
		return v == u
	}
	if !v.curve.Equal(u.curve) {
		return false
	}
	if v.infinity || u.infinity {
		return v.infinity == u.infinity
	}
	return v.x.Cmp(u.x) == 0 && v.y.Cmp(u.y) == 0
}

// Negate returns -v.
//
// For an affine point this is (x, −y − a₁x − a₃), which reduces to (x, p − y) when a₁ = a₃ = 0.
// The identity is its own inverse.
func (v *Point) Negate() *Point {
	if v.infinity {
		return v.curve.Identity()
	}
	c := v.curve
	y := new(big.Int).Mul(c.a1, v.x)
	y.Add(y, c.a3)
	y.Add(y, v.y)
	y.Neg(y)
	y.Mod(y, c.p)
	return newAffine(c, new(big.Int).Set(v.x), y)
}

// Add returns v + u.
//
// An error wrapping ErrInvalidOperand is returned if u is nil or lies on another curve.
// An error wrapping ErrInternal (and the underlying *arith.NoInverseError) is returned
// if a slope denominator is not invertible, which only happens for a composite modulus.
func (v *Point) Add(u *Point) (*Point, error) {
	if u == nil {
		return nil, fmt.Errorf("curve.Point.Add: %w: nil point", ErrInvalidOperand)
	}
	if !v.curve.Equal(u.curve) {
		return nil, fmt.Errorf("curve.Point.Add: %w: points lie on different curves", ErrInvalidOperand)
	}

	if v.infinity {
		return u, nil
	}
	if u.infinity {
		return v, nil
	}
	if v.Equal(u.Negate()) {
		return v.curve.Identity(), nil
	}

	var (
		c              = v.curve
		p              = c.p
		x1, y1, x2, y2 = v.x, v.y, u.x, u.y
		lambda, nu     *big.Int
		err            error
	)
	if v.Equal(u) {
		lambda, nu, err = c.tangent(x1, y1)
	} else {
		lambda, nu, err = c.chord(x1, y1, x2, y2)
	}
	if err != nil {
		return nil, fmt.Errorf("curve.Point.Add: %w: %w", ErrInternal, err)
	}

	// x₃ = λ² + a₁λ − a₂ − x₁ − x₂
	x3 := new(big.Int).Add(lambda, c.a1)
	x3.Mul(x3, lambda)
	x3.Sub(x3, c.a2)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, p)

	// y₃ = −(λ + a₁)x₃ − ν − a₃
	y3 := new(big.Int).Add(lambda, c.a1)
	y3.Mul(y3, x3)
	y3.Add(y3, nu)
	y3.Add(y3, c.a3)
	y3.Neg(y3)
	y3.Mod(y3, p)

	return newAffine(c, x3, y3), nil
}

// chord returns the slope λ and intercept ν of the line through two distinct points
// with x₁ ≠ x₂:
//
//	λ = (y₂ − y₁) / (x₂ − x₁)
//	ν = (y₁x₂ − y₂x₁) / (x₂ − x₁)
func (c *Curve) chord(x1, y1, x2, y2 *big.Int) (lambda, nu *big.Int, err error) {
	inv, err := arith.ModInverse(new(big.Int).Sub(x2, x1), c.p)
	if err != nil {
		return nil, nil, err
	}

	lambda = new(big.Int).Sub(y2, y1)
	lambda.Mul(lambda, inv)
	lambda.Mod(lambda, c.p)

	nu = new(big.Int).Mul(y1, x2)
	nu.Sub(nu, new(big.Int).Mul(y2, x1))
	nu.Mul(nu, inv)
	nu.Mod(nu, c.p)
	return lambda, nu, nil
}

// tangent returns the slope λ and intercept ν of the tangent line at (x₁, y₁):
//
//	λ = (3x₁² + 2a₂x₁ + a₄ − a₁y₁) / (2y₁ + a₁x₁ + a₃)
//	ν = (−x₁³ + a₄x₁ + 2a₆ − a₃y₁) / (2y₁ + a₁x₁ + a₃)
func (c *Curve) tangent(x1, y1 *big.Int) (lambda, nu *big.Int, err error) {
	denominator := new(big.Int).Mul(two, y1)
	denominator.Add(denominator, new(big.Int).Mul(c.a1, x1))
	denominator.Add(denominator, c.a3)
	inv, err := arith.ModInverse(denominator, c.p)
	if err != nil {
		return nil, nil, err
	}

	x1Squared := new(big.Int).Mul(x1, x1)

	lambda = new(big.Int).Mul(three, x1Squared)
	lambda.Add(lambda, new(big.Int).Mul(two, new(big.Int).Mul(c.a2, x1)))
	lambda.Add(lambda, c.a4)
	lambda.Sub(lambda, new(big.Int).Mul(c.a1, y1))
	lambda.Mul(lambda, inv)
	lambda.Mod(lambda, c.p)

	nu = new(big.Int).Mul(x1Squared, x1)
	nu.Neg(nu)
	nu.Add(nu, new(big.Int).Mul(c.a4, x1))
	nu.Add(nu, new(big.Int).Mul(two, c.a6))
	nu.Sub(nu, new(big.Int).Mul(c.a3, y1))
	nu.Mul(nu, inv)
	nu.Mod(nu, c.p)
	return lambda, nu, nil
}

// Sub returns v − u.
func (v *Point) Sub(u *Point) (*Point, error) {
	if u == nil {
		return nil, fmt.Errorf("curve.Point.Sub: %w: nil point", ErrInvalidOperand)
	}
	return v.Add(u.Negate())
}

// Double returns v + v.
func (v *Point) Double() (*Point, error) {
	return v.Add(v)
}

// String implements fmt.Stringer.
func (v *Point) String() string {
	if v == nil {
		return "nil"
	}
	if v.infinity {
		return "Point{Identity}"
	}
	return fmt.Sprintf("(%v, %v)", v.x, v.y)
}
