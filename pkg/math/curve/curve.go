package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/taurusgroup/weierstrass/pkg/math/arith"
)

var (
	// ErrInvalidCurve is returned when the curve parameters do not define a nonsingular curve.
	ErrInvalidCurve = errors.New("curve: invalid curve")
	// ErrPointNotOnCurve is returned when coordinates do not satisfy the curve equation.
	ErrPointNotOnCurve = errors.New("curve: point is not on the curve")
	// ErrInvalidOperand is returned when an operation receives a value it is not defined for,
	// such as a negative scalar, a nil value, or a point from a different curve.
	ErrInvalidOperand = errors.New("curve: invalid operand")
	// ErrInternal signals that the group law reached a state which valid inputs on a
	// prime field never produce, typically a missing inverse modulo a composite p.
	ErrInternal = errors.New("curve: internal invariant violated")
)

var (
	two         = big.NewInt(2)
	three       = big.NewInt(3)
	four        = big.NewInt(4)
	eight       = big.NewInt(8)
	nine        = big.NewInt(9)
	twentySeven = big.NewInt(27)
)

// Curve is the Weierstrass curve
//
//	y² + a₁xy + a₃y = x³ + a₂x² + a₄x + a₆
//
// over the field of integers modulo p.
//
// A Curve is immutable after construction and may be shared between points and goroutines.
type Curve struct {
	name string
	p    *big.Int
	// coefficients, reduced into [0, p)
	a1, a2, a3, a4, a6 *big.Int
	// Δ (mod p)
	discriminant *big.Int
}

// NewCurve returns the curve y² + a₁xy + a₃y = x³ + a₂x² + a₄x + a₆ over ℤₚ.
//
// The coefficients are reduced modulo p. An error wrapping ErrInvalidCurve is returned
// if p < 2, a parameter is nil, or the discriminant vanishes modulo p.
//
// The primality of p is not checked.
func NewCurve(p, a1, a2, a3, a4, a6 *big.Int) (*Curve, error) {
	return NewNamedCurve("", p, a1, a2, a3, a4, a6)
}

// NewNamedCurve is NewCurve, with a name used when printing the curve.
func NewNamedCurve(name string, p, a1, a2, a3, a4, a6 *big.Int) (*Curve, error) {
	if p == nil || a1 == nil || a2 == nil || a3 == nil || a4 == nil || a6 == nil {
		return nil, fmt.Errorf("%w: nil parameter", ErrInvalidCurve)
	}
	if p.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: modulus %v is smaller than 2", ErrInvalidCurve, p)
	}
	c := &Curve{
		name: name,
		p:    new(big.Int).Set(p),
		a1:   arith.Mod(a1, p),
		a2:   arith.Mod(a2, p),
		a3:   arith.Mod(a3, p),
		a4:   arith.Mod(a4, p),
		a6:   arith.Mod(a6, p),
	}
	c.discriminant = c.computeDiscriminant()
	if c.discriminant.Sign() == 0 {
		return nil, fmt.Errorf("%w: singular curve %v", ErrInvalidCurve, c)
	}
	return c, nil
}

// MustCurve is NewCurve, but panics on error.
// It is intended for package level definitions of known curves.
func MustCurve(p, a1, a2, a3, a4, a6 *big.Int) *Curve {
	c, err := NewCurve(p, a1, a2, a3, a4, a6)
	if err != nil {
		panic(err)
	}
	return c
}

// computeDiscriminant returns Δ (mod p) from the b-invariants
//
//	b₂ = a₁² + 4a₂
//	b₄ = 2a₄ + a₁a₃
//	b₆ = a₃² + 4a₆
//	b₈ = a₁²a₆ + 4a₂a₆ − a₁a₃a₄ + a₂a₃² − a₄²
//	Δ  = −b₂²b₈ − 8b₄³ − 27b₆² + 9b₂b₄b₆
//
// For a₁ = a₂ = a₃ = 0 this is −16(4a₄³ + 27a₆²).
func (c *Curve) computeDiscriminant() *big.Int {
	p := c.p
	mul := func(xs ...*big.Int) *big.Int {
		r := big.NewInt(1)
		for _, x := range xs {
			r.Mul(r, x)
			r.Mod(r, p)
		}
		return r
	}

	b2 := new(big.Int).Add(mul(c.a1, c.a1), mul(four, c.a2))
	b4 := new(big.Int).Add(mul(two, c.a4), mul(c.a1, c.a3))
	b6 := new(big.Int).Add(mul(c.a3, c.a3), mul(four, c.a6))
	b8 := new(big.Int).Add(mul(c.a1, c.a1, c.a6), mul(four, c.a2, c.a6))
	b8.Sub(b8, mul(c.a1, c.a3, c.a4))
	b8.Add(b8, mul(c.a2, c.a3, c.a3))
	b8.Sub(b8, mul(c.a4, c.a4))
	b8.Mod(b8, p)

	d := new(big.Int).Neg(mul(b2, b2, b8))
	d.Sub(d, mul(eight, b4, b4, b4))
	d.Sub(d, mul(twentySeven, b6, b6))
	d.Add(d, mul(nine, b2, b4, b6))
	return d.Mod(d, p)
}

// IsOnCurve reports whether y² + a₁xy + a₃y ≡ x³ + a₂x² + a₄x + a₆ (mod p).
func (c *Curve) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	lhs, rhs := c.evaluate(x, y)
	return lhs.Cmp(rhs) == 0
}

// evaluate returns both sides of the curve equation at (x, y), reduced modulo p.
func (c *Curve) evaluate(x, y *big.Int) (lhs, rhs *big.Int) {
	p := c.p

	// y² + a₁xy + a₃y = y(y + a₁x + a₃)
	lhs = new(big.Int).Mul(c.a1, x)
	lhs.Add(lhs, y)
	lhs.Add(lhs, c.a3)
	lhs.Mul(lhs, y)
	lhs.Mod(lhs, p)

	// x³ + a₂x² + a₄x + a₆ = ((x + a₂)x + a₄)x + a₆
	rhs = new(big.Int).Add(x, c.a2)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, c.a4)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, c.a6)
	rhs.Mod(rhs, p)
	return lhs, rhs
}

// Contains reports whether v is an element of the group of points of c.
//
// The identity is contained in every curve. An affine point is contained if it belongs
// to a curve equal to c and satisfies the curve equation.
func (c *Curve) Contains(v *Point) bool {
	if v == nil || v.curve == nil || !c.Equal(v.curve) {
		return false
	}
	if v.infinity {
		return true
	}
	return c.IsOnCurve(v.x, v.y)
}

// Equal returns true if c and other have the same modulus and coefficients.
// The name is ignored.
func (c *Curve) Equal(other *Curve) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.p.Cmp(other.p) == 0 &&
		c.a1.Cmp(other.a1) == 0 &&
		c.a2.Cmp(other.a2) == 0 &&
		c.a3.Cmp(other.a3) == 0 &&
		c.a4.Cmp(other.a4) == 0 &&
		c.a6.Cmp(other.a6) == 0
}

// Identity returns the neutral element of the group of points of c.
func (c *Curve) Identity() *Point {
	return &Point{curve: c, infinity: true}
}

// NewPoint is equivalent to NewPoint(c, x, y).
func (c *Curve) NewPoint(x, y *big.Int) (*Point, error) {
	return NewPoint(c, x, y)
}

// Name returns the name given at construction, which may be empty.
func (c *Curve) Name() string { return c.name }

// P returns a copy of the field modulus.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// A1 returns a copy of the coefficient a₁.
func (c *Curve) A1() *big.Int { return new(big.Int).Set(c.a1) }

// A2 returns a copy of the coefficient a₂.
func (c *Curve) A2() *big.Int { return new(big.Int).Set(c.a2) }

// A3 returns a copy of the coefficient a₃.
func (c *Curve) A3() *big.Int { return new(big.Int).Set(c.a3) }

// A4 returns a copy of the coefficient a₄.
func (c *Curve) A4() *big.Int { return new(big.Int).Set(c.a4) }

// A6 returns a copy of the coefficient a₆.
func (c *Curve) A6() *big.Int { return new(big.Int).Set(c.a6) }

// Discriminant returns a copy of Δ (mod p), which is never zero.
func (c *Curve) Discriminant() *big.Int { return new(big.Int).Set(c.discriminant) }

// String implements fmt.Stringer.
func (c *Curve) String() string {
	if c == nil {
		return "nil"
	}
	s := fmt.Sprintf("y^2 + %vxy + %vy = x^3 + %vx^2 + %vx + %v (mod %v)", c.a1, c.a3, c.a2, c.a4, c.a6, c.p)
	if c.name != "" {
		s = c.name + ": " + s
	}
	return s
}
