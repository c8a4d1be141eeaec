package curve

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/taurusgroup/weierstrass/internal/params"
)

// Preset is a curve together with a generator of known order.
type Preset struct {
	Curve     *Curve
	Generator *Point
	// Order is the order of Generator.
	Order *big.Int
}

var (
	referencePreset = newReferencePreset()
	secp256k1Preset = newSecp256k1Preset()
)

// Reference returns the curve y² = x³ + 31988x + 1000 over ℤ₃₁₉₉₁ with the generator (0, 5585)
// of order 32089.
func Reference() *Preset {
	return referencePreset.clone()
}

// Secp256k1 returns the curve y² = x³ + 7 used by Bitcoin, with its standard base point.
//
// The parameters are taken from github.com/decred/dcrd/dcrec/secp256k1/v4.
func Secp256k1() *Preset {
	return secp256k1Preset.clone()
}

func newReferencePreset() *Preset {
	c, err := NewNamedCurve("reference",
		big.NewInt(params.ReferenceP),
		big.NewInt(params.ReferenceA1),
		big.NewInt(params.ReferenceA2),
		big.NewInt(params.ReferenceA3),
		big.NewInt(params.ReferenceA4),
		big.NewInt(params.ReferenceA6),
	)
	if err != nil {
		panic(err)
	}
	return &Preset{
		Curve:     c,
		Generator: MustPoint(c, big.NewInt(params.ReferenceGx), big.NewInt(params.ReferenceGy)),
		Order:     big.NewInt(params.ReferenceOrder),
	}
}

func newSecp256k1Preset() *Preset {
	p := secp256k1.S256().Params()
	zero := new(big.Int)
	c, err := NewNamedCurve("secp256k1", p.P, zero, zero, zero, zero, p.B)
	if err != nil {
		panic(err)
	}
	return &Preset{
		Curve:     c,
		Generator: MustPoint(c, p.Gx, p.Gy),
		Order:     new(big.Int).Set(p.N),
	}
}

// clone returns a copy sharing the immutable curve and generator, so that callers
// may not modify the order held by the package.
func (p *Preset) clone() *Preset {
	return &Preset{
		Curve:     p.Curve,
		Generator: p.Generator,
		Order:     new(big.Int).Set(p.Order),
	}
}
