package curve

import (
	"context"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/weierstrass/pkg/pool"
)

func mustMult(t testing.TB, v *Point, n int64) *Point {
	r, err := v.ScalarMult(big.NewInt(n))
	require.NoError(t, err, "%d⋅%v", n, v)
	return r
}

func TestPoint_ScalarMultReferenceVectors(t *testing.T) {
	ref := Reference()
	c, g := ref.Curve, ref.Generator
	tests := []struct {
		n    int64
		x, y int64
	}{
		{1, 0, 5585},
		{2, 8, 19435},
		{3, 24055, 9476},
		{10, 5158, 9623},
		{100, 23507, 31484},
		{523, 9767, 11500},
		{5103, 12507, 2027},
	}
	for _, tt := range tests {
		want := MustPoint(c, big.NewInt(tt.x), big.NewInt(tt.y))
		assert.True(t, mustMult(t, g, tt.n).Equal(want), "%d⋅G", tt.n)
	}
}

func TestPoint_ScalarMultMatchesNaive(t *testing.T) {
	for _, v := range []*Point{Reference().Generator, MustPoint(general(t), big.NewInt(1), big.NewInt(2))} {
		for n := int64(0); n <= 300; n++ {
			fast, err := v.ScalarMult(big.NewInt(n))
			require.NoError(t, err)
			naive, err := v.ScalarMultNaive(big.NewInt(n))
			require.NoError(t, err)
			assert.True(t, fast.Equal(naive), "%d⋅%v: %v != %v", n, v, fast, naive)
		}
	}
}

func TestPoint_ScalarMultZero(t *testing.T) {
	g := Reference().Generator
	assert.True(t, mustMult(t, g, 0).IsIdentity())
	r, err := g.ScalarMultNaive(new(big.Int))
	require.NoError(t, err)
	assert.True(t, r.IsIdentity())
	assert.True(t, mustMult(t, g.Curve().Identity(), 12345).IsIdentity())
}

func TestPoint_ScalarMultInvalid(t *testing.T) {
	g := Reference().Generator
	for _, n := range []*big.Int{nil, big.NewInt(-1), big.NewInt(-523)} {
		_, err := g.ScalarMult(n)
		assert.ErrorIs(t, err, ErrInvalidOperand)
		_, err = g.ScalarMultNaive(n)
		assert.ErrorIs(t, err, ErrInvalidOperand)
	}
}

func TestPoint_ScalarMultOrder(t *testing.T) {
	ref := Reference()
	assert.True(t, mustMult(t, ref.Generator, ref.Order.Int64()).IsIdentity())
	assert.True(t, mustMult(t, ref.Generator, ref.Order.Int64()+1).Equal(ref.Generator))
	assert.False(t, mustMult(t, ref.Generator, ref.Order.Int64()-1).IsIdentity())

	v := MustPoint(general(t), big.NewInt(1), big.NewInt(2))
	assert.True(t, mustMult(t, v, 110).IsIdentity())
	assert.False(t, mustMult(t, v, 55).IsIdentity())
	assert.False(t, mustMult(t, v, 22).IsIdentity())
}

func TestPoint_ScalarMultDistributes(t *testing.T) {
	g := Reference().Generator
	scalars := []int64{0, 1, 2, 17, 523, 5103, 32088, 32089, 40000}
	for _, m := range scalars {
		for _, n := range scalars {
			lhs := mustMult(t, g, m+n)
			rhs := mustAdd(t, mustMult(t, g, m), mustMult(t, g, n))
			assert.True(t, lhs.Equal(rhs), "(%d + %d)⋅G", m, n)

			// m⋅(n⋅G) = (mn)⋅G
			assert.True(t, mustMult(t, mustMult(t, g, n), m).Equal(mustMult(t, g, m*n)))
		}
	}
}

func TestSecp256k1_MatchesDecred(t *testing.T) {
	preset := Secp256k1()
	params := secp256k1.S256().Params()
	require.True(t, preset.Curve.Contains(preset.Generator))
	assert.Equal(t, 0, preset.Order.Cmp(params.N))

	scalars := []*big.Int{
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(523),
		new(big.Int).Sub(params.N, big.NewInt(1)),
		new(big.Int).Lsh(big.NewInt(1), 200),
	}
	scalars[4].Sub(scalars[4], big.NewInt(12345))
	for _, k := range scalars {
		wantX, wantY := secp256k1.S256().ScalarBaseMult(k.Bytes())
		got, err := preset.Generator.ScalarMult(k)
		require.NoError(t, err)
		assert.Equal(t, 0, wantX.Cmp(got.X()), "x of %v⋅G", k)
		assert.Equal(t, 0, wantY.Cmp(got.Y()), "y of %v⋅G", k)
	}

	// n⋅G = O
	o, err := preset.Generator.ScalarMult(preset.Order)
	require.NoError(t, err)
	assert.True(t, o.IsIdentity())
}

func TestSecp256k1_AddMatchesDecred(t *testing.T) {
	preset := Secp256k1()
	kc := secp256k1.S256()
	g := preset.Generator

	ax, ay := kc.ScalarBaseMult(big.NewInt(1234567).Bytes())
	bx, by := kc.ScalarBaseMult(big.NewInt(7654321).Bytes())
	wantX, wantY := kc.Add(ax, ay, bx, by)

	a, err := g.ScalarMult(big.NewInt(1234567))
	require.NoError(t, err)
	b, err := g.ScalarMult(big.NewInt(7654321))
	require.NoError(t, err)
	sum := mustAdd(t, a, b)
	assert.Equal(t, 0, wantX.Cmp(sum.X()))
	assert.Equal(t, 0, wantY.Cmp(sum.Y()))
}

func TestPresets_AreIndependentCopies(t *testing.T) {
	a := Reference()
	a.Order.SetInt64(1)
	assert.EqualValues(t, 32089, Reference().Order.Int64())
}

func TestPoint_ScalarMultAll(t *testing.T) {
	g := Reference().Generator
	scalars := make([]*big.Int, 40)
	for i := range scalars {
		scalars[i] = big.NewInt(int64(i * 811))
	}
	for _, pl := range []*pool.Pool{nil, pool.NewPool(4)} {
		results, err := g.ScalarMultAll(context.Background(), pl, scalars)
		require.NoError(t, err)
		require.Len(t, results, len(scalars))
		for i, r := range results {
			assert.True(t, r.Equal(mustMult(t, g, int64(i*811))))
		}
	}

	scalars[7] = big.NewInt(-7)
	_, err := g.ScalarMultAll(context.Background(), pool.NewPool(2), scalars)
	assert.ErrorIs(t, err, ErrInvalidOperand)
}

func BenchmarkPoint_ScalarMult(b *testing.B) {
	g := Reference().Generator
	n := big.NewInt(32088)
	for i := 0; i < b.N; i++ {
		_, _ = g.ScalarMult(n)
	}
}

func BenchmarkPoint_ScalarMultNaive(b *testing.B) {
	g := Reference().Generator
	n := big.NewInt(32088)
	for i := 0; i < b.N; i++ {
		_, _ = g.ScalarMultNaive(n)
	}
}
