package order

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/weierstrass/pkg/math/curve"
)

func generalCurve(t testing.TB) *curve.Curve {
	c, err := curve.NewCurve(big.NewInt(97), big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(5))
	require.NoError(t, err)
	return c
}

func TestOrder_Reference(t *testing.T) {
	ref := curve.Reference()
	n, err := Order(ref.Generator)
	require.NoError(t, err)
	assert.EqualValues(t, 32089, n.Int64())

	fast, err := OrderBSGS(ref.Generator)
	require.NoError(t, err)
	assert.Equal(t, 0, n.Cmp(fast))

	assert.NoError(t, Verify(ref.Generator, n))
}

func TestOrder_Small(t *testing.T) {
	c := generalCurve(t)
	tests := []struct {
		x, y  int64
		order int64
	}{
		{1, 2, 110},
		{1, 91, 110},
		{4, 17, 55},
	}
	for _, tt := range tests {
		v, err := curve.NewPoint(c, big.NewInt(tt.x), big.NewInt(tt.y))
		require.NoError(t, err)

		n, err := Order(v)
		require.NoError(t, err)
		assert.EqualValues(t, tt.order, n.Int64(), "order of %v", v)

		fast, err := OrderBSGS(v)
		require.NoError(t, err)
		assert.EqualValues(t, tt.order, fast.Int64(), "BSGS order of %v", v)
	}
}

func TestOrder_MatchesBSGSForAllPoints(t *testing.T) {
	c := generalCurve(t)
	for x := int64(0); x < 97; x++ {
		for y := int64(0); y < 97; y++ {
			v, err := curve.NewPoint(c, big.NewInt(x), big.NewInt(y))
			if err != nil {
				continue
			}
			n, err := Order(v)
			require.NoError(t, err)
			fast, err := OrderBSGS(v)
			require.NoError(t, err)
			assert.Equal(t, 0, n.Cmp(fast), "%v: %v != %v", v, n, fast)
			// the order divides the size of the group
			assert.Zero(t, 110%n.Int64())
		}
	}
}

func TestOrder_TwoTorsion(t *testing.T) {
	c, err := curve.NewCurve(big.NewInt(97), big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(1), big.NewInt(0))
	require.NoError(t, err)
	origin, err := curve.NewPoint(c, big.NewInt(0), big.NewInt(0))
	require.NoError(t, err)

	n, err := Order(origin)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n.Int64())

	fast, err := OrderBSGS(origin)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fast.Int64())
}

func TestOrder_Identity(t *testing.T) {
	o := curve.Reference().Curve.Identity()
	n, err := Order(o)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n.Int64())

	fast, err := OrderBSGS(o)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fast.Int64())
}

func TestOrder_Nil(t *testing.T) {
	_, err := Order(nil)
	assert.ErrorIs(t, err, curve.ErrInvalidOperand)
	_, err = OrderBSGS(nil)
	assert.ErrorIs(t, err, curve.ErrInvalidOperand)
}

func TestEnumerate(t *testing.T) {
	ref := curve.Reference()
	g := ref.Generator

	points, err := Enumerate(g, 10)
	require.NoError(t, err)
	require.Len(t, points, 10)
	for i, v := range points {
		want, err := g.ScalarMult(big.NewInt(int64(i + 1)))
		require.NoError(t, err)
		assert.True(t, v.Equal(want), "%d⋅G", i+1)
	}

	empty, err := Enumerate(g, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = Enumerate(g, -1)
	assert.ErrorIs(t, err, curve.ErrInvalidOperand)
}

func TestEnumerate_DistinctEstimatesOrder(t *testing.T) {
	ref := curve.Reference()
	points, err := Enumerate(ref.Generator, 32089+100)
	require.NoError(t, err)
	assert.Equal(t, 32089, Distinct(points))
	assert.True(t, points[32088].IsIdentity())
	assert.True(t, points[32089].Equal(ref.Generator))

	assert.Equal(t, 500, Distinct(points[:500]))
	assert.Equal(t, 0, Distinct(nil))
}

func TestVerify(t *testing.T) {
	ref := curve.Reference()
	assert.NoError(t, Verify(ref.Generator, big.NewInt(32089)))
	assert.NoError(t, Verify(ref.Generator, big.NewInt(2*32089)))
	assert.ErrorIs(t, Verify(ref.Generator, big.NewInt(32088)), ErrWrongOrder)
	assert.ErrorIs(t, Verify(ref.Generator, big.NewInt(0)), curve.ErrInvalidOperand)
	assert.ErrorIs(t, Verify(ref.Generator, nil), curve.ErrInvalidOperand)

	secp := curve.Secp256k1()
	assert.NoError(t, Verify(secp.Generator, secp.Order))
}

func BenchmarkOrder(b *testing.B) {
	g := curve.Reference().Generator
	for i := 0; i < b.N; i++ {
		_, _ = Order(g)
	}
}

func BenchmarkOrderBSGS(b *testing.B) {
	g := curve.Reference().Generator
	for i := 0; i < b.N; i++ {
		_, _ = OrderBSGS(g)
	}
}
