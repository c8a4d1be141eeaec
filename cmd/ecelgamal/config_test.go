package main

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/weierstrass/internal/params"
	"github.com/taurusgroup/weierstrass/pkg/math/curve"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecelgamal.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Default(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	c, g, err := cfg.Build()
	require.NoError(t, err)
	ref := curve.Reference()
	assert.True(t, c.Equal(ref.Curve))
	assert.True(t, g.Equal(ref.Generator))
	assert.EqualValues(t, params.ReferenceOrder, cfg.Generator.Order.Int64())
	assert.EqualValues(t, params.DemoSecret, cfg.ElGamal.Secret.Int64())

	recipient, err := cfg.Recipient(c)
	require.NoError(t, err)
	assert.Nil(t, recipient)
}

func TestLoadConfig_Secp256k1(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "secp256k1.toml"))
	require.NoError(t, err)

	c, g, err := cfg.Build()
	require.NoError(t, err)
	preset := curve.Secp256k1()
	assert.True(t, c.Equal(preset.Curve))
	assert.Equal(t, "secp256k1", c.Name())
	assert.True(t, g.Equal(preset.Generator))
	assert.Equal(t, 0, cfg.Generator.Order.Cmp(preset.Order))
	assert.EqualValues(t, 10000, cfg.ElGamal.Message.Int64())
}

func TestLoadConfig_DropsReferenceOrder(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "general.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Generator.Order)

	c, g, err := cfg.Build()
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.A1().Int64())
	assert.EqualValues(t, 2, g.Y().Int64())
}

func TestLoadConfig_Partial(t *testing.T) {
	path := writeConfig(t, `
[elgamal]
message = "0x2a"
recipient_x = 9767
recipient_y = "11500"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.EqualValues(t, 42, cfg.ElGamal.Message.Int64())
	assert.EqualValues(t, params.DemoSecret, cfg.ElGamal.Secret.Int64())
	assert.EqualValues(t, params.ReferenceOrder, cfg.Generator.Order.Int64(), "order kept when the curve is unchanged")

	c, _, err := cfg.Build()
	require.NoError(t, err)
	recipient, err := cfg.Recipient(c)
	require.NoError(t, err)
	assert.True(t, recipient.Equal(curve.MustPoint(c, big.NewInt(9767), big.NewInt(11500))))
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[curve]\nq = 7\n"},
		{"unknown table", "[server]\nport = 1\n"},
		{"not an integer", "[curve]\np = \"ninety seven\"\n"},
		{"malformed", "[curve\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_BuildErrors(t *testing.T) {
	singular := DefaultConfig()
	singular.Curve.A4 = big.NewInt(0)
	singular.Curve.A6 = big.NewInt(0)
	_, _, err := singular.Build()
	assert.ErrorIs(t, err, curve.ErrInvalidCurve)

	offCurve := DefaultConfig()
	offCurve.Generator.Y = big.NewInt(1)
	_, _, err = offCurve.Build()
	assert.ErrorIs(t, err, curve.ErrPointNotOnCurve)

	missing := DefaultConfig()
	missing.Generator.X = nil
	_, _, err = missing.Build()
	assert.ErrorIs(t, err, errIncompleteConfig)
}

func TestConfig_RecipientErrors(t *testing.T) {
	cfg := DefaultConfig()
	c, _, err := cfg.Build()
	require.NoError(t, err)

	cfg.ElGamal.RecipientX = big.NewInt(9767)
	_, err = cfg.Recipient(c)
	assert.ErrorIs(t, err, errIncompleteConfig)

	cfg.ElGamal.RecipientY = big.NewInt(1)
	_, err = cfg.Recipient(c)
	assert.ErrorIs(t, err, curve.ErrPointNotOnCurve)
}

func TestParseInt(t *testing.T) {
	for s, want := range map[string]int64{"523": 523, "0x20b": 523, "0": 0, "-5": -5} {
		n, err := parseInt(s)
		require.NoError(t, err, s)
		assert.EqualValues(t, want, n.Int64(), s)
	}
	_, err := parseInt("k")
	assert.Error(t, err)
}
