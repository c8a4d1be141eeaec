package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/taurusgroup/weierstrass/internal/params"
	"github.com/taurusgroup/weierstrass/pkg/math/curve"
)

var errIncompleteConfig = errors.New("config: missing value")

// Config is the content of the TOML file given with --config.
//
// Integers are written either as TOML integers or as strings, in decimal or with a 0x prefix,
// so that 256 bit parameters fit. Absent keys keep the values of DefaultConfig.
type Config struct {
	Curve     CurveConfig     `toml:"curve"`
	Generator GeneratorConfig `toml:"generator"`
	ElGamal   ElGamalConfig   `toml:"elgamal"`
}

type CurveConfig struct {
	Name string   `toml:"name"`
	P    *big.Int `toml:"p"`
	A1   *big.Int `toml:"a1"`
	A2   *big.Int `toml:"a2"`
	A3   *big.Int `toml:"a3"`
	A4   *big.Int `toml:"a4"`
	A6   *big.Int `toml:"a6"`
}

type GeneratorConfig struct {
	X *big.Int `toml:"x"`
	Y *big.Int `toml:"y"`
	// Order of the generator. When absent it is computed by repeated addition.
	Order *big.Int `toml:"order"`
}

type ElGamalConfig struct {
	Secret  *big.Int `toml:"secret"`
	Message *big.Int `toml:"message"`
	// RecipientX, RecipientY is the public key messages are encrypted to.
	// When absent, the public key of Secret is used.
	RecipientX *big.Int `toml:"recipient_x"`
	RecipientY *big.Int `toml:"recipient_y"`
}

// DefaultConfig returns the reference curve and the values of the demonstration.
func DefaultConfig() *Config {
	return &Config{
		Curve: CurveConfig{
			Name: "reference",
			P:    big.NewInt(params.ReferenceP),
			A1:   big.NewInt(params.ReferenceA1),
			A2:   big.NewInt(params.ReferenceA2),
			A3:   big.NewInt(params.ReferenceA3),
			A4:   big.NewInt(params.ReferenceA4),
			A6:   big.NewInt(params.ReferenceA6),
		},
		Generator: GeneratorConfig{
			X:     big.NewInt(params.ReferenceGx),
			Y:     big.NewInt(params.ReferenceGy),
			Order: big.NewInt(params.ReferenceOrder),
		},
		ElGamal: ElGamalConfig{
			Secret:  big.NewInt(params.DemoSecret),
			Message: big.NewInt(params.DemoMessage),
		},
	}
}

// LoadConfig reads the file at path over DefaultConfig. An empty path returns the defaults.
//
// Changing the curve without giving the generator order drops the default order,
// since it only holds for the reference generator.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("generator", "order") && (md.IsDefined("curve") || md.IsDefined("generator")) {
		cfg.Generator.Order = nil
	}
	return cfg, nil
}

// Build returns the configured curve and generator.
func (cfg *Config) Build() (*curve.Curve, *curve.Point, error) {
	cc := cfg.Curve
	c, err := curve.NewNamedCurve(cc.Name, cc.P, cc.A1, cc.A2, cc.A3, cc.A4, cc.A6)
	if err != nil {
		return nil, nil, fmt.Errorf("config: curve: %w", err)
	}
	if cfg.Generator.X == nil || cfg.Generator.Y == nil {
		return nil, nil, fmt.Errorf("%w: generator coordinates", errIncompleteConfig)
	}
	g, err := c.NewPoint(cfg.Generator.X, cfg.Generator.Y)
	if err != nil {
		return nil, nil, fmt.Errorf("config: generator: %w", err)
	}
	return c, g, nil
}

// Recipient returns the configured public key on c, or nil if none is set.
func (cfg *Config) Recipient(c *curve.Curve) (*curve.Point, error) {
	x, y := cfg.ElGamal.RecipientX, cfg.ElGamal.RecipientY
	if x == nil && y == nil {
		return nil, nil
	}
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: both recipient_x and recipient_y must be set", errIncompleteConfig)
	}
	v, err := c.NewPoint(x, y)
	if err != nil {
		return nil, fmt.Errorf("config: recipient: %w", err)
	}
	return v, nil
}

func parseInt(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}
