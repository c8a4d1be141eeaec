package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/taurusgroup/weierstrass/internal/hash"
	"github.com/taurusgroup/weierstrass/internal/params"
	"github.com/taurusgroup/weierstrass/pkg/elgamal"
	"github.com/taurusgroup/weierstrass/pkg/math/curve"
	"github.com/taurusgroup/weierstrass/pkg/math/order"
	"github.com/taurusgroup/weierstrass/pkg/math/sample"
	"github.com/taurusgroup/weierstrass/pkg/pool"
	"github.com/urfave/cli"
)

const (
	defaultPointCount = params.DemoMultiples

	methodBrute = "brute"
	methodBSGS  = "bsgs"

	// maxSearchBits is the largest modulus for which the order command searches for the
	// order when one is configured. Above it, the configured order is only verified.
	maxSearchBits = 48
)

var (
	errRoundTrip = errors.New("roundtrip: decrypted message differs")
	errSelfTest  = errors.New("selftest: group law violated")
)

func (e *env) points(c *cli.Context) error {
	count := c.Int("count")
	crv, g, err := e.cfg.Build()
	if err != nil {
		return err
	}
	e.log.Info().Stringer("curve", crv).Stringer("generator", g).Int("count", count).Msg("enumerating multiples")

	start := time.Now()
	points, err := order.Enumerate(g, count)
	if err != nil {
		return err
	}
	w := c.App.Writer
	for i, v := range points {
		fmt.Fprintf(w, "%d: %v\n", i+1, v)
	}
	fmt.Fprintf(w, "distinct points: %d\n", order.Distinct(points))
	e.log.Debug().Dur("t", time.Since(start)).Msg("enumerated multiples")
	return nil
}

func (e *env) order(c *cli.Context) error {
	crv, g, err := e.cfg.Build()
	if err != nil {
		return err
	}
	configured := e.cfg.Generator.Order
	method := c.String("method")
	log := e.log.With().Str("method", method).Stringer("generator", g).Logger()

	if configured != nil && crv.P().BitLen() > maxSearchBits {
		log.Info().Msg("modulus too large to search, verifying the configured order")
		if err = order.Verify(g, configured); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "order: %v\n", configured)
		return nil
	}

	start := time.Now()
	var n *big.Int
	switch method {
	case methodBrute:
		n, err = order.Order(g)
	case methodBSGS:
		n, err = order.OrderBSGS(g)
	default:
		return fmt.Errorf("order: unknown method %q, expected %s or %s", method, methodBrute, methodBSGS)
	}
	if err != nil {
		return err
	}
	log.Debug().Dur("t", time.Since(start)).Msg("found order")
	if configured != nil && configured.Cmp(n) != 0 {
		log.Warn().Stringer("configured", configured).Stringer("found", n).Msg("configured order differs")
	}
	fmt.Fprintf(c.App.Writer, "order: %v\n", n)
	return nil
}

// scheme sets up ElGamal with the configured generator and secret.
func (e *env) scheme() (*elgamal.Scheme, error) {
	crv, g, err := e.cfg.Build()
	if err != nil {
		return nil, err
	}
	secret := e.cfg.ElGamal.Secret
	if secret == nil {
		return nil, fmt.Errorf("%w: elgamal secret", errIncompleteConfig)
	}
	if n := e.cfg.Generator.Order; n != nil {
		return elgamal.SetupWithOrder(crv, g, n, secret)
	}
	e.log.Debug().Msg("no generator order configured, computing it")
	return elgamal.Setup(crv, g, secret)
}

func (e *env) roundtrip(c *cli.Context) error {
	s, err := e.scheme()
	if err != nil {
		return err
	}
	message := e.cfg.ElGamal.Message
	if message == nil {
		return fmt.Errorf("%w: elgamal message", errIncompleteConfig)
	}
	recipient, err := e.cfg.Recipient(s.Curve())
	if err != nil {
		return err
	}
	ownKey := recipient == nil || recipient.Equal(s.PublicKey())
	if recipient == nil {
		recipient = s.PublicKey()
	}

	var ct *elgamal.Ciphertext
	if k := c.String("k"); k != "" {
		var nonce *big.Int
		if nonce, err = parseInt(k); err != nil {
			return fmt.Errorf("roundtrip: k: %w", err)
		}
		ct, err = s.Encrypt(message, recipient, nonce)
	} else {
		ct, _, err = s.EncryptRandom(randomness(c.String("seed"), "roundtrip"), message, recipient)
	}
	if err != nil {
		if elgamal.IsRecoverable(err) {
			e.log.Warn().Err(err).Msg("degenerate ephemeral scalar, choose another k")
		}
		return err
	}

	fingerprint := hash.New("ecelgamal ciphertext")
	if err = fingerprint.WriteAny(ct); err != nil {
		return err
	}
	e.log.Debug().Hex("fingerprint", fingerprint.Sum()[:8]).Msg("encrypted")

	w := c.App.Writer
	fmt.Fprintf(w, "public key: %v\n", recipient)
	fmt.Fprintf(w, "R: %v\n", ct.R)
	fmt.Fprintf(w, "C: %v\n", ct.C)
	if !ownKey {
		e.log.Info().Msg("recipient is not the key of the configured secret, not decrypting")
		return nil
	}

	decrypted, err := s.Decrypt(ct, e.cfg.ElGamal.Secret)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "decrypted: %v\n", decrypted)
	if decrypted.Cmp(message) != 0 {
		return fmt.Errorf("%w: got %v, want %v", errRoundTrip, decrypted, message)
	}
	return nil
}

func (e *env) selftest(c *cli.Context) error {
	crv, g, err := e.cfg.Build()
	if err != nil {
		return err
	}
	iterations := c.Int("iterations")
	if iterations <= 0 {
		return fmt.Errorf("selftest: iterations must be positive, got %d", iterations)
	}
	// scalars only need to be positive; the order is a tighter bound when known
	bound := e.cfg.Generator.Order
	if bound == nil {
		bound = crv.P()
	}

	ctx := context.Background()
	pl := pool.NewPool(c.Int("workers"))
	log := e.log.With().Int("workers", pl.Workers()).Int("iterations", iterations).Logger()
	log.Info().Stringer("curve", crv).Msg("running self test")
	start := time.Now()

	rand := pool.NewLockedReader(randomness(c.String("seed"), "selftest"))
	scalars := make([]*big.Int, 3*iterations)
	err = pl.Parallelize(ctx, len(scalars), func(_ context.Context, i int) error {
		var err error
		scalars[i], err = sample.Scalar(rand, bound)
		return err
	})
	if err != nil {
		return err
	}
	points, err := g.ScalarMultAll(ctx, pl, scalars)
	if err != nil {
		return err
	}

	err = pl.Parallelize(ctx, iterations, func(_ context.Context, i int) error {
		if err := checkGroupLaws(g, scalars[3*i:3*i+3], points[3*i:3*i+3]); err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("self test failed")
		return err
	}
	log.Debug().Dur("t", time.Since(start)).Msg("self test done")
	fmt.Fprintf(c.App.Writer, "selftest: %d iterations passed\n", iterations)
	return nil
}

// checkGroupLaws checks the group laws on A = x⋅G, B = y⋅G, C = z⋅G.
func checkGroupLaws(g *curve.Point, s []*big.Int, v []*curve.Point) error {
	x, y := s[0], s[1]
	a, b, c := v[0], v[1], v[2]
	identity := g.Curve().Identity()

	ab, err := a.Add(b)
	if err != nil {
		return err
	}
	ba, err := b.Add(a)
	if err != nil {
		return err
	}
	if !ab.Equal(ba) {
		return fmt.Errorf("%w: A + B != B + A", errSelfTest)
	}

	left, err := ab.Add(c)
	if err != nil {
		return err
	}
	bc, err := b.Add(c)
	if err != nil {
		return err
	}
	right, err := a.Add(bc)
	if err != nil {
		return err
	}
	if !left.Equal(right) {
		return fmt.Errorf("%w: (A + B) + C != A + (B + C)", errSelfTest)
	}

	if sum, err := a.Add(a.Negate()); err != nil || !sum.Equal(identity) {
		return fmt.Errorf("%w: A + (-A) != O", errSelfTest)
	}
	if sum, err := a.Add(identity); err != nil || !sum.Equal(a) {
		return fmt.Errorf("%w: A + O != A", errSelfTest)
	}

	xy, err := g.ScalarMult(new(big.Int).Add(x, y))
	if err != nil {
		return err
	}
	if !xy.Equal(ab) {
		return fmt.Errorf("%w: (x + y)G != xG + yG", errSelfTest)
	}
	yA, err := a.ScalarMult(y)
	if err != nil {
		return err
	}
	xyG, err := g.ScalarMult(new(big.Int).Mul(x, y))
	if err != nil {
		return err
	}
	if !yA.Equal(xyG) {
		return fmt.Errorf("%w: y(xG) != (xy)G", errSelfTest)
	}
	return nil
}

// randomness returns crypto/rand.Reader, or a deterministic stream derived from seed.
func randomness(seed, domain string) io.Reader {
	if seed == "" {
		return rand.Reader
	}
	return hash.Stream("ecelgamal "+domain, seed)
}
