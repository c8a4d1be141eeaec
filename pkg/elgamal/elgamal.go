// Package elgamal implements ElGamal encryption of integers over the group of points
// of a Weierstrass curve.
//
// A message m ∈ [0, p) is masked with the x coordinate of a shared point:
//
//	R = k⋅G, P = k⋅D, C = m⋅P.x (mod p)
//
// where D = d⋅G is the recipient's public key and k an ephemeral scalar. The recipient
// recovers P = d⋅R and m = C⋅(P.x)⁻¹ (mod p).
package elgamal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/weierstrass/internal/params"
	"github.com/taurusgroup/weierstrass/pkg/math/arith"
	"github.com/taurusgroup/weierstrass/pkg/math/curve"
	"github.com/taurusgroup/weierstrass/pkg/math/order"
	"github.com/taurusgroup/weierstrass/pkg/math/sample"
)

var (
	ErrInvalidGenerator = errors.New("elgamal: invalid generator")
	ErrInvalidKey       = errors.New("elgamal: invalid public key")
	ErrInvalidMessage   = errors.New("elgamal: message must be in [0, p)")
	ErrInvalidEphemeral = errors.New("elgamal: ephemeral scalar must be in [1, order - 1]")
	// ErrDegenerateEphemeral is returned when the ephemeral scalar produces a shared point
	// that cannot mask the message. Encrypting again with a fresh scalar can succeed.
	ErrDegenerateEphemeral = errors.New("elgamal: degenerate ephemeral scalar")
	ErrInvalidCiphertext   = errors.New("elgamal: invalid ciphertext")
)

type (
	PublicKey = *curve.Point
	// Nonce is the ephemeral scalar k of an encryption.
	Nonce = *big.Int
)

// Ciphertext is the pair (R, C) produced by Encrypt.
type Ciphertext struct {
	// R = k⋅G
	R *curve.Point
	// C = m⋅(k⋅D).x (mod p)
	C *big.Int
}

// Valid returns true if the ciphertext can be decrypted on curve c.
func (ct *Ciphertext) Valid(c *curve.Curve) bool {
	if ct == nil || ct.R == nil || ct.C == nil || ct.R.IsIdentity() || !c.Contains(ct.R) {
		return false
	}
	return ct.C.Sign() >= 0 && ct.C.Cmp(c.P()) < 0
}

// WriteTo implements io.WriterTo, so that a ciphertext can be hashed.
//
// R is written as a tag byte, 0 for the identity and 1 followed by its coordinates
// otherwise, then C. Each integer is prefixed by its length in bytes.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	if ct == nil || ct.R == nil || ct.C == nil {
		return 0, fmt.Errorf("elgamal.Ciphertext.WriteTo: %w", ErrInvalidCiphertext)
	}
	var (
		buf  []byte
		ints []*big.Int
	)
	if ct.R.IsIdentity() {
		buf = append(buf, 0)
		ints = []*big.Int{ct.C}
	} else {
		buf = append(buf, 1)
		ints = []*big.Int{ct.R.X(), ct.R.Y(), ct.C}
	}
	for _, x := range ints {
		b := x.Bytes()
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(b)))
		buf = append(buf, b...)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}

// String implements fmt.Stringer.
func (ct *Ciphertext) String() string {
	if ct == nil {
		return "nil"
	}
	return fmt.Sprintf("Ciphertext{R: %v, C: %v}", ct.R, ct.C)
}

// Scheme holds the public parameters of an instance: the curve, a generator, the
// order of the generator, and the public key secret⋅G.
type Scheme struct {
	curve     *curve.Curve
	generator *curve.Point
	order     *big.Int
	publicKey *curve.Point
}

// Setup returns the scheme for generator g on c and the given secret.
//
// The order of g is found by repeated addition, which is only practical for small
// groups; SetupWithOrder accepts a known order instead.
func Setup(c *curve.Curve, g *curve.Point, secret *big.Int) (*Scheme, error) {
	if err := checkGenerator(c, g); err != nil {
		return nil, err
	}
	n, err := order.Order(g)
	if err != nil {
		return nil, fmt.Errorf("elgamal.Setup: %w", err)
	}
	return setup(c, g, n, secret)
}

// SetupWithOrder is Setup, where n is the order of g.
//
// n is checked to satisfy n⋅G = O, but it is not checked to be the smallest such integer.
func SetupWithOrder(c *curve.Curve, g *curve.Point, n, secret *big.Int) (*Scheme, error) {
	if err := checkGenerator(c, g); err != nil {
		return nil, err
	}
	if err := order.Verify(g, n); err != nil {
		return nil, fmt.Errorf("elgamal.SetupWithOrder: %w: %w", ErrInvalidGenerator, err)
	}
	return setup(c, g, new(big.Int).Set(n), secret)
}

func checkGenerator(c *curve.Curve, g *curve.Point) error {
	if c == nil || g == nil {
		return fmt.Errorf("%w: nil curve or generator", ErrInvalidGenerator)
	}
	if !c.Contains(g) {
		return fmt.Errorf("%w: %v is not on the curve", ErrInvalidGenerator, g)
	}
	if g.IsIdentity() {
		return fmt.Errorf("%w: generator is the identity", ErrInvalidGenerator)
	}
	return nil
}

func setup(c *curve.Curve, g *curve.Point, n, secret *big.Int) (*Scheme, error) {
	if n.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: order %v leaves no ephemeral scalar", ErrInvalidGenerator, n)
	}
	publicKey, err := g.ScalarMult(secret)
	if err != nil {
		return nil, fmt.Errorf("elgamal: public key: %w", err)
	}
	return &Scheme{
		curve:     c,
		generator: g,
		order:     n,
		publicKey: publicKey,
	}, nil
}

// Curve returns the curve of the scheme.
func (s *Scheme) Curve() *curve.Curve { return s.curve }

// Generator returns the generator G.
func (s *Scheme) Generator() *curve.Point { return s.generator }

// Order returns a copy of the order of G.
func (s *Scheme) Order() *big.Int { return new(big.Int).Set(s.order) }

// PublicKey returns secret⋅G.
func (s *Scheme) PublicKey() PublicKey { return s.publicKey }

// Encrypt encrypts message for the holder of the secret behind recipient, using the
// ephemeral scalar k.
//
// k must be drawn uniformly from [1, order − 1] by a cryptographically strong source for
// each encryption, for instance with sample.Scalar; reusing k reveals the ratio of the
// messages. If k⋅recipient is the identity or has x coordinate 0, an error wrapping
// ErrDegenerateEphemeral is returned and the caller should retry with another k.
func (s *Scheme) Encrypt(message *big.Int, recipient PublicKey, k Nonce) (*Ciphertext, error) {
	p := s.curve.P()
	if message == nil || message.Sign() < 0 || message.Cmp(p) >= 0 {
		return nil, fmt.Errorf("elgamal.Encrypt: %w", ErrInvalidMessage)
	}
	if recipient == nil || recipient.IsIdentity() || !s.curve.Contains(recipient) {
		return nil, fmt.Errorf("elgamal.Encrypt: %w", ErrInvalidKey)
	}
	if k == nil || k.Sign() <= 0 || k.Cmp(s.order) >= 0 {
		return nil, fmt.Errorf("elgamal.Encrypt: %w", ErrInvalidEphemeral)
	}

	R, err := s.generator.ScalarMult(k)
	if err != nil {
		return nil, fmt.Errorf("elgamal.Encrypt: %w", err)
	}
	P, err := recipient.ScalarMult(k)
	if err != nil {
		return nil, fmt.Errorf("elgamal.Encrypt: %w", err)
	}
	if P.IsIdentity() {
		return nil, fmt.Errorf("elgamal.Encrypt: %w: shared point is the identity", ErrDegenerateEphemeral)
	}
	if P.X().Sign() == 0 {
		return nil, fmt.Errorf("elgamal.Encrypt: %w: %w", ErrDegenerateEphemeral,
			&arith.NoInverseError{N: P.X(), Modulus: p})
	}

	C := new(big.Int).Mul(message, P.X())
	C.Mod(C, p)
	return &Ciphertext{R: R, C: C}, nil
}

// EncryptRandom is Encrypt with an ephemeral scalar drawn from rand, which must be a
// cryptographically strong source such as crypto/rand.Reader.
//
// Degenerate ephemeral scalars are replaced by fresh ones. The returned nonce must be kept
// secret or discarded.
func (s *Scheme) EncryptRandom(rand io.Reader, message *big.Int, recipient PublicKey) (*Ciphertext, Nonce, error) {
	var err error
	for i := 0; i < params.MaxEphemeralAttempts; i++ {
		var k *big.Int
		if k, err = sample.Scalar(rand, s.order); err != nil {
			return nil, nil, fmt.Errorf("elgamal.EncryptRandom: %w", err)
		}
		var ct *Ciphertext
		ct, err = s.Encrypt(message, recipient, k)
		if err == nil {
			return ct, k, nil
		}
		if !errors.Is(err, ErrDegenerateEphemeral) {
			return nil, nil, err
		}
	}
	return nil, nil, fmt.Errorf("elgamal.EncryptRandom: giving up after %d attempts: %w", params.MaxEphemeralAttempts, err)
}

// Decrypt returns the message of ct, using the recipient's secret.
//
// If secret⋅R has no invertible x coordinate, the returned error matches arith.ErrNoInverse;
// the sender can recover by encrypting again with a fresh ephemeral scalar.
func (s *Scheme) Decrypt(ct *Ciphertext, secret *big.Int) (*big.Int, error) {
	if ct == nil || ct.R == nil || ct.C == nil || !s.curve.Contains(ct.R) {
		return nil, fmt.Errorf("elgamal.Decrypt: %w", ErrInvalidCiphertext)
	}
	p := s.curve.P()

	Q, err := ct.R.ScalarMult(secret)
	if err != nil {
		return nil, fmt.Errorf("elgamal.Decrypt: %w", err)
	}
	var x *big.Int
	if Q.IsIdentity() {
		x = new(big.Int)
	} else {
		x = Q.X()
	}
	inv, err := arith.ModInverse(x, p)
	if err != nil {
		return nil, fmt.Errorf("elgamal.Decrypt: %w", err)
	}

	m := new(big.Int).Mul(ct.C, inv)
	return m.Mod(m, p), nil
}

// IsRecoverable reports whether err, returned by Encrypt or Decrypt, is due to an unlucky
// ephemeral scalar, so that encrypting the message again with a fresh one can succeed.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrDegenerateEphemeral) || errors.Is(err, arith.ErrNoInverse)
}
