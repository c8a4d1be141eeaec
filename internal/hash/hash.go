package hash

import (
	"fmt"
	"io"
	"math/big"

	"github.com/zeebo/blake3"
)

const DigestLengthBytes = 64

// Hash turns labelled inputs into a deterministic stream of bytes.
//
// Internally, this is a wrapper around blake3, whose extendable output is used as
// an io.Reader wherever a reproducible source of randomness is wanted, such as seeded
// demonstrations and tests.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash struct where the internal hash function is initialized with a domain string.
func New(domain string) *Hash {
	hash := &Hash{h: blake3.New()}
	_ = writeWithDomain(hash.h, &BytesWithDomain{
		TheDomain: "domain",
		Bytes:     []byte(domain),
	})
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
// If a different length is required, use io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - string
//   - *big.Int
//   - hash.WriterToWithDomain
//
// This function will apply its own domain separation for the first three types.
// The last type already suggests which domain to use, and this function respects it.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case string:
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "string",
				Bytes:     []byte(t),
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write string: %w", err)
			}
		case *big.Int:
			if t == nil {
				return fmt.Errorf("hash.Hash: write *big.Int: nil")
			}
			// the sign is encoded in front of the magnitude
			bytes := append([]byte{byte(t.Sign() + 1)}, t.Bytes()...)
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "big.Int",
				Bytes:     bytes,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write *big.Int: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write io.WriterTo: %w", err)
			}
		default:
			return fmt.Errorf("hash.Hash: unsupported type %T", d)
		}
	}
	return nil
}

// Stream returns the digest of the given values under domain, as a deterministic
// reader. It panics if a value has an unsupported type.
func Stream(domain string, data ...interface{}) io.Reader {
	h := New(domain)
	if err := h.WriteAny(data...); err != nil {
		panic(err)
	}
	return h.Digest()
}
