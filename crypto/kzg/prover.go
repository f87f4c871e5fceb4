package kzg

import (
	"bufio"
	"errors"
	"fmt"
	"math/big"
	"os"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	gnarkkzg "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/vocdoni/davinci-poly/crypto/field"
	fieldbls "github.com/vocdoni/davinci-poly/crypto/field/bls12381"
	"github.com/vocdoni/davinci-poly/log"
	"github.com/vocdoni/davinci-poly/polynomial"
)

// ErrPolynomialTooLong is returned when the polynomial has more coefficients
// than the SRS has G1 powers.
var ErrPolynomialTooLong = errors.New("polynomial longer than the SRS")

// Polynomial is a polynomial over the BLS12-381 scalar field.
type Polynomial = polynomial.Polynomial[fr.Element]

// Digest is a commitment, a point of G1.
type Digest = gnarkkzg.Digest

// OpeningProof holds the commitment to the quotient (H) and the claimed
// evaluation.
type OpeningProof = gnarkkzg.OpeningProof

// Prover commits to and opens BLS12-381 polynomials.
type Prover struct {
	pk gnarkkzg.ProvingKey
	vk gnarkkzg.VerifyingKey
	f  field.Field[fr.Element]
}

// NewTestSRS returns an insecure SRS of the given size built from a known
// toxic waste alpha. It must only be used in tests and development setups.
func NewTestSRS(size uint64, alpha *big.Int) (*gnarkkzg.SRS, error) {
	srs, err := gnarkkzg.NewSRS(size, alpha)
	if err != nil {
		return nil, fmt.Errorf("generate test SRS: %w", err)
	}
	return srs, nil
}

// ReadSRS loads an SRS serialized with gnark-crypto's SRS.WriteTo, such as
// the output of a powers of tau ceremony.
func ReadSRS(path string) (*gnarkkzg.SRS, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open SRS: %w", err)
	}
	defer func() {
		if err := fd.Close(); err != nil {
			log.Warnw("failed to close SRS file", "path", path, "error", err)
		}
	}()
	srs := new(gnarkkzg.SRS)
	if _, err := srs.ReadFrom(bufio.NewReader(fd)); err != nil {
		return nil, fmt.Errorf("read SRS %s: %w", path, err)
	}
	return srs, nil
}

// NewProver returns a Prover using the given SRS.
func NewProver(srs *gnarkkzg.SRS) (*Prover, error) {
	if srs == nil || len(srs.Pk.G1) == 0 {
		return nil, fmt.Errorf("empty SRS")
	}
	return &Prover{pk: srs.Pk, vk: srs.Vk, f: fieldbls.New()}, nil
}

// MaxLength returns the longest polynomial the prover can commit to.
func (p *Prover) MaxLength() int { return len(p.pk.G1) }

// VerifyingKey returns the verifying key of the SRS.
func (p *Prover) VerifyingKey() gnarkkzg.VerifyingKey { return p.vk }

// Commit returns the commitment to poly.
func (p *Prover) Commit(poly *Polynomial) (Digest, error) {
	if poly == nil || poly.Released() {
		return Digest{}, &polynomial.Error{Code: polynomial.BadArguments, Err: polynomial.ErrReleased}
	}
	if poly.Len() > p.MaxLength() {
		return Digest{}, fmt.Errorf("%w: %d > %d", ErrPolynomialTooLong, poly.Len(), p.MaxLength())
	}
	digest, err := gnarkkzg.Commit(poly.Coefficients(), p.pk)
	if err != nil {
		return Digest{}, fmt.Errorf("commit: %w", err)
	}
	return digest, nil
}

// Open returns the proof that poly evaluates to proof.ClaimedValue at z,
// together with the quotient the proof commits to.
func (p *Prover) Open(poly *Polynomial, z fr.Element) (OpeningProof, *Polynomial, error) {
	if poly != nil && poly.Len() > p.MaxLength() {
		return OpeningProof{}, nil, fmt.Errorf("%w: %d > %d", ErrPolynomialTooLong, poly.Len(), p.MaxLength())
	}
	q, y, err := Quotient(poly, z)
	if err != nil {
		return OpeningProof{}, nil, err
	}
	h, err := p.Commit(q)
	if err != nil {
		return OpeningProof{}, nil, err
	}
	log.Debugw("kzg opening computed",
		"length", poly.Len(),
		"point", p.f.String(z),
		"value", p.f.String(y))
	return OpeningProof{H: h, ClaimedValue: y}, q, nil
}

// Verify checks an opening proof against a commitment.
func (p *Prover) Verify(commitment Digest, proof OpeningProof, z fr.Element) error {
	return Verify(commitment, proof, z, p.vk)
}

// Verify checks that the polynomial committed in commitment evaluates to
// proof.ClaimedValue at z.
func Verify(commitment Digest, proof OpeningProof, z fr.Element, vk gnarkkzg.VerifyingKey) error {
	if err := gnarkkzg.Verify(&commitment, &proof, z, vk); err != nil {
		return fmt.Errorf("kzg verification failed: %w", err)
	}
	return nil
}

// CompressedBytes returns the 48 bytes compressed encoding of a G1 point,
// the format used by EIP-4844 commitments and proofs.
func CompressedBytes(point bls12381.G1Affine) []byte {
	b := point.Bytes()
	return b[:]
}
