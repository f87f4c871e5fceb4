package api

import "github.com/vocdoni/davinci-poly/types"

// Field elements travel as 0x-prefixed big-endian hex strings of at most 32
// bytes, and must be lower than the field modulus.

// PolynomialRequest stores a polynomial, coefficients lowest degree first.
type PolynomialRequest struct {
	Coefficients []types.HexBytes `json:"coefficients"`
}

// PolynomialResponse describes a stored polynomial. Coefficients are only
// returned by GET.
type PolynomialResponse struct {
	ID           string           `json:"id"`
	Length       int              `json:"length"`
	Coefficients []types.HexBytes `json:"coefficients,omitempty"`
	Commitment   types.HexBytes   `json:"commitment,omitempty"`
}

// PolynomialListResponse lists the stored polynomial ids.
type PolynomialListResponse struct {
	Polynomials []string `json:"polynomials"`
}

// EvaluateRequest asks for the evaluation at every point.
type EvaluateRequest struct {
	Points []types.HexBytes `json:"points"`
}

// EvaluateResponse holds one value per requested point, in order.
type EvaluateResponse struct {
	Values []types.HexBytes `json:"values"`
}

// DivideRequest divides the stored polynomial by divisor.
type DivideRequest struct {
	Divisor []types.HexBytes `json:"divisor"`
}

// DivideResponse holds the quotient and remainder. Exact is set when the
// remainder is zero.
type DivideResponse struct {
	Quotient  []types.HexBytes `json:"quotient"`
	Remainder []types.HexBytes `json:"remainder"`
	Exact     bool             `json:"exact"`
}

// OpenRequest opens the stored polynomial at Point.
type OpenRequest struct {
	Point types.HexBytes `json:"point"`
}

// OpenResponse is a KZG opening: Value is p(point), Proof commits to the
// returned Quotient. Commitment and Proof are compressed G1 points.
type OpenResponse struct {
	Value      types.HexBytes   `json:"value"`
	Quotient   []types.HexBytes `json:"quotient"`
	Commitment types.HexBytes   `json:"commitment"`
	Proof      types.HexBytes   `json:"proof"`
}

// BlobProofResponse is an EIP-4844 point evaluation proof of the blob holding
// the stored polynomial.
type BlobProofResponse struct {
	Value         types.HexBytes `json:"value"`
	Commitment    types.HexBytes `json:"commitment"`
	Proof         types.HexBytes `json:"proof"`
	VersionedHash types.HexBytes `json:"versionedHash"`
}

// InfoResponse describes the field and limits of the service.
type InfoResponse struct {
	Field           string        `json:"field"`
	Modulus         *types.BigInt `json:"modulus"`
	MaxLength       int           `json:"maxLength"`
	MaxPoints       int           `json:"maxPoints"`
	KZGMaxLength    int           `json:"kzgMaxLength"`
	BlobMaxLength   int           `json:"blobMaxLength"`
	ElementByteSize int           `json:"elementByteSize"`
}
