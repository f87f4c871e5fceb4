package api

import (
	"fmt"
	"net/url"
	"strings"
)

// Route constants for the API endpoints
const (
	// Health endpoints
	PingEndpoint = "/ping" // Health check endpoint

	// Info endpoint
	InfoEndpoint = "/info" // GET: field and prover parameters

	// Polynomial endpoints
	PolynomialURLParam          = "id"                                        // URL parameter for the polynomial id
	PolynomialsEndpoint         = "/polynomials"                              // GET: list ids, POST: store a polynomial
	PolynomialEndpoint          = "/polynomials/{" + PolynomialURLParam + "}" // GET: fetch, DELETE: remove
	PolynomialEvaluateEndpoint  = PolynomialEndpoint + "/evaluate"            // POST: evaluate at many points
	PolynomialDivideEndpoint    = PolynomialEndpoint + "/divide"              // POST: quotient and remainder
	PolynomialOpenEndpoint      = PolynomialEndpoint + "/open"                // POST: KZG opening
	PolynomialBlobProofEndpoint = PolynomialEndpoint + "/blobproof"           // POST: EIP-4844 blob proof
)

// EndpointWithParam creates an endpoint URL by replacing the parameter
// placeholder with the actual value. If the placeholder is missing the value
// is added as a query parameter.
func EndpointWithParam(path, key, param string) string {
	rawKey := fmt.Sprintf("{%s}", key)
	if strings.Contains(path, rawKey) {
		return strings.Replace(path, rawKey, url.PathEscape(param), 1)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s%s=%s", path, sep, url.QueryEscape(key), url.QueryEscape(param))
}

// LogExcludedPrefixes defines URL prefixes to exclude from request logging
var LogExcludedPrefixes = []string{
	PingEndpoint,
	InfoEndpoint,
}
