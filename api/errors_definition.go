//nolint:lll
package api

import (
	"fmt"
	"net/http"
)

// Error codes in the 40001-49999 range are the user's fault, and they return
// HTTP Status 400 or 404, whatever is most appropriate. Polynomial operations
// rejected with the BadArguments result code map to ErrInvalidArguments.
//
// Error codes 50001-59999 are the server's fault and they return HTTP Status
// 500 or 503. InternalError maps to ErrGenericInternalServerError and
// AllocationFailure to ErrAllocationFailure.
//
// NEVER change any of the current error codes, only append new errors after
// the current last 4XXXX or 5XXXX.
var (
	ErrResourceNotFound    = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody       = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrMalformedParam      = Error{Code: 40015, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed parameter")}
	ErrMalformedElement    = Error{Code: 40023, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed field element")}
	ErrPolynomialNotFound  = Error{Code: 40024, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("polynomial not found")}
	ErrInvalidArguments    = Error{Code: 40025, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid arguments")}
	ErrPolynomialTooLong   = Error{Code: 40026, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("polynomial too long")}
	ErrTooManyPoints       = Error{Code: 40027, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("too many evaluation points")}
	ErrProverNotConfigured = Error{Code: 40028, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("kzg prover not configured")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
	ErrAllocationFailure          = Error{Code: 50003, HTTPstatus: http.StatusServiceUnavailable, Err: fmt.Errorf("allocation failure")}
	ErrStorageFailure             = Error{Code: 50004, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("storage failure")}
)
