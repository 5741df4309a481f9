package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/glyphforge/glyphforge/pkg/capsule"
	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/raster"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// capsuleResponse is the wire form of a single capsule. The raster travels
// as a base64 PNG so the sidecar stays a single JSON document.
type capsuleResponse struct {
	Metadata capsule.Metadata  `json:"metadata"`
	Metrics  *validate.Metrics `json:"metrics,omitempty"`
	Valid    bool              `json:"valid"`
	Results  []validate.Result `json:"results"`
	PNG      string            `json:"png,omitempty"`
}

// setResponse is the wire form of a capsule set.
type setResponse struct {
	Primary  capsuleResponse   `json:"primary"`
	Variants []capsuleResponse `json:"variants,omitempty"`
}

// errorResponse is the wire form of any handler failure.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func newCapsuleResponse(c *capsule.Capsule) capsuleResponse {
	resp := capsuleResponse{
		Metadata: c.Metadata(),
		Metrics:  c.Metrics(),
		Valid:    c.Valid(),
		Results:  c.Results(),
	}
	if r := c.Raster(); r != nil {
		if data, err := raster.EncodePNGBytes(r); err == nil {
			resp.PNG = base64.StdEncoding.EncodeToString(data)
		}
	}
	return resp
}

func newSetResponse(s *capsule.Set) setResponse {
	resp := setResponse{Primary: newCapsuleResponse(s.Primary)}
	for _, v := range s.Variants {
		resp.Variants = append(resp.Variants, newCapsuleResponse(v))
	}
	return resp
}

// statusFor maps engine error codes onto HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidRequest, errors.ErrCodeInvalidDimensions,
		errors.ErrCodeInvalidKind, errors.ErrCodeDimensionMismatch,
		errors.ErrCodeOutOfRange, errors.ErrCodeMissingInput:
		return http.StatusBadRequest
	case errors.ErrCodeSourceNotFound, errors.ErrCodeCapsuleNotFound,
		errors.ErrCodeGeneratorNotFound, errors.ErrCodeUnsupported:
		return http.StatusNotFound
	case errors.ErrCodeDuplicateCapsule:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Code:      string(errors.GetCode(err)),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
