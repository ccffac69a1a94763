package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/vorobyoffn/Financial-Dashboard/internal/errors"
)

// RequestValidator decodes JSON bodies and checks their struct tags.
type RequestValidator struct {
	validate    *validator.Validate
	maxBodySize int64
}

// NewRequestValidator creates a validator that rejects bodies above
// maxBodySize bytes.
func NewRequestValidator(maxBodySize int64) *RequestValidator {
	v := validator.New()

	// Report JSON names in field errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: v, maxBodySize: maxBodySize}
}

// Decode reads the JSON body of r into dst and validates it. Errors are
// *apierrors.APIError values ready for the error handler.
func (rv *RequestValidator) Decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if rv.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rv.maxBodySize)
	}

	if err := render.DecodeJSON(r.Body, dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apierrors.NewWithDetails(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				"Request body exceeds maximum allowed size",
				map[string]interface{}{"max_size": maxErr.Limit})
		case errors.Is(err, io.EOF):
			return apierrors.New(http.StatusBadRequest, "INVALID_REQUEST", "Request body is empty")
		default:
			return apierrors.InvalidRequestWithError(err)
		}
	}

	return rv.Struct(dst)
}

// Struct validates v and returns field errors as an APIError.
func (rv *RequestValidator) Struct(v interface{}) error {
	err := rv.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apierrors.NewValidationErrors(apierrors.FromValidator(verrs))
	}
	return apierrors.InvalidRequestWithError(err)
}

// ContentTypeValidator ensures requests have proper content type
func ContentTypeValidator(errHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			for _, allowed := range contentTypes {
				if strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			errHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				fmt.Sprintf("Unsupported content type %q", contentType),
				map[string]interface{}{"allowed": contentTypes},
			))
		})
	}
}
