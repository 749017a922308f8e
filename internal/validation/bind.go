package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// ErrMalformedBody is returned when the request body is not valid JSON.
var ErrMalformedBody = errors.New("malformed request body")

// Bind decodes the JSON request body into dst and validates it. Unknown
// fields are ignored: storefront payloads carry display-only extras that the
// backend has no business rejecting. Validation failures come back as a
// single error listing every failed field rule.
func Bind(r *http.Request, v *validatorv10.Validate, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if err := v.Struct(dst); err != nil {
		var invalid *validatorv10.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}

		var failures validatorv10.ValidationErrors
		if errors.As(err, &failures) {
			msgs := make([]string, 0, len(failures))
			for _, f := range failures {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", f.Field(), f.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
		return err
	}

	return nil
}
