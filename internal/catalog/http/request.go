package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aklatan/buklat/pkg/apierr"
)

// decodeJSON decodes a JSON request body into dst. Unknown fields are
// rejected so typos in client payloads surface as validation errors instead
// of silently dropped input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierr.Validation("Request body is not valid JSON.")
	}
	return nil
}

// requireFields reports the first missing field as a validation error.
// Fields map pointer-typed request fields to their wire names; order matters
// for deterministic messages.
func requireFields(fields ...requiredField) error {
	for _, f := range fields {
		if f.missing {
			return apierr.Validation(fmt.Sprintf("Field '%s' is required.", f.name))
		}
	}
	return nil
}

type requiredField struct {
	name    string
	missing bool
}

func required(name string, missing bool) requiredField {
	return requiredField{name: name, missing: missing}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierr.Validation(fmt.Sprintf("Path parameter 'id' must be an integer, got %q.", raw))
	}
	return id, nil
}
