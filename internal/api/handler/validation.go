package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Rrens/support-assistant/internal/api/response"
)

var validate = validator.New()

// decodeAndValidate reads a JSON body into input and runs struct validation,
// writing a 400 and returning false on failure
func decodeAndValidate(w http.ResponseWriter, r *http.Request, input any) bool {
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		response.BadRequest(w, "invalid request body")
		return false
	}

	if err := validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string)
			for _, e := range validationErrors {
				switch e.Tag() {
				case "required":
					fields[e.Field()] = "field is required"
				case "min":
					fields[e.Field()] = "must be at least " + e.Param()
				case "max":
					fields[e.Field()] = "must be at most " + e.Param()
				default:
					fields[e.Field()] = "validation failed on " + e.Tag()
				}
			}
			response.BadRequest(w, fields)
			return false
		}
		response.BadRequest(w, err.Error())
		return false
	}

	return true
}
