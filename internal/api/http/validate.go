package http

import (
	"encoding/json"
	nethttp "net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeValid decodes the request body into dst and runs struct validation.
// On failure it writes the 400 and returns false.
func decodeValid(w nethttp.ResponseWriter, r *nethttp.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondErr(w, nethttp.StatusBadRequest, "bad json")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		if len(fields) > 0 {
			respondErr(w, nethttp.StatusBadRequest, "missing or invalid: "+strings.Join(fields, ", "))
		} else {
			respondErr(w, nethttp.StatusBadRequest, "invalid request")
		}
		return false
	}
	return true
}
