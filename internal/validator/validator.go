package validator

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding
// engine. Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(v, trans)
	}
}

// TranslateErrors flattens a binding/validation error into the list of
// human-readable violations the response envelope carries. Every violated
// field is reported, not just the first. A non-validation error (e.g. a
// JSON syntax error) produces a single-entry list.
func TranslateErrors(err error) []string {
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fe.Translate(trans))
		}
		return msgs
	}
	return []string{err.Error()}
}

// Normalizer lets a request type canonicalize its fields between decoding
// and validation, so rules like min length apply to the value that will be
// persisted rather than the raw input.
type Normalizer interface {
	Normalize()
}

// Bind decodes the JSON request body into dst, normalizes it when dst
// implements Normalizer, and validates it. Returns nil on success or the
// translated violation list on failure.
func Bind(c *gin.Context, dst interface{}) []string {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return []string{err.Error()}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return TranslateErrors(err)
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
