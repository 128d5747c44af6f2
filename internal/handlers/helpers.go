package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const msgValidationFailed = "Data yang diberikan tidak valid"

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseID reads the :id route parameter. Anything that is not a positive integer is reported as absent.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseBody decodes the request body into out. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

// nullFields reports the keys that appear in a JSON object body with an explicit null.
// Bodies that are not JSON objects yield nothing.
func nullFields(body []byte, keys ...string) map[string]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	errs := make(map[string]string)
	for _, key := range keys {
		if value, ok := raw[key]; ok && string(bytes.TrimSpace(value)) == "null" {
			errs[key] = fmt.Sprintf("%s tidak boleh kosong", key)
		}
	}
	return errs
}

// validationError writes a 422 response describing what is wrong with the request.
func validationError(c *fiber.Ctx, err error) error {
	return fieldErrorResponse(c, fieldErrors(err))
}

func fieldErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": msgValidationFailed,
		"errors":  errs,
	})
}

func fieldErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			errs[e.Field()] = fieldMessage(e)
		}
		return errs
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		errs[typeErr.Field] = fmt.Sprintf("%s harus bertipe %s", typeErr.Field, jsonTypeName(typeErr.Type))
		return errs
	}

	errs["body"] = err.Error()
	return errs
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", e.Field())
	case "min":
		return fmt.Sprintf("%s minimal %s karakter", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s minimal %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s tidak valid", e.Field())
	}
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return "angka"
	case reflect.String:
		return "string"
	default:
		return t.String()
	}
}
