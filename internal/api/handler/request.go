package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/domain"
	"github.com/albapepper/courtside/internal/logging"
)

const dateLayout = "2006-01-02"

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates its struct tags.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	return h.decodeBody(w, r, dst, false)
}

// decodeOptional is decode for routes whose body may be omitted; an empty
// body leaves dst at its zero value.
func (h *Handler) decodeOptional(w http.ResponseWriter, r *http.Request, dst any) error {
	return h.decodeBody(w, r, dst, true)
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return domain.Invalid("Request body is required")
		}
		return domain.Invalid("Invalid JSON body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError turns the first validator failure into an Invalid error.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return domain.Invalid("Invalid request")
	}
	fe := ve[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_without":
		return domain.Invalid("%s is required", field)
	case "oneof":
		return domain.Invalid("Invalid %s. Must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return domain.Invalid("%s must be at most %s", field, fe.Param())
	case "min":
		return domain.Invalid("%s must be at least %s", field, fe.Param())
	case "len":
		return domain.Invalid("%s must have exactly %s entries", field, fe.Param())
	case "unique":
		return domain.Invalid("%s must not contain duplicates", field)
	case "gt", "gte", "lt", "lte":
		return domain.Invalid("%s is out of range", field)
	case "email":
		return domain.Invalid("%s must be a valid email address", field)
	}
	return domain.Invalid("Invalid value for %s", field)
}

// fail maps a store or domain error onto the error envelope. Unclassified
// errors are logged and answered with a generic 500.
func fail(w http.ResponseWriter, r *http.Request, module string, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	default:
		logging.FromContext(r.Context()).Error("Request failed",
			"module", module, "method", r.Method, "path", r.URL.Path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.InternalError)
		return
	}
	msg := domain.Message(err)
	if msg == "" {
		msg = err.Error()
	}
	respond.WriteError(w, status, msg)
}

// created answers 201 with {"message": msg, idKey: id}.
func created(w http.ResponseWriter, msg, idKey string, id int64) {
	respond.WriteJSON(w, http.StatusCreated, map[string]any{"message": msg, idKey: id})
}

// ---- Path and query parameters ----

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("Invalid %s '%s'", name, raw)
	}
	return id, nil
}

func queryString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalid("%s must be an integer", name)
	}
	return n, nil
}

func queryIntPtr(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.Invalid("%s must be an integer", name)
	}
	return &n, nil
}

func queryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.Invalid("%s must be an integer", name)
	}
	return &n, nil
}

func requiredID(r *http.Request, name string) (int64, error) {
	id, err := queryID(r, name)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, domain.Invalid("%s is required", name)
	}
	return *id, nil
}

func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.Invalid("%s must be a number", name)
	}
	return &f, nil
}

// queryBool accepts only the literals "true" and "false".
func queryBool(r *http.Request, name string) (*bool, error) {
	switch r.URL.Query().Get(name) {
	case "":
		return nil, nil
	case "true":
		t := true
		return &t, nil
	case "false":
		f := false
		return &f, nil
	}
	return nil, domain.Invalid("%s must be true or false", name)
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	return parseDate(name, queryString(r, name))
}

// parseDate reads an optional YYYY-MM-DD value.
func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, domain.Invalid("%s must be a date (YYYY-MM-DD)", field)
	}
	return &t, nil
}

// queryOneOf reads an optional enum parameter.
func queryOneOf(r *http.Request, name string, allowed []string) (*string, error) {
	v := queryString(r, name)
	if v == nil {
		return nil, nil
	}
	if err := domain.OneOf(name, *v, allowed); err != nil {
		return nil, err
	}
	return v, nil
}
