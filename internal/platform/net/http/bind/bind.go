// Package bind decodes and validates JSON request bodies
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// JSONOptions controls parsing. The zero value means unlimited, lenient and body required;
// routes normally start from the defaults
type JSONOptions struct {
	MaxBytes        int64 // 0 is unlimited
	DisallowUnknown bool
	AllowEmptyBody  bool
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

func engine() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		valid = validator.New(validator.WithRequiredStructEnabled())
		valid.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(valid, trans)
		_ = valid.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			f := fl.Field()
			return f.Kind() != reflect.String || strings.TrimSpace(f.String()) != ""
		})
		for tag, fn := range messages {
			fn := fn
			_ = valid.RegisterTranslation(tag, trans,
				func(ut.Translator) error { return nil },
				func(_ ut.Translator, fe validator.FieldError) string { return fn(fe) })
		}
	})
	return valid, trans
}

// jsonName reports fields by their wire name
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "", "-":
		return f.Name
	default:
		return name
	}
}

// messages overrides the stock english text for the tags admin payloads use
var messages = map[string]func(validator.FieldError) string{
	"min": func(fe validator.FieldError) string {
		return fe.Field() + ": at least " + fe.Param() + unit(fe) + " required"
	},
	"max": func(fe validator.FieldError) string {
		return fe.Field() + ": at most " + fe.Param() + unit(fe) + " allowed"
	},
	"notblank": func(fe validator.FieldError) string { return fe.Field() + " must not be blank" },
}

func unit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return " characters"
	}
	return ""
}

// capped fails with errTooLarge once more than left bytes were read
type capped struct {
	r    io.Reader
	left int64
}

var errTooLarge = errors.New("body too large")

func (c *capped) Read(p []byte) (int, error) {
	if c.left < 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > c.left+1 {
		p = p[:c.left+1]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, errTooLarge
	}
	return n, err
}

// ParseJSON decodes one JSON value into T and validates it.
// Decode problems come back as ErrorCodeJSON, rule violations as ErrorCodeValidation with the field set
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var out T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("failed to close request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = &capped{r: r.Body, left: o.MaxBytes}
	}
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		switch {
		case o.AllowEmptyBody:
			return out, nil
		case r.Method == http.MethodGet, r.Method == http.MethodDelete, r.Method == http.MethodHead:
			return out, nil
		default:
			return out, perr.JSONErrf("empty body")
		}
	}

	dec := json.NewDecoder(br)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, errTooLarge) {
			return out, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
		}
		return out, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return out, perr.JSONErrf("unexpected trailing data")
	}
	return out, check(r, out)
}

func check(r *http.Request, v any) error {
	vd, tr := engine()
	err := vd.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		logger.C(r.Context()).Error().Err(err).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	fe := fieldErrs[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(tr)), fe.Field())
}
