package form

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout of the dob field, as produced by a date input.
const DateLayout = "2006-01-02"

var (
	// emailPattern accepts dotted word/hyphen local parts, dot-terminated
	// domain labels and a final alphabetic label of 2 to 7 letters.
	emailPattern = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

var messages = map[Field]string{
	FieldEmail: MsgInvalidEmail,
	FieldPhone: MsgInvalidPhone,
	FieldDOB:   MsgInvalidDOB,
}

type nowKey struct{}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "emailpattern", func(_ context.Context, fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	mustRegister(v, "tendigits", func(_ context.Context, fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	mustRegister(v, "pastdate", func(ctx context.Context, fl validator.FieldLevel) bool {
		now, ok := ctx.Value(nowKey{}).(time.Time)
		if !ok {
			now = time.Now()
		}
		return ValidDOB(fl.Field().String(), now)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.FuncCtx) {
	if err := v.RegisterValidationCtx(tag, fn); err != nil {
		panic(err)
	}
}

// Validate checks d against the email, phone and dob rules as of now.
// It has no side effects. Username is not checked here.
func Validate(d Data, now time.Time) Errors {
	errs := Errors{}
	ctx := context.WithValue(context.Background(), nowKey{}, now)
	err := validate.StructCtx(ctx, d)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable if Data stops being a struct.
		panic(err)
	}
	for _, fe := range verrs {
		f := Field(fe.Field())
		if msg, ok := messages[f]; ok {
			errs[f] = msg
		}
	}
	return errs
}

// ValidEmail reports whether s matches the accepted email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s is exactly ten ASCII digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidDOB reports whether s is a date strictly before now. Dates without
// a time of day are taken as UTC midnight.
func ValidDOB(s string, now time.Time) bool {
	t, ok := ParseDOB(s)
	if !ok {
		return false
	}
	return t.Before(now)
}

// ParseDOB parses a YYYY-MM-DD date, falling back to RFC 3339 timestamps.
func ParseDOB(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
