package form

import "errors"

// User-facing validation messages. They are static and never parameterized.
const (
	MsgInvalidEmail = "Invalid email. Please check your email address."
	MsgInvalidPhone = "Invalid phone number. Please enter a 10-digit phone number."
	MsgInvalidDOB   = "Invalid date of birth. Date of birth cannot be in the future."
	MsgRequired     = "Please fill out this field."
	MsgSubmitted    = "Form submitted successfully!"
)

// Sentinel errors, one per validation kind. Match with errors.Is against
// the error returned by Errors.Err.
var (
	ErrInvalidEmail = errors.New("form: invalid email")
	ErrInvalidPhone = errors.New("form: invalid phone")
	ErrInvalidDOB   = errors.New("form: invalid date of birth")
)

// checkedFields is the order errors are reported in.
var checkedFields = []Field{FieldEmail, FieldPhone, FieldDOB}

var kinds = map[Field]error{
	FieldEmail: ErrInvalidEmail,
	FieldPhone: ErrInvalidPhone,
	FieldDOB:   ErrInvalidDOB,
}

// CheckedFields returns the fields Validate checks, in report order.
func CheckedFields() []Field {
	return append([]Field(nil), checkedFields...)
}

// Errors maps a field to its validation message. A missing key means the
// field has no known error. A nil Errors is empty.
type Errors map[Field]string

// Empty reports whether there are no errors.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Fields returns the fields with errors in email, phone, dob order.
func (e Errors) Fields() []Field {
	var out []Field
	for _, f := range checkedFields {
		if _, ok := e[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Ordered returns the messages in email, phone, dob order, skipping
// fields without an error.
func (e Errors) Ordered() []string {
	var out []string
	for _, f := range e.Fields() {
		out = append(out, e[f])
	}
	return out
}

// Err returns nil for no errors, otherwise a joined error of *FieldError
// values in report order.
func (e Errors) Err() error {
	var errs []error
	for _, f := range e.Fields() {
		errs = append(errs, &FieldError{Field: f, Message: e[f]})
	}
	return errors.Join(errs...)
}

// FieldError is a single field's validation failure.
type FieldError struct {
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel for the field's validation kind.
func (e *FieldError) Unwrap() error {
	return kinds[e.Field]
}
