// Package form holds the sign-up record collected by the modal and the
// rules that check it.
package form

// Field identifies one input of the form.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldDOB      Field = "dob"
)

// Fields lists every field in display order.
var Fields = []Field{FieldUsername, FieldEmail, FieldPhone, FieldDOB}

// Label returns the human label shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldUsername:
		return "Username"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldDOB:
		return "Date of Birth"
	default:
		return string(f)
	}
}

// Data is the four-field record. The zero value is the reset state.
type Data struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email" validate:"emailpattern"`
	Phone    string `yaml:"phone" validate:"tendigits"`
	DOB      string `yaml:"dob" validate:"pastdate"`
}

// Get returns the value of field f. Unknown fields yield "".
func (d Data) Get(f Field) string {
	switch f {
	case FieldUsername:
		return d.Username
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldDOB:
		return d.DOB
	default:
		return ""
	}
}

// With returns a copy of d with field f set to value. d is left untouched.
// Unknown fields return d unchanged.
func (d Data) With(f Field, value string) Data {
	switch f {
	case FieldUsername:
		d.Username = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldDOB:
		d.DOB = value
	}
	return d
}

// IsZero reports whether every field is empty.
func (d Data) IsZero() bool {
	return d == Data{}
}
