package types

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every value-type constructor. A *validator.Validate
// caches struct metadata and is safe for concurrent use, so one instance is
// enough for the whole package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// "alnumspace" accepts letters, digits and inner spaces, and must not
	// start with a space. validator's own "alphanum" rejects spaces.
	_ = v.RegisterValidation("alnumspace", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for i, r := range s {
			if r == ' ' && i > 0 {
				continue
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	})

	return v
}

// Validator exposes the package validator so the HTTP layer checks request
// payloads with the same rule set (including "alnumspace").
func Validator() *validator.Validate {
	return validate
}

// check runs a single validator tag expression against raw and converts a
// failure into a *FormatError carrying the human-readable constraint.
func check(field, raw, tag, constraint string) (string, error) {
	s := strings.TrimSpace(raw)
	if err := validate.Var(s, tag); err != nil {
		return "", &FormatError{Field: field, Value: raw, Constraint: constraint}
	}
	return s, nil
}

// Name is a person's full name.
type Name struct{ value string }

const nameConstraint = "names should only contain alphanumeric characters and spaces, and it should not be blank"

func NewName(raw string) (Name, error) {
	s, err := check("name", raw, "required,alnumspace", nameConstraint)
	if err != nil {
		return Name{}, err
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool { return n.value == "" }
func (n Name) Equal(other Name) bool { return n.value == other.value }

// Phone is a phone number made only of digits.
type Phone struct{ value string }

const phoneConstraint = "phone numbers should only contain digits, and it should be at least 3 digits long"

func NewPhone(raw string) (Phone, error) {
	s, err := check("phone", raw, "required,number,min=3", phoneConstraint)
	if err != nil {
		return Phone{}, err
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }
func (p Phone) IsZero() bool { return p.value == "" }
func (p Phone) Equal(other Phone) bool { return p.value == other.value }

// Email is an address in local-part@domain form.
type Email struct{ value string }

const emailConstraint = "emails should be of the format local-part@domain"

func NewEmail(raw string) (Email, error) {
	s, err := check("email", raw, "required,email", emailConstraint)
	if err != nil {
		return Email{}, err
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool { return e.value == "" }
func (e Email) Equal(other Email) bool { return e.value == other.value }

// Address is a free-form postal address; any non-blank text is accepted.
type Address struct{ value string }

const addressConstraint = "addresses can take any values, and it should not be blank"

func NewAddress(raw string) (Address, error) {
	s, err := check("address", raw, "required", addressConstraint)
	if err != nil {
		return Address{}, err
	}
	return Address{value: s}, nil
}

func (a Address) String() string { return a.value }
func (a Address) IsZero() bool { return a.value == "" }
func (a Address) Equal(other Address) bool { return a.value == other.value }

// Subject is the academic subject a student is associated with.
type Subject struct{ value string }

const subjectConstraint = "subjects should only contain alphanumeric characters and spaces, and it should not be blank"

func NewSubject(raw string) (Subject, error) {
	s, err := check("subject", raw, "required,alnumspace", subjectConstraint)
	if err != nil {
		return Subject{}, err
	}
	return Subject{value: s}, nil
}

func (s Subject) String() string { return s.value }
func (s Subject) IsZero() bool { return s.value == "" }
func (s Subject) Equal(other Subject) bool { return s.value == other.value }

// Tag is a single free-form label. Tags compare by name.
type Tag struct{ name string }

const tagConstraint = "tag names should be alphanumeric"

func NewTag(raw string) (Tag, error) {
	s, err := check("tag", raw, "required,alphanum", tagConstraint)
	if err != nil {
		return Tag{}, err
	}
	return Tag{name: s}, nil
}

// Name returns the bare tag name.
func (t Tag) Name() string { return t.name }

// String renders the tag the way summaries print it: "[name]".
func (t Tag) String() string { return "[" + t.name + "]" }

func (t Tag) IsZero() bool { return t.name == "" }
func (t Tag) Equal(other Tag) bool { return t.name == other.name }
