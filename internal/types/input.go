package types

import (
	"fmt"
	"strings"
)

const onlyStudentsConstraint = "only student records have this field"

// RecordInput is the raw, unvalidated form of a record as it arrives from a
// client or is read back from storage.
//
// Struct tags serve two purposes:
//
//  1. json:"..."     controls the JSON field names.
//  2. validate:"..." rules checked by go-playground/validator before Build
//     runs. Format rules for each field live in the value-type
//     constructors; the tags here only catch missing fields early.
type RecordInput struct {
	Kind    Kind     `json:"kind"    validate:"required,oneof=person student"`
	Name    string   `json:"name"    validate:"required"`
	Phone   string   `json:"phone"   validate:"required"`
	Email   string   `json:"email"   validate:"required"`
	Address string   `json:"address" validate:"required"`
	Tags    []string `json:"tags"    validate:"dive,required"`
	Subject string   `json:"subject" validate:"required_if=Kind student"`
	Classes []string `json:"classes" validate:"dive,required"`
}

// Build converts in into a Record, validating every field through its
// value-type constructor. The first failure is returned unchanged.
//
// Tags and Classes are optional in the input: a missing list means an
// empty one. A person input must not carry a subject or classes.
func Build(in RecordInput) (Record, error) {
	name, err := NewName(in.Name)
	if err != nil {
		return nil, err
	}
	phone, err := NewPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	email, err := NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	address, err := NewAddress(in.Address)
	if err != nil {
		return nil, err
	}

	tags := make([]Tag, 0, len(in.Tags))
	for _, raw := range in.Tags {
		t, err := NewTag(raw)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	switch in.Kind {
	case KindPerson:
		if in.Subject != "" {
			return nil, &FormatError{Field: "subject", Value: in.Subject, Constraint: onlyStudentsConstraint}
		}
		if len(in.Classes) > 0 {
			return nil, &FormatError{Field: "classes", Value: strings.Join(in.Classes, ", "), Constraint: onlyStudentsConstraint}
		}
		p, err := NewPerson(name, phone, email, address, tags)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindStudent:
		subject, err := NewSubject(in.Subject)
		if err != nil {
			return nil, err
		}
		classes := in.Classes
		if classes == nil {
			classes = []string{}
		}
		s, err := NewStudent(name, phone, email, address, tags, subject, classes)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", in.Kind)
	}
}

// InputOf is the inverse of Build: it flattens r back into raw strings.
// Build(InputOf(r)) yields a record Equal to r.
func InputOf(r Record) RecordInput {
	in := RecordInput{
		Kind:    r.Kind(),
		Name:    r.Name().String(),
		Phone:   r.Phone().String(),
		Email:   r.Email().String(),
		Address: r.Address().String(),
		Tags:    r.Tags().Names(),
	}
	var s *Student
	switch v := r.(type) {
	case Student:
		s = &v
	case *Student:
		s = v
	}
	if s != nil {
		in.Subject = s.Subject().String()
		in.Classes = s.Classes().Slice()
	}
	return in
}
