package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentInput() RecordInput {
	return RecordInput{
		Kind:    KindStudent,
		Name:    "Alex Yeo",
		Phone:   "91234567",
		Email:   "alex@example.com",
		Address: "123 Clementi Rd",
		Tags:    []string{"friends"},
		Subject: "Math",
		Classes: []string{"Math101", "Phys201"},
	}
}

func TestBuild_Student(t *testing.T) {
	r, err := Build(studentInput())
	require.NoError(t, err)

	s, ok := r.(Student)
	require.True(t, ok)
	assert.Equal(t, "Math", s.Subject().String())
	assert.Equal(t, []string{"friends", "student"}, s.Tags().Names())
	assert.Equal(t, "Math101, Phys201", s.ClassesText())
}

func TestBuild_MissingListsMeanEmpty(t *testing.T) {
	in := studentInput()
	in.Tags = nil
	in.Classes = nil

	r, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, "", r.ClassesText())
	assert.Equal(t, []string{"student"}, r.Tags().Names())
}

func TestBuild_Person(t *testing.T) {
	in := studentInput()
	in.Kind = KindPerson
	in.Subject = ""
	in.Classes = nil

	r, err := Build(in)
	require.NoError(t, err)
	assert.IsType(t, Person{}, r)
	assert.Equal(t, []string{"friends"}, r.Tags().Names())
}

func TestBuild_Errors(t *testing.T) {
	in := studentInput()
	in.Email = "not-an-email"
	_, err := Build(in)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "email", formatErr.Field)

	in = studentInput()
	in.Kind = "teacher"
	_, err = Build(in)
	assert.EqualError(t, err, `unknown record kind "teacher"`)
}

func TestInputOf_RoundTrip(t *testing.T) {
	r, err := Build(studentInput())
	require.NoError(t, err)

	back, err := Build(InputOf(r))
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
	assert.Equal(t, r.Hash(), back.Hash())
}

func TestRecordInput_Validation(t *testing.T) {
	in := studentInput()
	require.NoError(t, Validator().Struct(in))

	in.Subject = ""
	assert.Error(t, Validator().Struct(in))

	in.Kind = KindPerson
	assert.NoError(t, Validator().Struct(in))

	in.Kind = "teacher"
	assert.Error(t, Validator().Struct(in))
}

func TestBuild_PersonRejectsStudentFields(t *testing.T) {
	in := studentInput()
	in.Kind = KindPerson
	_, err := Build(in)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "subject", formatErr.Field)

	in.Subject = ""
	_, err = Build(in)
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "classes", formatErr.Field)
	assert.Equal(t, "Math101, Phys201", formatErr.Value)

	in.Classes = []string{}
	_, err = Build(in)
	assert.NoError(t, err)
}

func TestInputOf_StudentPointer(t *testing.T) {
	r, err := Build(studentInput())
	require.NoError(t, err)
	s := r.(Student)

	in := InputOf(&s)
	assert.Equal(t, KindStudent, in.Kind)
	assert.Equal(t, "Math", in.Subject)
	assert.Equal(t, []string{"Math101", "Phys201"}, in.Classes)
}
