package types_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/address-book/internal/types"
)

// Records are only reachable through accessors from outside the package.
// An exported field (including an exported embedded struct) would let a
// caller overwrite contact fields or drop the "student" tag.
func TestRecords_HaveNoExportedFields(t *testing.T) {
	for _, v := range []any{types.Person{}, types.Student{}, types.TagSet{}, types.ClassSet{}} {
		typ := reflect.TypeOf(v)
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			assert.False(t, f.IsExported(), "%s.%s is writable by callers", typ.Name(), f.Name)
		}
	}
}

func TestStudent_KeepsStudentTagAfterCopy(t *testing.T) {
	r, err := types.Build(types.RecordInput{
		Kind:    types.KindStudent,
		Name:    "Alex Yeo",
		Phone:   "91234567",
		Email:   "alex@example.com",
		Address: "123 Clementi Rd",
		Subject: "Math",
		Classes: []string{"Math101"},
	})
	require.NoError(t, err)

	s, ok := r.(types.Student)
	require.True(t, ok)

	copied := s
	studentTag, err := types.NewTag(types.StudentLabel)
	require.NoError(t, err)
	assert.True(t, copied.Tags().Contains(studentTag))
	assert.True(t, copied.Equal(s))
	assert.Equal(t, "Alex Yeo", copied.Name().String())
}
