package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPerson(t *testing.T) {
	c := alex(t)

	p, err := NewPerson(c.name, c.phone, c.email, c.address, []Tag{})
	require.NoError(t, err)

	assert.Equal(t, KindPerson, p.Kind())
	assert.Empty(t, p.SubjectText())
	assert.Empty(t, p.ClassesText())
	assert.True(t, p.Tags().IsEmpty())
	assert.Equal(t, "Person: Alex Yeo; Phone: 91234567; Email: alex@example.com; Address: 123 Clementi Rd", p.String())
}

func TestNewPerson_TagsInSummary(t *testing.T) {
	c := alex(t)

	p, err := NewPerson(c.name, c.phone, c.email, c.address, []Tag{mustTag(t, "owesMoney"), mustTag(t, "friends")})
	require.NoError(t, err)

	assert.Equal(t, "Person: Alex Yeo; Phone: 91234567; Email: alex@example.com; Address: 123 Clementi Rd; Tags: [friends] [owesMoney] ",
		p.String())
}

func TestNewPerson_NullArguments(t *testing.T) {
	c := alex(t)

	_, err := NewPerson(c.name, Phone{}, c.email, c.address, []Tag{})
	assert.True(t, errors.Is(err, ErrNullArgument))
	assert.EqualError(t, err, "phone must not be null")

	_, err = NewPerson(c.name, c.phone, Email{}, c.address, []Tag{})
	assert.EqualError(t, err, "email must not be null")

	_, err = NewPerson(c.name, c.phone, c.email, Address{}, []Tag{})
	assert.EqualError(t, err, "address must not be null")

	_, err = NewPerson(c.name, c.phone, c.email, c.address, []Tag{{}})
	assert.EqualError(t, err, "tags must not be null")
}

func TestPerson_EqualAndHash(t *testing.T) {
	c := alex(t)

	a, err := NewPerson(c.name, c.phone, c.email, c.address, []Tag{mustTag(t, "a"), mustTag(t, "b")})
	require.NoError(t, err)
	b, err := NewPerson(c.name, c.phone, c.email, c.address, []Tag{mustTag(t, "b"), mustTag(t, "a"), mustTag(t, "a")})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	otherPhone, err := NewPhone("98765432")
	require.NoError(t, err)
	d, err := NewPerson(c.name, otherPhone, c.email, c.address, []Tag{mustTag(t, "a"), mustTag(t, "b")})
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
}

func TestPerson_EqualAcceptsPointer(t *testing.T) {
	c := alex(t)
	p, err := NewPerson(c.name, c.phone, c.email, c.address, []Tag{})
	require.NoError(t, err)

	assert.True(t, p.Equal(&p))
	assert.False(t, p.Equal((*Person)(nil)))

	s := newTestStudent(t, []Tag{}, "Math")
	assert.False(t, p.Equal(&s))
}
