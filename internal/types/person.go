package types

import "strings"

// Person is a plain address-book contact.
// All fields are present and validated, and a Person never changes after
// NewPerson returns it.
type Person struct {
	name    Name
	phone   Phone
	email   Email
	address Address
	tags    TagSet
}

// NewPerson builds a Person. Every value must come from its constructor
// and tags must be non-nil (an empty slice is fine); otherwise a
// *NullArgumentError names the missing parameter.
func NewPerson(name Name, phone Phone, email Email, address Address, tags []Tag) (Person, error) {
	switch {
	case name.IsZero():
		return Person{}, nullArg("name")
	case phone.IsZero():
		return Person{}, nullArg("phone")
	case email.IsZero():
		return Person{}, nullArg("email")
	case address.IsZero():
		return Person{}, nullArg("address")
	case tags == nil:
		return Person{}, nullArg("tags")
	}
	for _, t := range tags {
		if t.IsZero() {
			return Person{}, nullArg("tags")
		}
	}

	return newPerson(name, phone, email, address, NewTagSet(tags...)), nil
}

func newPerson(name Name, phone Phone, email Email, address Address, tags TagSet) Person {
	return Person{name: name, phone: phone, email: email, address: address, tags: tags}
}

func (p Person) Kind() Kind { return KindPerson }

func (p Person) Name() Name { return p.name }

func (p Person) Phone() Phone { return p.phone }

func (p Person) Email() Email { return p.email }

func (p Person) Address() Address { return p.address }

// Tags returns the person's tags. TagSet is immutable, so the result is
// safe to hand out.
func (p Person) Tags() TagSet { return p.tags }

func (p Person) SubjectText() string { return "" }

func (p Person) ClassesText() string { return "" }

func (p Person) String() string {
	var b strings.Builder
	b.WriteString("Person: ")
	p.writeContact(&b)
	p.writeTags(&b)
	return b.String()
}

// writeContact writes "<name>; Phone: ...; Email: ...; Address: ...".
func (p Person) writeContact(b *strings.Builder) {
	b.WriteString(p.name.String())
	b.WriteString("; Phone: ")
	b.WriteString(p.phone.String())
	b.WriteString("; Email: ")
	b.WriteString(p.email.String())
	b.WriteString("; Address: ")
	b.WriteString(p.address.String())
}

// writeTags appends "; Tags: " and each tag followed by a space, or
// nothing when there are no tags.
func (p Person) writeTags(b *strings.Builder) {
	if p.tags.IsEmpty() {
		return
	}
	b.WriteString("; Tags: ")
	for _, t := range p.tags.Slice() {
		b.WriteString(t.String())
		b.WriteByte(' ')
	}
}

// Equal accepts both Person and *Person.
func (p Person) Equal(other Record) bool {
	switch o := other.(type) {
	case Person:
		return p.sameFields(o)
	case *Person:
		return o != nil && p.sameFields(*o)
	default:
		return false
	}
}

func (p Person) sameFields(o Person) bool {
	return p.name.Equal(o.name) &&
		p.phone.Equal(o.phone) &&
		p.email.Equal(o.email) &&
		p.address.Equal(o.address) &&
		p.tags.Equal(o.tags)
}

func (p Person) Hash() uint64 {
	h := newHasher(KindPerson)
	p.hashFields(h)
	return h.sum()
}

func (p Person) hashFields(h hasher) {
	h.field(p.name.String())
	h.field(p.phone.String())
	h.field(p.email.String())
	h.field(p.address.String())
	h.list(p.tags.Names())
}
