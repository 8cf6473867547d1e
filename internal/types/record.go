// Package types holds the address-book record model shared across the
// application: validated value types (Name, Phone, ...), immutable tag and
// class sets, and the record variants built from them (Person, Student).
//
// Keeping them in one place prevents import cycles: handlers, storage and
// utils can all import types without depending on each other.
package types

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Kind names a record variant. The set of kinds is closed.
type Kind string

const (
	KindPerson  Kind = "person"
	KindStudent Kind = "student"
)

// StudentLabel is the tag every Student carries.
const StudentLabel = "student"

// studentTag is built directly instead of through NewTag: the label is a
// constant that is known to satisfy the tag constraint.
var studentTag = Tag{name: StudentLabel}

// Record is the contract every record variant satisfies. Collaborators
// (storage, HTTP handlers) only depend on this interface and switch on
// Kind, or type-assert, when they need variant fields.
type Record interface {
	fmt.Stringer

	Kind() Kind
	Name() Name
	Phone() Phone
	Email() Email
	Address() Address
	Tags() TagSet

	// SubjectText and ClassesText are empty for variants without a
	// subject or classes.
	SubjectText() string
	ClassesText() string

	// Equal reports structural equality. Records of different kinds are
	// never equal.
	Equal(other Record) bool

	// Hash is consistent with Equal: equal records hash equally.
	Hash() uint64
}

// hasher feeds fields into an xxhash digest, separating them with a zero
// byte so ("ab","c") and ("a","bc") do not collide trivially.
type hasher struct {
	d *xxhash.Digest
}

func newHasher(kind Kind) hasher {
	h := hasher{d: xxhash.New()}
	h.field(string(kind))
	return h
}

func (h hasher) field(s string) {
	_, _ = h.d.WriteString(s)
	_, _ = h.d.Write([]byte{0})
}

// list hashes an already-sorted slice as one field.
func (h hasher) list(items []string) {
	for _, s := range items {
		_, _ = h.d.WriteString(s)
		_, _ = h.d.Write([]byte{0x1f})
	}
	_, _ = h.d.Write([]byte{0})
}

func (h hasher) sum() uint64 {
	return h.d.Sum64()
}
