package types

import "strings"

// Student is a Person who studies a subject and attends a set of classes.
// Its tag set always contains the "student" label.
//
// Like Person, a Student is immutable: both the tags and the classes are
// copied at construction, so later changes to the caller's slices are not
// visible through the Student. The embedded base is unexported so callers
// get the Person accessors but cannot replace the contact fields or tags.
type Student struct {
	person

	subject Subject
	classes ClassSet
}

// person lets Student embed Person under an unexported field name.
type person = Person

// NewStudent builds a Student. The contact fields and tags follow the
// NewPerson rules; subject must come from NewSubject and classes must be
// non-nil (it may be empty). The "student" tag is added to a copy of tags.
func NewStudent(name Name, phone Phone, email Email, address Address, tags []Tag,
	subject Subject, classes []string) (Student, error) {
	base, err := NewPerson(name, phone, email, address, tags)
	if err != nil {
		return Student{}, err
	}
	if subject.IsZero() {
		return Student{}, nullArg("subject")
	}
	if classes == nil {
		return Student{}, nullArg("classes")
	}

	base.tags = WithRequiredLabel(base.tags, studentTag)

	return Student{
		person:  base,
		subject: subject,
		classes: NewClassSet(classes...),
	}, nil
}

func (s Student) Kind() Kind { return KindStudent }

func (s Student) Subject() Subject { return s.subject }

// Classes returns the class set. ClassSet is immutable.
func (s Student) Classes() ClassSet { return s.classes }

func (s Student) SubjectText() string { return s.subject.String() }

// ClassesText joins the class names with ", ". An empty set gives "".
func (s Student) ClassesText() string { return s.classes.String() }

func (s Student) String() string {
	var b strings.Builder
	b.WriteString("Student: ")
	s.writeContact(&b)
	b.WriteString("; Subject: ")
	b.WriteString(s.subject.String())
	b.WriteString("; Classes: ")
	b.WriteString(s.classes.String())
	s.writeTags(&b)
	return b.String()
}

// Equal accepts both Student and *Student.
func (s Student) Equal(other Record) bool {
	var o Student
	switch v := other.(type) {
	case Student:
		o = v
	case *Student:
		if v == nil {
			return false
		}
		o = *v
	default:
		return false
	}
	return s.sameFields(o.person) &&
		s.subject.Equal(o.subject) &&
		s.classes.Equal(o.classes)
}

func (s Student) Hash() uint64 {
	h := newHasher(KindStudent)
	s.hashFields(h)
	h.field(s.subject.String())
	h.list(s.classes.Slice())
	return h.sum()
}
