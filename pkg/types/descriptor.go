package types

import "fmt"

// Descriptor is the structural identity of a value type: a nominal name, a
// nullability flag, and optionally an element descriptor when the type is an
// array-of-T carrier used by vararg parameters. Descriptors are immutable
// values compared by structural equality; the subtype relation between them
// lives in Hierarchy.
type Descriptor struct {
	name     string
	nullable bool
	elem     *Descriptor
}

func New(name string) Descriptor {
	return Descriptor{name: name}
}

func ArrayOf(elem Descriptor) Descriptor {
	return Descriptor{name: "[]" + elem.name, elem: &elem}
}

var (
	String   = New("string")
	Int      = New("int")
	Float    = New("float")
	Bool     = New("bool")
	Duration = New("duration")
)

func (d Descriptor) Name() string {
	return d.name
}

func (d Descriptor) IsNullable() bool {
	return d.nullable
}

// Nullable returns a copy of d that also admits the absent value.
func (d Descriptor) Nullable() Descriptor {
	d.nullable = true
	return d
}

func (d Descriptor) IsArray() bool {
	return d.elem != nil
}

// Elem returns the element descriptor of an array-of-T carrier.
func (d Descriptor) Elem() (Descriptor, bool) {
	if d.elem == nil {
		return Descriptor{}, false
	}

	return *d.elem, true
}

func (d Descriptor) IsZero() bool {
	return d.name == "" && d.elem == nil
}

func (d Descriptor) String() string {
	if d.elem != nil {
		s := fmt.Sprintf("[]%s", d.elem.String())
		if d.nullable {
			return s + "?"
		}
		return s
	}

	if d.nullable {
		return d.name + "?"
	}

	return d.name
}

func Equal(a, b Descriptor) bool {
	if a.name != b.name || a.nullable != b.nullable {
		return false
	}

	if (a.elem == nil) != (b.elem == nil) {
		return false
	}

	if a.elem != nil {
		return Equal(*a.elem, *b.elem)
	}

	return true
}
