// Package predicate compiles search criteria into matchers over contacts.
//
// Every predicate is an immutable value: it captures its own copy of the
// search values and never writes to shared state, so one compiled predicate
// can be evaluated from many goroutines at once.
package predicate

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
	"github.com/kailas-cloud/contactdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/contactdex/internal/domain/search/mode"
)

// Predicate reports whether a contact matches.
type Predicate interface {
	Match(c *contact.Contact) bool
}

// Func adapts a plain function to Predicate.
type Func func(c *contact.Contact) bool

// Match calls f(c).
func (f Func) Match(c *contact.Contact) bool { return f(c) }

// Const matches every contact (true) or none (false).
type Const bool

// Match returns the constant.
func (k Const) Match(*contact.Contact) bool { return bool(k) }

func (k Const) String() string {
	if k {
		return "true"
	}
	return "false"
}

// Words matches a scalar attribute containing any of its values as a whole word, ignoring case.
type Words struct {
	field  criteria.Field
	values []string
}

// NewWords creates a whole-word predicate over a scalar field.
func NewWords(f criteria.Field, values []string) (Words, error) {
	if !f.IsValid() || f.Kind() != criteria.Scalar {
		return Words{}, fmt.Errorf("field %s is not a scalar field", f)
	}
	cp := make([]string, len(values))
	copy(cp, values)
	return Words{field: f, values: cp}, nil
}

// Match reports whether any word of the attribute equals any value.
func (w Words) Match(c *contact.Contact) bool {
	for _, word := range strings.Fields(scalarValue(c, w.field)) {
		for _, v := range w.values {
			if strings.EqualFold(word, v) {
				return true
			}
		}
	}
	return false
}

func (w Words) String() string {
	return fmt.Sprintf("%s~%v", w.field, w.values)
}

// Tags matches a contact holding any of its tags in the tag group of the field's category.
type Tags struct {
	category tag.Category
	values   []tag.Tag
}

// NewTags creates a tag-equality predicate over one category.
func NewTags(category tag.Category, values []tag.Tag) (Tags, error) {
	if !category.IsValid() {
		return Tags{}, fmt.Errorf("invalid tag category %q", category)
	}
	for _, v := range values {
		if v.Category() != category {
			return Tags{}, fmt.Errorf("tag %s does not belong to category %s", v, category)
		}
	}
	cp := make([]tag.Tag, len(values))
	copy(cp, values)
	return Tags{category: category, values: cp}, nil
}

// Match reports whether any contact tag of the category equals any value.
func (p Tags) Match(c *contact.Contact) bool {
	return c.HasTag(p.category, func(have tag.Tag) bool {
		for _, want := range p.values {
			if have.Equal(want) {
				return true
			}
		}
		return false
	})
}

func (p Tags) String() string {
	names := make([]string, len(p.values))
	for i, v := range p.values {
		names[i] = v.Name()
	}
	return fmt.Sprintf("%s=%v", p.category, names)
}

// ForField builds the predicate of one supplied field of d.
func ForField(d *criteria.Descriptor, f criteria.Field) (Predicate, error) {
	if !d.Has(f) {
		return nil, fmt.Errorf("field %s was not supplied", f)
	}
	if f.Kind() == criteria.Scalar {
		return NewWords(f, d.Words(f).Values())
	}
	return NewTags(f.Category(), d.Tags(f).Values())
}

// Fold combines preds under a boolean operator given by its identity element:
// true folds with AND, false folds with OR. Evaluation stops at the first
// predicate yielding the absorbing element !identity. No predicates yields identity.
func Fold(identity bool, preds ...Predicate) Predicate {
	cp := make([]Predicate, len(preds))
	copy(cp, preds)
	return fold{identity: identity, preds: cp}
}

type fold struct {
	identity bool
	preds    []Predicate
}

func (f fold) Match(c *contact.Contact) bool {
	for _, p := range f.preds {
		if p.Match(c) != f.identity {
			return !f.identity
		}
	}
	return f.identity
}

func (f fold) String() string {
	op := "or"
	if f.identity {
		op = "and"
	}
	parts := make([]string, 0, len(f.preds)+1)
	parts = append(parts, op)
	for _, p := range f.preds {
		parts = append(parts, fmt.Sprint(p))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Compile validates d and folds one predicate per supplied field, in canonical
// field order, with the operator of m. Absent fields impose no constraint.
func Compile(d *criteria.Descriptor, m mode.Mode) (Predicate, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid search mode %q", m)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	fields := d.Present()
	preds := make([]Predicate, 0, len(fields))
	for _, f := range fields {
		p, err := ForField(d, f)
		if err != nil {
			return nil, fmt.Errorf("build %s predicate: %w", f, err)
		}
		preds = append(preds, p)
	}
	return Fold(m.Identity(), preds...), nil
}

func scalarValue(c *contact.Contact, f criteria.Field) string {
	switch f {
	case criteria.Name:
		return c.Name()
	case criteria.Phone:
		return c.Phone()
	case criteria.Email:
		return c.Email()
	case criteria.Address:
		return c.Address()
	default:
		return ""
	}
}
