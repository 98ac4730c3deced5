// Package criteria holds the per-field search values of a find command.
package criteria

import (
	"fmt"

	"github.com/kailas-cloud/contactdex/internal/domain"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
)

// Slot is the optional value list of one field.
// A zero Slot is absent; a present Slot may still be empty until validated.
type Slot[T any] struct {
	values  []T
	present bool
}

// Present reports whether the field was supplied.
func (s Slot[T]) Present() bool { return s.present }

// Values returns a copy of the supplied values.
func (s Slot[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of supplied values.
func (s Slot[T]) Len() int { return len(s.values) }

func newSlot[T any](values []T) Slot[T] {
	cp := make([]T, len(values))
	copy(cp, values)
	return Slot[T]{values: cp, present: true}
}

// Descriptor holds one optional value list per queryable field.
// Scalar fields carry words, categorical fields carry tags bound to the field's category.
type Descriptor struct {
	words [numFields]Slot[string]
	tags  [numFields]Slot[tag.Tag]
}

// SetWords populates a scalar field.
func (d *Descriptor) SetWords(f Field, values []string) error {
	if !f.IsValid() || f.Kind() != Scalar {
		return fmt.Errorf("field %s does not take words", f)
	}
	d.words[f] = newSlot(values)
	return nil
}

// SetTags populates a categorical field. Every tag must belong to the field's category.
func (d *Descriptor) SetTags(f Field, values []tag.Tag) error {
	if !f.IsValid() || f.Kind() != Categorical {
		return fmt.Errorf("field %s does not take tags", f)
	}
	for _, t := range values {
		if t.Category() != f.Category() {
			return fmt.Errorf("tag %s does not belong to field %s", t, f)
		}
	}
	d.tags[f] = newSlot(values)
	return nil
}

// Words returns the slot of a scalar field.
func (d *Descriptor) Words(f Field) Slot[string] {
	if !f.IsValid() {
		return Slot[string]{}
	}
	return d.words[f]
}

// Tags returns the slot of a categorical field.
func (d *Descriptor) Tags(f Field) Slot[tag.Tag] {
	if !f.IsValid() {
		return Slot[tag.Tag]{}
	}
	return d.tags[f]
}

// Has reports whether field f was supplied.
func (d *Descriptor) Has(f Field) bool {
	if !f.IsValid() {
		return false
	}
	if f.Kind() == Scalar {
		return d.words[f].Present()
	}
	return d.tags[f].Present()
}

// Present lists supplied fields in canonical order.
func (d *Descriptor) Present() []Field {
	var out []Field
	for _, f := range Fields() {
		if d.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// IsAnyFieldPresent reports whether at least one field was supplied.
func (d *Descriptor) IsAnyFieldPresent() bool {
	for _, f := range Fields() {
		if d.Has(f) {
			return true
		}
	}
	return false
}

func (d *Descriptor) slotLen(f Field) int {
	if f.Kind() == Scalar {
		return d.words[f].Len()
	}
	return d.tags[f].Len()
}

// Validate checks that at least one field is supplied and no supplied field is empty.
func (d *Descriptor) Validate() error {
	if !d.IsAnyFieldPresent() {
		return domain.NewUsageError(domain.ErrNoParameters, domain.MessageNoParameters)
	}
	for _, f := range d.Present() {
		if d.slotLen(f) == 0 {
			return domain.NewUsageError(domain.ErrInvalidValue,
				fmt.Sprintf("At least one %s value must be provided", f))
		}
	}
	return nil
}
