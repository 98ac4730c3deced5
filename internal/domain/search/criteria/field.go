package criteria

import "github.com/kailas-cloud/contactdex/internal/domain/contact/tag"

// Field is a queryable contact attribute.
type Field int

// Queryable fields in canonical order.
const (
	Name Field = iota
	Phone
	Email
	Address
	Education
	Internship
	Module
	CCA

	numFields
)

// Kind distinguishes free-text attributes from tag groups.
type Kind int

// Field kinds.
const (
	Scalar Kind = iota
	Categorical
)

var fieldNames = [numFields]string{
	Name:       "name",
	Phone:      "phone",
	Email:      "email",
	Address:    "address",
	Education:  "education",
	Internship: "internship",
	Module:     "module",
	CCA:        "cca",
}

var fieldCategories = [numFields]tag.Category{
	Education:  tag.Education,
	Internship: tag.Internship,
	Module:     tag.Module,
	CCA:        tag.CCA,
}

// Fields lists all queryable fields in canonical order.
func Fields() []Field {
	out := make([]Field, 0, numFields)
	for f := Name; f < numFields; f++ {
		out = append(out, f)
	}
	return out
}

// IsValid reports whether f is a known field.
func (f Field) IsValid() bool { return f >= Name && f < numFields }

// Kind returns Scalar for name/phone/email/address and Categorical for tag groups.
func (f Field) Kind() Kind {
	if f >= Education {
		return Categorical
	}
	return Scalar
}

// Category returns the tag group of a categorical field, or "" for scalar fields.
func (f Field) Category() tag.Category {
	if !f.IsValid() {
		return ""
	}
	return fieldCategories[f]
}

func (f Field) String() string {
	if !f.IsValid() {
		return "unknown"
	}
	return fieldNames[f]
}
