package tag

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is the tag group a tag belongs to.
type Category string

// Tag categories.
const (
	Education  Category = "education"
	Internship Category = "internship"
	Module     Category = "module"
	CCA        Category = "cca"
)

// Categories lists all categories in canonical order.
func Categories() []Category {
	return []Category{Education, Internship, Module, CCA}
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	return c == Education || c == Internship || c == Module || c == CCA
}

// MaxNameLength is the maximum tag name length.
const MaxNameLength = 64

var nameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.+#&-]+$`)

// Tag is a category-scoped label (immutable value object).
type Tag struct {
	category Category
	name     string
}

// New validates and creates a Tag.
// Name: non-blank, a single word of letters, digits and _.+#&-.
func New(category Category, name string) (Tag, error) {
	if !category.IsValid() {
		return Tag{}, fmt.Errorf("invalid tag category %q", category)
	}
	if name == "" {
		return Tag{}, fmt.Errorf("%s tag must not be blank", category)
	}
	if len(name) > MaxNameLength {
		return Tag{}, fmt.Errorf("%s tag too long (max %d)", category, MaxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return Tag{}, fmt.Errorf("%s tag %q must be a single word of letters, digits or _.+#&-", category, name)
	}
	return Tag{category: category, name: name}, nil
}

// Reconstruct creates a Tag without validation (storage hydration).
func Reconstruct(category Category, name string) Tag {
	return Tag{category: category, name: name}
}

// Category returns the tag group.
func (t Tag) Category() Category { return t.category }

// Name returns the tag label as entered.
func (t Tag) Name() string { return t.name }

// Equal reports whether both tags share a category and have case-insensitively equal names.
func (t Tag) Equal(other Tag) bool {
	return t.category == other.category && strings.EqualFold(t.name, other.name)
}

func (t Tag) String() string { return string(t.category) + ":" + t.name }
