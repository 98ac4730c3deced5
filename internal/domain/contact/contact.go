package contact

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
)

var (
	nameRegex  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{3,}$`)
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*$`)
)

// MaxAddressLength is the maximum address length in bytes.
const MaxAddressLength = 512

// Contact is the contact aggregate (immutable value object).
type Contact struct {
	id      string
	seq     int64
	name    string
	phone   string
	email   string
	address string
	tags    map[tag.Category][]tag.Tag
}

// New validates and creates a Contact without identity.
// Name: letters, digits and spaces. Phone: at least 3 digits. Email: local@domain.
// Address: non-blank, max 512 bytes. Tags are grouped by their category.
func New(name, phone, email, address string, tags []tag.Tag) (Contact, error) {
	name = strings.TrimSpace(name)
	if !nameRegex.MatchString(name) {
		return Contact{}, fmt.Errorf("name must contain only letters, digits and spaces, and must not be blank")
	}
	if !phoneRegex.MatchString(phone) {
		return Contact{}, fmt.Errorf("phone must contain only digits and be at least 3 digits long")
	}
	if !emailRegex.MatchString(email) {
		return Contact{}, fmt.Errorf("email %q must be of the format local-part@domain", email)
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return Contact{}, fmt.Errorf("address must not be blank")
	}
	if len(address) > MaxAddressLength {
		return Contact{}, fmt.Errorf("address too long (max %d bytes)", MaxAddressLength)
	}

	grouped := make(map[tag.Category][]tag.Tag)
	for _, t := range tags {
		if !t.Category().IsValid() {
			return Contact{}, fmt.Errorf("tag %q has invalid category", t.Name())
		}
		if containsTag(grouped[t.Category()], t) {
			continue
		}
		grouped[t.Category()] = append(grouped[t.Category()], t)
	}

	return Contact{
		name:    name,
		phone:   phone,
		email:   email,
		address: address,
		tags:    grouped,
	}, nil
}

// Reconstruct creates a Contact without validation (storage hydration).
// The tag map is copied; later changes by the caller do not reach the contact.
func Reconstruct(
	id string, seq int64, name, phone, email, address string, tags map[tag.Category][]tag.Tag,
) Contact {
	own := make(map[tag.Category][]tag.Tag, len(tags))
	for cat, ts := range tags {
		own[cat] = slices.Clone(ts)
	}
	return Contact{
		id: id, seq: seq, name: name, phone: phone, email: email, address: address, tags: own,
	}
}

// WithIdentity returns a copy of the contact bound to a storage id and sequence number.
func (c Contact) WithIdentity(id string, seq int64) Contact {
	c.id = id
	c.seq = seq
	return c
}

// ID returns the storage identifier.
func (c *Contact) ID() string { return c.id }

// Seq returns the insertion sequence used for stable ordering.
func (c *Contact) Seq() int64 { return c.seq }

// Name returns the contact name.
func (c *Contact) Name() string { return c.name }

// Phone returns the phone number.
func (c *Contact) Phone() string { return c.phone }

// Email returns the email address.
func (c *Contact) Email() string { return c.email }

// Address returns the postal address.
func (c *Contact) Address() string { return c.address }

// Tags returns a copy of the tags of one category.
func (c *Contact) Tags(category tag.Category) []tag.Tag { return slices.Clone(c.tags[category]) }

// HasTag reports whether any tag of the category satisfies match. Nothing is copied.
func (c *Contact) HasTag(category tag.Category, match func(tag.Tag) bool) bool {
	return slices.ContainsFunc(c.tags[category], match)
}

// Educations returns the education tags.
func (c *Contact) Educations() []tag.Tag { return c.Tags(tag.Education) }

// Internships returns the internship tags.
func (c *Contact) Internships() []tag.Tag { return c.Tags(tag.Internship) }

// Modules returns the module tags.
func (c *Contact) Modules() []tag.Tag { return c.Tags(tag.Module) }

// CCAs returns the co-curricular activity tags.
func (c *Contact) CCAs() []tag.Tag { return c.Tags(tag.CCA) }

// IsSame reports whether both contacts share the same name.
// This is weaker than full equality and is used to reject duplicates.
func (c *Contact) IsSame(other *Contact) bool {
	if other == nil {
		return false
	}
	return c.name == other.name
}

func containsTag(tags []tag.Tag, t tag.Tag) bool {
	for _, existing := range tags {
		if existing.Equal(t) {
			return true
		}
	}
	return false
}
