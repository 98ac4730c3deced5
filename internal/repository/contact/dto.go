package contact

import (
	"encoding/json"
	"fmt"
	"strconv"

	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
)

// Hash field names.
const (
	fieldID      = "id"
	fieldName    = "name"
	fieldPhone   = "phone"
	fieldEmail   = "email"
	fieldAddress = "address"
	fieldSeq     = "seq"
	tagFieldPfx  = "tags_"
)

func tagField(c tag.Category) string { return tagFieldPfx + string(c) }

// contactToHash converts a domain Contact to a map for HSET.
// Each tag category becomes a JSON array of tag names.
func contactToHash(c *domcontact.Contact) (map[string]string, error) {
	m := map[string]string{
		fieldID:      c.ID(),
		fieldName:    c.Name(),
		fieldPhone:   c.Phone(),
		fieldEmail:   c.Email(),
		fieldAddress: c.Address(),
		fieldSeq:     strconv.FormatInt(c.Seq(), 10),
	}
	for _, cat := range tag.Categories() {
		tags := c.Tags(cat)
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name()
		}
		raw, err := json.Marshal(names)
		if err != nil {
			return nil, fmt.Errorf("marshal %s tags: %w", cat, err)
		}
		m[tagField(cat)] = string(raw)
	}
	return m, nil
}

// contactFromHash hydrates a domain Contact from an HGETALL result map.
func contactFromHash(m map[string]string) (domcontact.Contact, error) {
	seq, err := strconv.ParseInt(m[fieldSeq], 10, 64)
	if err != nil {
		return domcontact.Contact{}, fmt.Errorf("invalid seq: %w", err)
	}

	tags := make(map[tag.Category][]tag.Tag)
	for _, cat := range tag.Categories() {
		raw := m[tagField(cat)]
		if raw == "" {
			continue
		}
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return domcontact.Contact{}, fmt.Errorf("unmarshal %s tags: %w", cat, err)
		}
		for _, n := range names {
			tags[cat] = append(tags[cat], tag.Reconstruct(cat, n))
		}
	}

	return domcontact.Reconstruct(
		m[fieldID], seq, m[fieldName], m[fieldPhone], m[fieldEmail], m[fieldAddress], tags,
	), nil
}
