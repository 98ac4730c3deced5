package query

import (
	"fmt"

	"github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/contactdex/internal/domain/search/mode"
	"github.com/kailas-cloud/contactdex/internal/domain/search/predicate"
)

// MessageContactsListed is the summary shown after a find.
const MessageContactsListed = "%d contacts listed!"

// Query is a parsed and compiled find command.
type Query struct {
	raw        string
	searchMode mode.Mode
	criteria   criteria.Descriptor
	predicate  predicate.Predicate
}

// New compiles d under m into a Query. raw is the original argument string.
func New(raw string, m mode.Mode, d *criteria.Descriptor) (Query, error) {
	p, err := predicate.Compile(d, m)
	if err != nil {
		return Query{}, err
	}
	return Query{raw: raw, searchMode: m, criteria: *d, predicate: p}, nil
}

// Raw returns the argument string the query was parsed from.
func (q *Query) Raw() string { return q.raw }

// Mode returns the cross-field combination mode.
func (q *Query) Mode() mode.Mode { return q.searchMode }

// Fields returns the supplied fields in canonical order.
func (q *Query) Fields() []criteria.Field { return q.criteria.Present() }

// Criteria returns a copy of the search descriptor.
func (q *Query) Criteria() criteria.Descriptor { return q.criteria }

// Predicate returns the compiled predicate.
func (q *Query) Predicate() predicate.Predicate { return q.predicate }

// Matches reports whether c satisfies the query.
func (q *Query) Matches(c *contact.Contact) bool {
	return q.predicate.Match(c)
}

// Filter returns the matching contacts in their original order.
func (q *Query) Filter(contacts []contact.Contact) []contact.Contact {
	out := make([]contact.Contact, 0, len(contacts))
	for i := range contacts {
		if q.predicate.Match(&contacts[i]) {
			out = append(out, contacts[i])
		}
	}
	return out
}

// Summary returns the user-facing message for n matches.
func (q *Query) Summary(n int) string {
	return fmt.Sprintf(MessageContactsListed, n)
}

func (q *Query) String() string {
	return fmt.Sprintf("%s %v", q.searchMode, q.predicate)
}
