package contactdex

import (
	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
	searchuc "github.com/kailas-cloud/contactdex/internal/usecase/search"
)

// Find modes reported in FindResult.Mode.
const (
	ModeAny = "any"
	ModeAll = "all"
)

// ContactInput holds the fields of a contact to add.
type ContactInput struct {
	Name        string
	Phone       string
	Email       string
	Address     string
	Educations  []string
	Internships []string
	Modules     []string
	CCAs        []string
}

// Contact is a stored contact.
type Contact struct {
	ID          string
	Name        string
	Phone       string
	Email       string
	Address     string
	Educations  []string
	Internships []string
	Modules     []string
	CCAs        []string
}

// FindResult is the outcome of a find command.
type FindResult struct {
	Mode     string
	Query    string
	Message  string
	Contacts []Contact
}

func (in *ContactInput) toInternal() contactuc.Input {
	return contactuc.Input{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		Tags: map[tag.Category][]string{
			tag.Education:  in.Educations,
			tag.Internship: in.Internships,
			tag.Module:     in.Modules,
			tag.CCA:        in.CCAs,
		},
	}
}

func fromInternalContact(c *domcontact.Contact) Contact {
	return Contact{
		ID:          c.ID(),
		Name:        c.Name(),
		Phone:       c.Phone(),
		Email:       c.Email(),
		Address:     c.Address(),
		Educations:  tagNames(c.Educations()),
		Internships: tagNames(c.Internships()),
		Modules:     tagNames(c.Modules()),
		CCAs:        tagNames(c.CCAs()),
	}
}

func fromInternalContacts(cs []domcontact.Contact) []Contact {
	out := make([]Contact, len(cs))
	for i := range cs {
		out[i] = fromInternalContact(&cs[i])
	}
	return out
}

func fromFindResult(r *searchuc.Result) FindResult {
	return FindResult{
		Mode:     r.Mode.String(),
		Query:    r.Query.String(),
		Message:  r.Message,
		Contacts: fromInternalContacts(r.Contacts),
	}
}

func tagNames(tags []tag.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name()
	}
	return out
}
