package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
)

type contactJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Educations  []string `json:"educations"`
	Internships []string `json:"internships"`
	Modules     []string `json:"modules"`
	CCAs        []string `json:"ccas"`
}

func renderContacts(w io.Writer, format string, contacts []domcontact.Contact, message string) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, contacts, message)
	default:
		return renderTable(w, contacts, message)
	}
}

func renderTable(w io.Writer, contacts []domcontact.Contact, message string) error {
	if len(contacts) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Name", "Phone", "Email", "Address", "Education", "Internship", "Module", "CCA"})
		for i := range contacts {
			c := &contacts[i]
			t.AppendRow(table.Row{
				i + 1, c.Name(), c.Phone(), c.Email(), c.Address(),
				joinTags(c.Educations()), joinTags(c.Internships()), joinTags(c.Modules()), joinTags(c.CCAs()),
			})
		}
		t.Render()
	}
	_, _ = fmt.Fprintln(w, message)
	return nil
}

func renderJSON(w io.Writer, contacts []domcontact.Contact, message string) error {
	items := make([]contactJSON, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		items[i] = contactJSON{
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

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Message string        `json:"message"`
		Items   []contactJSON `json:"items"`
	}{message, items})
}

func tagNames(tags []tag.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name()
	}
	return out
}

func joinTags(tags []tag.Tag) string {
	return strings.Join(tagNames(tags), ", ")
}
