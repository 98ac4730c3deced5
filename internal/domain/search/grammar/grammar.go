// Package grammar parses find command arguments into compiled queries.
//
// The grammar is
//
//	[-s] (MARKER VALUE)...
//
// where MARKER is one of n/ p/ em/ a/ e/ i/ m/ c/. Without -s a contact
// matches when any supplied field matches; with -s every supplied field must
// match. Values given for the same field are always OR-combined.
package grammar

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/contactdex/internal/domain"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
	"github.com/kailas-cloud/contactdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/contactdex/internal/domain/search/mode"
	"github.com/kailas-cloud/contactdex/internal/domain/search/query"
)

// Field markers.
const (
	MarkerName       Marker = "n/"
	MarkerPhone      Marker = "p/"
	MarkerEmail      Marker = "em/"
	MarkerAddress    Marker = "a/"
	MarkerEducation  Marker = "e/"
	MarkerInternship Marker = "i/"
	MarkerModule     Marker = "m/"
	MarkerCCA        Marker = "c/"
)

// DefaultMaxLength is the default upper bound on the argument string length in bytes.
const DefaultMaxLength = 4096

var fieldMarkers = map[criteria.Field]Marker{
	criteria.Name:       MarkerName,
	criteria.Phone:      MarkerPhone,
	criteria.Email:      MarkerEmail,
	criteria.Address:    MarkerAddress,
	criteria.Education:  MarkerEducation,
	criteria.Internship: MarkerInternship,
	criteria.Module:     MarkerModule,
	criteria.CCA:        MarkerCCA,
}

// Markers returns every recognized marker in canonical field order.
func Markers() []Marker {
	fields := criteria.Fields()
	out := make([]Marker, len(fields))
	for i, f := range fields {
		out[i] = fieldMarkers[f]
	}
	return out
}

// MarkerFor returns the marker of field f.
func MarkerFor(f criteria.Field) Marker { return fieldMarkers[f] }

// Parser turns find arguments into queries. The zero value uses DefaultMaxLength.
type Parser struct {
	maxLength int
}

// NewParser creates a Parser rejecting argument strings longer than maxLength bytes.
// maxLength <= 0 selects DefaultMaxLength.
func NewParser(maxLength int) *Parser {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Parser{maxLength: maxLength}
}

// Parse parses args with the default parser.
func Parse(args string) (query.Query, error) {
	return NewParser(0).Parse(args)
}

// Parse tokenizes args, validates every value and compiles the resulting query.
// Errors are *domain.UsageError values wrapping ErrInvalidCommandFormat,
// ErrMultipleWords, ErrInvalidValue or ErrNoParameters.
func (p *Parser) Parse(args string) (query.Query, error) {
	maxLength := p.maxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if len(args) > maxLength {
		return query.Query{}, domain.InvalidCommandFormat()
	}

	am := Tokenize(args, Markers()...)

	m, ok := mode.FromPreamble(am.Preamble())
	if !ok {
		return query.Query{}, domain.InvalidCommandFormat()
	}

	var d criteria.Descriptor
	for _, f := range criteria.Fields() {
		values, ok := am.Values(fieldMarkers[f])
		if !ok {
			continue
		}
		if err := populate(&d, f, values); err != nil {
			return query.Query{}, err
		}
	}

	if !d.IsAnyFieldPresent() {
		return query.Query{}, domain.NewUsageError(domain.ErrNoParameters, domain.MessageNoParameters)
	}

	return query.New(args, m, &d)
}

func populate(d *criteria.Descriptor, f criteria.Field, values []string) error {
	for _, v := range values {
		if err := checkWord(f, v); err != nil {
			return err
		}
	}

	if f.Kind() == criteria.Scalar {
		return d.SetWords(f, values)
	}

	tags := make([]tag.Tag, 0, len(values))
	for _, v := range values {
		t, err := tag.New(f.Category(), v)
		if err != nil {
			return domain.NewUsageError(domain.ErrInvalidValue, err.Error())
		}
		tags = append(tags, t)
	}
	return d.SetTags(f, tags)
}

// checkWord enforces the one-word-per-value rule.
func checkWord(f criteria.Field, v string) error {
	words := strings.Fields(v)
	switch {
	case len(words) == 0:
		return domain.NewUsageError(domain.ErrInvalidValue,
			fmt.Sprintf("%s value after %s must not be blank", f, fieldMarkers[f]))
	case len(words) > 1:
		return domain.NewUsageError(domain.ErrMultipleWords, domain.MessageMultipleWords)
	}
	return nil
}
