package chi

import (
	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
	searchuc "github.com/kailas-cloud/contactdex/internal/usecase/search"
)

// ErrorCode is the machine-readable error code of an API error.
type ErrorCode string

// API error codes.
const (
	ErrorCodeBadRequest    ErrorCode = "bad_request"
	ErrorCodeUnauthorized  ErrorCode = "unauthorized"
	ErrorCodeValidation    ErrorCode = "validation_failed"
	ErrorCodeNotFound      ErrorCode = "contact_not_found"
	ErrorCodeAlreadyExists ErrorCode = "contact_already_exists"
	ErrorCodeInvalidFormat ErrorCode = "invalid_format"
	ErrorCodeMultipleWords ErrorCode = "multiple_words"
	ErrorCodeInvalidValue  ErrorCode = "invalid_value"
	ErrorCodeNoParameters  ErrorCode = "no_parameters"
	ErrorCodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ContactRequest is the body of POST /contacts.
type ContactRequest struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Educations  []string `json:"educations,omitempty"`
	Internships []string `json:"internships,omitempty"`
	Modules     []string `json:"modules,omitempty"`
	CCAs        []string `json:"ccas,omitempty"`
}

// Contact is the API representation of a stored contact.
type Contact struct {
	ID          string   `json:"id"`
	Seq         int64    `json:"seq"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Educations  []string `json:"educations"`
	Internships []string `json:"internships"`
	Modules     []string `json:"modules"`
	CCAs        []string `json:"ccas"`
}

// MaxBatchSize caps the contacts accepted by POST /contacts/batch.
const MaxBatchSize = 1000

// ContactBatchRequest is the body of POST /contacts/batch.
type ContactBatchRequest struct {
	Items []ContactRequest `json:"items"`
}

// ContactListResponse is the body of GET /contacts and of find responses.
type ContactListResponse struct {
	Items []Contact `json:"items"`
	Count int       `json:"count"`
}

// FindRequest is the body of POST /contacts/find.
type FindRequest struct {
	Args string `json:"args"`
}

// FindResponse is the body of a successful find.
type FindResponse struct {
	Mode    string    `json:"mode"`
	Query   string    `json:"query"`
	Message string    `json:"message"`
	Count   int       `json:"count"`
	Items   []Contact `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (req *ContactRequest) toInput() contactuc.Input {
	return contactuc.Input{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Tags: map[tag.Category][]string{
			tag.Education:  req.Educations,
			tag.Internship: req.Internships,
			tag.Module:     req.Modules,
			tag.CCA:        req.CCAs,
		},
	}
}

func contactToAPI(c *domcontact.Contact) Contact {
	return Contact{
		ID:          c.ID(),
		Seq:         c.Seq(),
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

func contactsToAPI(cs []domcontact.Contact) []Contact {
	out := make([]Contact, len(cs))
	for i := range cs {
		out[i] = contactToAPI(&cs[i])
	}
	return out
}

func findResultToAPI(res *searchuc.Result) FindResponse {
	items := contactsToAPI(res.Contacts)
	return FindResponse{
		Mode:    res.Mode.String(),
		Query:   res.Query.String(),
		Message: res.Message,
		Count:   len(items),
		Items:   items,
	}
}

func tagNames(tags []tag.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name()
	}
	return out
}
