package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kailas-cloud/contactdex/internal/domain"
	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
)

// Input carries raw contact fields. Tags are keyed by category.
type Input struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Tags    map[tag.Category][]string
}

// Service handles contact CRUD operations.
// Names are unique: writes in this process are serialized by mu, and the
// repository name index guards against other processes sharing the store.
type Service struct {
	mu    sync.Mutex
	repo  Repository
	newID func() string
}

// New creates a contact service.
func New(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// Add validates and stores a new contact.
// Returns domain.ErrInvalidContact on validation failure and
// domain.ErrAlreadyExists when a contact with the same name is stored.
func (s *Service) Add(ctx context.Context, in Input) (domcontact.Contact, error) {
	c, err := build(in)
	if err != nil {
		return domcontact.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return domcontact.Contact{}, fmt.Errorf("list contacts: %w", err)
	}
	if containsSame(existing, &c) {
		return domcontact.Contact{}, fmt.Errorf("contact %q: %w", c.Name(), domain.ErrAlreadyExists)
	}

	c = c.WithIdentity(s.newID(), 0)
	if err := s.reserve(ctx, []domcontact.Contact{c}); err != nil {
		return domcontact.Contact{}, err
	}

	saved, err := s.repo.Save(ctx, c)
	if err != nil {
		return domcontact.Contact{}, s.rollback(ctx, fmt.Errorf("save contact: %w", err), c.Name())
	}
	return saved, nil
}

// AddAll validates every input and stores them together, in input order.
// Nothing is stored if any input is invalid or duplicates a stored contact or an earlier input.
func (s *Service) AddAll(ctx context.Context, ins []Input) ([]domcontact.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	batch := make([]domcontact.Contact, 0, len(ins))
	for i, in := range ins {
		c, err := build(in)
		if err != nil {
			return nil, fmt.Errorf("contact #%d: %w", i+1, err)
		}
		if containsSame(existing, &c) || containsSame(batch, &c) {
			return nil, fmt.Errorf("contact #%d %q: %w", i+1, c.Name(), domain.ErrAlreadyExists)
		}
		batch = append(batch, c.WithIdentity(s.newID(), 0))
	}

	if err := s.reserve(ctx, batch); err != nil {
		return nil, err
	}

	saved, err := s.repo.SaveBatch(ctx, batch)
	if err != nil {
		return nil, s.rollback(ctx, fmt.Errorf("save contacts: %w", err), names(batch)...)
	}
	return saved, nil
}

// Get retrieves a contact by id.
func (s *Service) Get(ctx context.Context, id string) (domcontact.Contact, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontact.Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// List returns all contacts in insertion order.
func (s *Service) List(ctx context.Context) ([]domcontact.Contact, error) {
	cs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return cs, nil
}

// Delete removes a contact and frees its name.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if err := s.repo.ReleaseNames(ctx, c.Name()); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// reserve claims every name in the index. On failure the names claimed so far are released.
func (s *Service) reserve(ctx context.Context, cs []domcontact.Contact) error {
	for i := range cs {
		ok, err := s.repo.ReserveName(ctx, cs[i].Name(), cs[i].ID())
		if err == nil && !ok {
			err = fmt.Errorf("contact %q: %w", cs[i].Name(), domain.ErrAlreadyExists)
		}
		if err != nil {
			return s.rollback(ctx, err, names(cs[:i])...)
		}
	}
	return nil
}

func (s *Service) rollback(ctx context.Context, cause error, claimed ...string) error {
	if len(claimed) == 0 {
		return cause
	}
	if err := s.repo.ReleaseNames(ctx, claimed...); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func names(cs []domcontact.Contact) []string {
	out := make([]string, len(cs))
	for i := range cs {
		out[i] = cs[i].Name()
	}
	return out
}

func build(in Input) (domcontact.Contact, error) {
	var tags []tag.Tag
	for _, cat := range tag.Categories() {
		for _, name := range in.Tags[cat] {
			t, err := tag.New(cat, name)
			if err != nil {
				return domcontact.Contact{}, fmt.Errorf("validate contact: %w: %w", domain.ErrInvalidContact, err)
			}
			tags = append(tags, t)
		}
	}
	for cat := range in.Tags {
		if !cat.IsValid() {
			return domcontact.Contact{}, fmt.Errorf("validate contact: %w: unknown tag category %q",
				domain.ErrInvalidContact, cat)
		}
	}

	c, err := domcontact.New(in.Name, in.Phone, in.Email, in.Address, tags)
	if err != nil {
		return domcontact.Contact{}, fmt.Errorf("validate contact: %w: %w", domain.ErrInvalidContact, err)
	}
	return c, nil
}

func containsSame(cs []domcontact.Contact, c *domcontact.Contact) bool {
	for i := range cs {
		if cs[i].IsSame(c) {
			return true
		}
	}
	return false
}
