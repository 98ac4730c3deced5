package contactdex

import (
	"context"
	"fmt"
	"time"

	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
)

// ContactService manages contacts.
type ContactService struct {
	svc contactUseCase
	obs *observer
}

// Add validates and stores a new contact.
// Returns ErrInvalidContact for bad fields and ErrAlreadyExists for a duplicate name.
func (s *ContactService) Add(ctx context.Context, in ContactInput) (_ Contact, err error) {
	start := time.Now()
	defer func() { s.obs.observe("contact.add", start, err) }()

	c, err := s.svc.Add(ctx, in.toInternal())
	if err != nil {
		return Contact{}, fmt.Errorf("add contact: %w", err)
	}
	return fromInternalContact(&c), nil
}

// AddAll stores contacts together, in input order. Nothing is stored if any input is rejected.
func (s *ContactService) AddAll(ctx context.Context, ins []ContactInput) (_ []Contact, err error) {
	start := time.Now()
	defer func() { s.obs.observe("contact.add_all", start, err) }()

	internal := make([]contactuc.Input, len(ins))
	for i := range ins {
		internal[i] = ins[i].toInternal()
	}
	cs, err := s.svc.AddAll(ctx, internal)
	if err != nil {
		return nil, fmt.Errorf("add contacts: %w", err)
	}
	return fromInternalContacts(cs), nil
}

// Get returns the contact with the given id.
func (s *ContactService) Get(ctx context.Context, id string) (_ Contact, err error) {
	start := time.Now()
	defer func() { s.obs.observe("contact.get", start, err) }()

	c, err := s.svc.Get(ctx, id)
	if err != nil {
		return Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return fromInternalContact(&c), nil
}

// List returns every contact in insertion order.
func (s *ContactService) List(ctx context.Context) (_ []Contact, err error) {
	start := time.Now()
	defer func() { s.obs.observe("contact.list", start, err) }()

	cs, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return fromInternalContacts(cs), nil
}

// Delete removes the contact with the given id.
func (s *ContactService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("contact.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
