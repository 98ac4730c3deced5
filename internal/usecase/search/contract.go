package search

import (
	"context"

	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
)

// ContactLister reads every stored contact in display order.
type ContactLister interface {
	List(ctx context.Context) ([]domcontact.Contact, error)
}
