package contact

import (
	"context"

	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
)

// Repository defines the storage contract for contacts.
type Repository interface {
	Save(ctx context.Context, c domcontact.Contact) (domcontact.Contact, error)
	SaveBatch(ctx context.Context, cs []domcontact.Contact) ([]domcontact.Contact, error)
	Get(ctx context.Context, id string) (domcontact.Contact, error)
	List(ctx context.Context) ([]domcontact.Contact, error)
	Delete(ctx context.Context, id string) error
	ReserveName(ctx context.Context, name, id string) (bool, error)
	ReleaseNames(ctx context.Context, names ...string) error
}
