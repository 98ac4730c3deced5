package contact

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/contactdex/internal/db"
	"github.com/kailas-cloud/contactdex/internal/domain"
	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
)

// DefaultKeyPrefix namespaces every key written by the repository.
const DefaultKeyPrefix = "contactdex:"

// store is the consumer interface for contacts (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HDel(ctx context.Context, key string, fields ...string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
}

// Repo implements usecase/contact.Repository on top of hash storage.
type Repo struct {
	store  store
	prefix string
}

// New creates a contact repository. An empty prefix selects DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Save stores a new contact under its id and assigns the next sequence number.
// Returns domain.ErrAlreadyExists if the id is taken.
func (r *Repo) Save(ctx context.Context, c domcontact.Contact) (domcontact.Contact, error) {
	if c.ID() == "" {
		return domcontact.Contact{}, fmt.Errorf("save contact: empty id")
	}

	key := r.contactKey(c.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return domcontact.Contact{}, fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domcontact.Contact{}, domain.ErrAlreadyExists
	}

	seq, err := r.store.IncrBy(ctx, r.seqKey(), 1)
	if err != nil {
		return domcontact.Contact{}, fmt.Errorf("next seq: %w", err)
	}
	c = c.WithIdentity(c.ID(), seq)

	hash, err := contactToHash(&c)
	if err != nil {
		return domcontact.Contact{}, err
	}
	if err := r.store.HSet(ctx, key, hash); err != nil {
		return domcontact.Contact{}, fmt.Errorf("hset contact %s: %w", c.ID(), err)
	}
	return c, nil
}

// SaveBatch stores new contacts in one pipelined round-trip.
// Sequence numbers are reserved as a single block, so the batch keeps its input order.
// Ids are expected to be fresh; unlike Save no existence check is made.
func (r *Repo) SaveBatch(ctx context.Context, cs []domcontact.Contact) ([]domcontact.Contact, error) {
	if len(cs) == 0 {
		return []domcontact.Contact{}, nil
	}

	last, err := r.store.IncrBy(ctx, r.seqKey(), int64(len(cs)))
	if err != nil {
		return nil, fmt.Errorf("reserve seq: %w", err)
	}
	first := last - int64(len(cs)) + 1

	saved := make([]domcontact.Contact, len(cs))
	items := make([]db.HashSetItem, len(cs))
	for i := range cs {
		if cs[i].ID() == "" {
			return nil, fmt.Errorf("save contact #%d: empty id", i+1)
		}
		saved[i] = cs[i].WithIdentity(cs[i].ID(), first+int64(i))
		hash, err := contactToHash(&saved[i])
		if err != nil {
			return nil, err
		}
		items[i] = db.HashSetItem{Key: r.contactKey(saved[i].ID()), Fields: hash}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return nil, fmt.Errorf("hset multi contacts: %w", err)
	}
	return saved, nil
}

// Get retrieves a contact by id.
func (r *Repo) Get(ctx context.Context, id string) (domcontact.Contact, error) {
	m, err := r.store.HGetAll(ctx, r.contactKey(id))
	if err != nil {
		return domcontact.Contact{}, fmt.Errorf("hgetall contact %s: %w", id, err)
	}
	if len(m) == 0 {
		return domcontact.Contact{}, domain.ErrNotFound
	}
	return contactFromHash(m)
}

// Delete removes a contact by id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.contactKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del contact %s: %w", id, err)
	}
	return nil
}

// List returns every contact in insertion order.
func (r *Repo) List(ctx context.Context) ([]domcontact.Contact, error) {
	keys, err := r.store.Scan(ctx, r.contactKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan contacts: %w", err)
	}

	seqKey := r.seqKey()
	filtered := keys[:0]
	for _, k := range keys {
		if k != seqKey {
			filtered = append(filtered, k)
		}
	}
	if len(filtered) == 0 {
		return []domcontact.Contact{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, filtered)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi contacts: %w", err)
	}

	contacts := make([]domcontact.Contact, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		c, err := contactFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse contact %s: %w", filtered[i], err)
		}
		contacts = append(contacts, c)
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Seq() < contacts[j].Seq()
	})
	return contacts, nil
}

// ReserveName claims name for id in the name index.
// It reports false when another contact already holds the name.
func (r *Repo) ReserveName(ctx context.Context, name, id string) (bool, error) {
	ok, err := r.store.HSetNX(ctx, r.namesKey(), name, id)
	if err != nil {
		return false, fmt.Errorf("reserve name %q: %w", name, err)
	}
	return ok, nil
}

// ReleaseNames frees names in the name index.
func (r *Repo) ReleaseNames(ctx context.Context, names ...string) error {
	if err := r.store.HDel(ctx, r.namesKey(), names...); err != nil {
		return fmt.Errorf("release names: %w", err)
	}
	return nil
}

// Key patterns: {prefix}contact:{id}, {prefix}contact:seq, {prefix}contact-names.
// The name index sits outside contact:* so List never scans it.

func (r *Repo) contactKey(id string) string {
	return fmt.Sprintf("%scontact:%s", r.prefix, id)
}

func (r *Repo) seqKey() string {
	return r.prefix + "contact:seq"
}

func (r *Repo) namesKey() string {
	return r.prefix + "contact-names"
}
