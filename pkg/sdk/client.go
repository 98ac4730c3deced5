package contactdex

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/contactdex/internal/db"
	"github.com/kailas-cloud/contactdex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/contactdex/internal/db/redis"
	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	contactrepo "github.com/kailas-cloud/contactdex/internal/repository/contact"
	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
	healthuc "github.com/kailas-cloud/contactdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/contactdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by fakes in tests.
type contactUseCase interface {
	Add(ctx context.Context, in contactuc.Input) (domcontact.Contact, error)
	AddAll(ctx context.Context, ins []contactuc.Input) ([]domcontact.Contact, error)
	Get(ctx context.Context, id string) (domcontact.Contact, error)
	List(ctx context.Context) ([]domcontact.Contact, error)
	Delete(ctx context.Context, id string) error
}

type findUseCase interface {
	Find(ctx context.Context, args string) (searchuc.Result, error)
}

// Client is the contactdex entry point.
type Client struct {
	store     db.Store
	contacts  contactUseCase
	finder    findUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and waits for its store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:        contactrepo.DefaultKeyPrefix,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("contactdex: store required (use WithRedis or WithMemory)")
	}
	if !strings.HasSuffix(cfg.keyPrefix, ":") {
		return nil, fmt.Errorf("contactdex: key prefix %q must end with ':'", cfg.keyPrefix)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("contactdex: store not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("contactdex: create redis store: %w", err)
		}
		return s, nil
	case driverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("contactdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := contactrepo.New(store, cfg.keyPrefix)

	return &Client{
		store:    store,
		contacts: contactuc.New(repo),
		finder: searchuc.New(repo, searchuc.Config{
			ParallelThreshold: cfg.parallelThreshold,
			Workers:           cfg.workers,
			MaxArgsLength:     cfg.maxArgsLength,
		}),
		healthSvc: healthuc.New(store, 0),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Contacts returns the contact management service.
func (c *Client) Contacts() *ContactService {
	return &ContactService{svc: c.contacts, obs: c.obs}
}

// Find runs a find command such as "n/Alex n/Bernice" or "-s n/Alex m/CS2103T".
// Rejected commands return an error matching one of the command sentinels;
// UsageMessage renders it for the user.
func (c *Client) Find(ctx context.Context, args string) (_ FindResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("find", start, err) }()

	res, err := c.finder.Find(ctx, args)
	if err != nil {
		return FindResult{}, fmt.Errorf("find: %w", err)
	}
	return fromFindResult(&res), nil
}
