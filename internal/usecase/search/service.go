package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/contactdex/internal/domain"
	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/search/grammar"
	"github.com/kailas-cloud/contactdex/internal/domain/search/mode"
	"github.com/kailas-cloud/contactdex/internal/domain/search/query"
	"github.com/kailas-cloud/contactdex/internal/logger"
	"github.com/kailas-cloud/contactdex/internal/metrics"
)

// Defaults for Config fields left at zero.
const (
	DefaultParallelThreshold = 2048
	DefaultWorkers           = 4
)

// Config tunes find evaluation.
type Config struct {
	// ParallelThreshold is the contact count at which filtering is split across workers.
	ParallelThreshold int
	Workers           int
	MaxArgsLength     int
}

// Result is the outcome of a find command.
type Result struct {
	Query    query.Query
	Contacts []domcontact.Contact
	Mode     mode.Mode
	Message  string
}

// Service runs find commands against stored contacts.
type Service struct {
	contacts ContactLister
	parser   *grammar.Parser
	cfg      Config
}

// New creates a search service.
func New(contacts ContactLister, cfg Config) *Service {
	if cfg.ParallelThreshold <= 0 {
		cfg.ParallelThreshold = DefaultParallelThreshold
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Service{
		contacts: contacts,
		parser:   grammar.NewParser(cfg.MaxArgsLength),
		cfg:      cfg,
	}
}

// Find parses args, loads every contact and keeps those matching the compiled query.
// Matches keep the stored order. Parse failures are *domain.UsageError values.
func (s *Service) Find(ctx context.Context, args string) (Result, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	q, err := s.parser.Parse(args)
	if err != nil {
		log.Debug("find rejected", zap.String("args", args), zap.Error(err))
		metrics.ObserveFind("", metrics.OutcomeRejected, 0, time.Since(start))
		return Result{}, err
	}

	all, err := s.contacts.List(ctx)
	if err != nil {
		log.Error("find: list contacts", zap.Error(err))
		metrics.ObserveFind(q.Mode().String(), metrics.OutcomeError, 0, time.Since(start))
		return Result{}, fmt.Errorf("list contacts: %w", err)
	}

	matched, err := s.filter(ctx, &q, all)
	if err != nil {
		metrics.ObserveFind(q.Mode().String(), metrics.OutcomeError, 0, time.Since(start))
		return Result{}, err
	}

	outcome := metrics.OutcomeMatched
	if len(matched) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.ObserveFind(q.Mode().String(), outcome, len(matched), time.Since(start))

	log.Debug("find",
		zap.Stringer("query", &q),
		zap.Int("scanned", len(all)),
		zap.Int("matched", len(matched)),
		zap.Duration("took", time.Since(start)),
	)

	return Result{
		Query:    q,
		Contacts: matched,
		Mode:     q.Mode(),
		Message:  q.Summary(len(matched)),
	}, nil
}

// IsUsageError reports whether err is a rejected find command rather than a failure.
func IsUsageError(err error) bool {
	var ue *domain.UsageError
	return errors.As(err, &ue)
}

// filter evaluates q over contacts, in chunks across workers once the threshold is reached.
func (s *Service) filter(ctx context.Context, q *query.Query, contacts []domcontact.Contact) ([]domcontact.Contact, error) {
	if len(contacts) < s.cfg.ParallelThreshold || s.cfg.Workers == 1 {
		return q.Filter(contacts), nil
	}

	chunkSize := (len(contacts) + s.cfg.Workers - 1) / s.cfg.Workers
	chunks := make([][]domcontact.Contact, s.cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.cfg.Workers; w++ {
		lo := w * chunkSize
		if lo >= len(contacts) {
			break
		}
		hi := min(lo+chunkSize, len(contacts))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunks[w] = q.Filter(contacts[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("filter contacts: %w", err)
	}

	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	out := make([]domcontact.Contact, 0, n)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out, nil
}
