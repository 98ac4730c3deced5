package contactdex

import (
	"context"

	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
	healthuc "github.com/kailas-cloud/contactdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/contactdex/internal/usecase/search"
)

// --- contactUseCase mock ---

type mockContactUC struct {
	addFn    func(ctx context.Context, in contactuc.Input) (domcontact.Contact, error)
	addAllFn func(ctx context.Context, ins []contactuc.Input) ([]domcontact.Contact, error)
	getFn    func(ctx context.Context, id string) (domcontact.Contact, error)
	listFn   func(ctx context.Context) ([]domcontact.Contact, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockContactUC) Add(ctx context.Context, in contactuc.Input) (domcontact.Contact, error) {
	return m.addFn(ctx, in)
}

func (m *mockContactUC) AddAll(ctx context.Context, ins []contactuc.Input) ([]domcontact.Contact, error) {
	return m.addAllFn(ctx, ins)
}

func (m *mockContactUC) Get(ctx context.Context, id string) (domcontact.Contact, error) {
	return m.getFn(ctx, id)
}

func (m *mockContactUC) List(ctx context.Context) ([]domcontact.Contact, error) {
	return m.listFn(ctx)
}

func (m *mockContactUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- findUseCase mock ---

type mockFindUC struct {
	findFn func(ctx context.Context, args string) (searchuc.Result, error)
}

func (m *mockFindUC) Find(ctx context.Context, args string) (searchuc.Result, error) {
	return m.findFn(ctx, args)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
