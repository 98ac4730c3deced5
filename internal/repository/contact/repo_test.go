package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/contactdex/internal/db"
	"github.com/kailas-cloud/contactdex/internal/db/memory"
	"github.com/kailas-cloud/contactdex/internal/domain"
	domcontact "github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
)

func TestNew_DefaultPrefix(t *testing.T) {
	r := New(&mockStore{}, "")
	if got := r.contactKey("x"); got != "contactdex:contact:x" {
		t.Errorf("contactKey = %q", got)
	}
}

// --- Save ---

func TestSave_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)

	var stored map[string]string
	ms.incrByFn = func(_ context.Context, key string, val int64) (int64, error) {
		if key != "cd:contact:seq" || val != 1 {
			t.Errorf("unexpected INCRBY %s %d", key, val)
		}
		return 7, nil
	}
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != "cd:contact:c1" {
			t.Errorf("unexpected key: %s", key)
		}
		stored = fields
		return nil
	}

	saved, err := repo.Save(context.Background(), testContact(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Seq() != 7 {
		t.Errorf("Seq() = %d, want 7", saved.Seq())
	}
	if stored["seq"] != "7" || stored["name"] != "Alex Yeoh" {
		t.Errorf("stored hash = %v", stored)
	}
	if stored["tags_module"] != `["CS2103T","CS2101"]` {
		t.Errorf("tags_module = %q", stored["tags_module"])
	}
	if stored["tags_cca"] != `[]` {
		t.Errorf("tags_cca = %q", stored["tags_cca"])
	}
}

func TestSave_AlreadyExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.incrByFn = func(_ context.Context, _ string, _ int64) (int64, error) {
		t.Error("sequence must not advance for duplicates")
		return 0, nil
	}

	_, err := repo.Save(context.Background(), testContact(t))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSave_Errors(t *testing.T) {
	boom := errors.New("connection lost")

	tests := []struct {
		name  string
		setup func(ms *mockStore)
	}{
		{"exists", func(ms *mockStore) {
			ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, boom }
		}},
		{"incrby", func(ms *mockStore) {
			ms.incrByFn = func(_ context.Context, _ string, _ int64) (int64, error) { return 0, boom }
		}},
		{"hset", func(ms *mockStore) {
			ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error { return boom }
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, ms := newTestRepo(t)
			tc.setup(ms)
			if _, err := repo.Save(context.Background(), testContact(t)); !errors.Is(err, boom) {
				t.Fatalf("expected wrapped error, got %v", err)
			}
		})
	}
}

func TestSave_RequiresID(t *testing.T) {
	repo, _ := newTestRepo(t)
	c := testContact(t).WithIdentity("", 0)
	if _, err := repo.Save(context.Background(), c); err == nil {
		t.Fatal("expected error for empty id")
	}
}

// --- SaveBatch ---

func TestSaveBatch_ReservesSeqBlock(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.incrByFn = func(_ context.Context, key string, val int64) (int64, error) {
		if key != "cd:contact:seq" || val != 2 {
			t.Errorf("IncrBy(%q, %d)", key, val)
		}
		return 12, nil
	}
	var items []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, it []db.HashSetItem) error {
		items = it
		return nil
	}

	a := testContact(t).WithIdentity("a", 0)
	b := testContact(t).WithIdentity("b", 0)
	saved, err := repo.SaveBatch(context.Background(), []domcontact.Contact{a, b})
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if saved[0].Seq() != 11 || saved[1].Seq() != 12 {
		t.Errorf("seqs = %d, %d, want 11, 12", saved[0].Seq(), saved[1].Seq())
	}
	if len(items) != 2 || items[0].Key != "cd:contact:a" || items[1].Fields[fieldSeq] != "12" {
		t.Errorf("items = %v", items)
	}
}

func TestSaveBatch_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.incrByFn = func(context.Context, string, int64) (int64, error) {
		t.Fatal("IncrBy must not be called for an empty batch")
		return 0, nil
	}
	got, err := repo.SaveBatch(context.Background(), nil)
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("SaveBatch(nil) = (%v, %v)", got, err)
	}
}

func TestSaveBatch_Errors(t *testing.T) {
	boom := errors.New("boom")

	repo, ms := newTestRepo(t)
	ms.incrByFn = func(context.Context, string, int64) (int64, error) { return 0, boom }
	if _, err := repo.SaveBatch(context.Background(), []domcontact.Contact{testContact(t)}); !errors.Is(err, boom) {
		t.Errorf("IncrBy failure = %v", err)
	}

	repo, ms = newTestRepo(t)
	ms.hsetMultiFn = func(context.Context, []db.HashSetItem) error { return boom }
	if _, err := repo.SaveBatch(context.Background(), []domcontact.Contact{testContact(t)}); !errors.Is(err, boom) {
		t.Errorf("HSetMulti failure = %v", err)
	}

	repo, _ = newTestRepo(t)
	if _, err := repo.SaveBatch(context.Background(), []domcontact.Contact{testContact(t).WithIdentity("", 0)}); err == nil {
		t.Error("expected error for empty id")
	}
}

// --- Get ---

func TestGet_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "cd:contact:c1" {
			t.Errorf("unexpected key: %s", key)
		}
		return map[string]string{
			"id": "c1", "name": "Alex", "phone": "123", "email": "a@b.com", "address": "x", "seq": "3",
			"tags_education": `["NUS"]`,
		}, nil
	}

	c, err := repo.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID() != "c1" || c.Seq() != 3 || c.Name() != "Alex" {
		t.Errorf("unexpected contact: %+v", c)
	}
	edu := c.Educations()
	if len(edu) != 1 || edu[0].Name() != "NUS" || edu[0].Category() != tag.Education {
		t.Errorf("Educations() = %v", edu)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_CorruptHash(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{"id": "c1", "seq": "3", "tags_module": "{not json"}, nil
	}
	if _, err := repo.Get(context.Background(), "c1"); err == nil {
		t.Fatal("expected error for corrupt tags")
	}
}

// --- Delete ---

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)

	if err := repo.Delete(context.Background(), "c1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var deleted string
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.delFn = func(_ context.Context, key string) error {
		deleted = key
		return nil
	}
	if err := repo.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "cd:contact:c1" {
		t.Errorf("deleted key = %q", deleted)
	}
}

// --- List ---

func TestList_SortedBySeqAndSkipsSeqKey(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "cd:contact:*" {
			t.Errorf("unexpected pattern: %s", pattern)
		}
		return []string{"cd:contact:b", "cd:contact:seq", "cd:contact:a", "cd:contact:gone"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		for _, k := range keys {
			if k == "cd:contact:seq" {
				t.Error("sequence key must not be loaded as a hash")
			}
		}
		return []map[string]string{
			{"id": "b", "name": "Bob", "seq": "2"},
			{"id": "a", "name": "Alex", "seq": "1"},
			{},
		}, nil
	}

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name() != "Alex" || got[1].Name() != "Bob" {
		t.Errorf("List() = %v", got)
	}
}

func TestList_Empty(t *testing.T) {
	repo, _ := newTestRepo(t)
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", got)
	}
}

func TestRepo_MemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.NewStore(), "")

	for i, name := range []string{"Alex", "Bernice", "Charlotte"} {
		c, err := domcontact.New(name, "12345", "x@example.com", "Kent Ridge", nil)
		if err != nil {
			t.Fatal(err)
		}
		saved, err := repo.Save(ctx, c.WithIdentity(name, 0))
		if err != nil {
			t.Fatal(err)
		}
		if saved.Seq() != int64(i+1) {
			t.Errorf("%s seq = %d", name, saved.Seq())
		}
	}

	if err := repo.Delete(ctx, "Bernice"); err != nil {
		t.Fatal(err)
	}
	all, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Name() != "Alex" || all[1].Name() != "Charlotte" {
		t.Errorf("List() = %v", all)
	}

	d, _ := domcontact.New("Damith", "12345", "d@example.com", "COM1", nil)
	e, _ := domcontact.New("Elaine", "12345", "e@example.com", "COM2", nil)
	if _, err := repo.SaveBatch(ctx, []domcontact.Contact{d.WithIdentity("Damith", 0), e.WithIdentity("Elaine", 0)}); err != nil {
		t.Fatal(err)
	}
	all, _ = repo.List(ctx)
	if len(all) != 4 || all[2].Name() != "Damith" || all[3].Seq() != 5 {
		t.Errorf("List() after batch = %v", all)
	}
}

func TestReserveName_UsesNameIndex(t *testing.T) {
	repo, ms := newTestRepo(t)
	var gotKey, gotField, gotValue string
	ms.hsetNXFn = func(_ context.Context, key, field, value string) (bool, error) {
		gotKey, gotField, gotValue = key, field, value
		return false, nil
	}

	ok, err := repo.ReserveName(context.Background(), "Alex Yeoh", "c1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("taken name reported as reserved")
	}
	if gotKey != "cd:contact-names" || gotField != "Alex Yeoh" || gotValue != "c1" {
		t.Errorf("HSETNX %s %s %s", gotKey, gotField, gotValue)
	}
}

func TestReserveAndReleaseName_Errors(t *testing.T) {
	boom := errors.New("down")
	repo, ms := newTestRepo(t)
	ms.hsetNXFn = func(context.Context, string, string, string) (bool, error) { return false, boom }
	ms.hdelFn = func(context.Context, string, ...string) error { return boom }

	if _, err := repo.ReserveName(context.Background(), "Alex", "c1"); !errors.Is(err, boom) {
		t.Errorf("ReserveName: %v", err)
	}
	if err := repo.ReleaseNames(context.Background(), "Alex"); !errors.Is(err, boom) {
		t.Errorf("ReleaseNames: %v", err)
	}
}

func TestNameIndex_MemoryStoreSkippedByList(t *testing.T) {
	ctx := context.Background()
	repo := New(memory.NewStore(), "")

	c, _ := domcontact.New("Alex", "12345", "x@example.com", "Kent Ridge", nil)
	if ok, err := repo.ReserveName(ctx, "Alex", "a1"); err != nil || !ok {
		t.Fatalf("ReserveName = (%v, %v)", ok, err)
	}
	if _, err := repo.Save(ctx, c.WithIdentity("a1", 0)); err != nil {
		t.Fatal(err)
	}
	if ok, _ := repo.ReserveName(ctx, "Alex", "a2"); ok {
		t.Error("second reservation of the same name must fail")
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List must ignore the name index: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List() = %v", all)
	}

	if err := repo.ReleaseNames(ctx, "Alex"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := repo.ReserveName(ctx, "Alex", "a3"); !ok {
		t.Error("released name must be reservable")
	}
}
