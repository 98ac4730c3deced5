package predicate

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/kailas-cloud/contactdex/internal/domain"
	"github.com/kailas-cloud/contactdex/internal/domain/contact"
	"github.com/kailas-cloud/contactdex/internal/domain/contact/tag"
	"github.com/kailas-cloud/contactdex/internal/domain/search/criteria"
	"github.com/kailas-cloud/contactdex/internal/domain/search/mode"
)

func person(name string, tags ...tag.Tag) contact.Contact {
	grouped := make(map[tag.Category][]tag.Tag)
	for _, t := range tags {
		grouped[t.Category()] = append(grouped[t.Category()], t)
	}
	return contact.Reconstruct(name, 0, name, "91234567", "x@example.com", "Blk 1 Clementi Road", grouped)
}

func mod(name string) tag.Tag { return tag.Reconstruct(tag.Module, name) }
func edu(name string) tag.Tag { return tag.Reconstruct(tag.Education, name) }

func mustWords(t *testing.T, f criteria.Field, values ...string) Words {
	t.Helper()
	p, err := NewWords(f, values)
	if err != nil {
		t.Fatalf("NewWords: %v", err)
	}
	return p
}

func mustTags(t *testing.T, cat tag.Category, values ...tag.Tag) Tags {
	t.Helper()
	p, err := NewTags(cat, values)
	if err != nil {
		t.Fatalf("NewTags: %v", err)
	}
	return p
}

// --- primitives ---

func TestWords_WholeWordIgnoreCase(t *testing.T) {
	c := contact.Reconstruct("1", 1, "Alex Yeoh", "87438807", "alex@example.com", "Blk 30 Geylang Street 29", nil)

	tests := []struct {
		field  criteria.Field
		values []string
		want   bool
	}{
		{criteria.Name, []string{"alex"}, true},
		{criteria.Name, []string{"YEOH"}, true},
		{criteria.Name, []string{"Ale"}, false},
		{criteria.Name, []string{"Bob", "yeoh"}, true},
		{criteria.Name, []string{"Bob", "Carl"}, false},
		{criteria.Phone, []string{"87438807"}, true},
		{criteria.Phone, []string{"8743"}, false},
		{criteria.Email, []string{"ALEX@example.com"}, true},
		{criteria.Address, []string{"geylang"}, true},
		{criteria.Address, []string{"Gey"}, false},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%v", tc.field, tc.values), func(t *testing.T) {
			p := mustWords(t, tc.field, tc.values...)
			if got := p.Match(&c); got != tc.want {
				t.Errorf("Match = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewWords_RejectsCategorical(t *testing.T) {
	if _, err := NewWords(criteria.Module, []string{"x"}); err == nil {
		t.Fatal("expected error for categorical field")
	}
}

func TestTags_EqualityIgnoreCase(t *testing.T) {
	c := person("Alex", mod("CS2103T"), edu("NUS"))

	tests := []struct {
		name string
		pred Tags
		want bool
	}{
		{"same case", mustTags(t, tag.Module, mod("CS2103T")), true},
		{"other case", mustTags(t, tag.Module, mod("cs2103t")), true},
		{"any of many", mustTags(t, tag.Module, mod("CS1101S"), mod("CS2103T")), true},
		{"prefix is not a match", mustTags(t, tag.Module, mod("CS2103")), false},
		{"other category", mustTags(t, tag.CCA, tag.Reconstruct(tag.CCA, "NUS")), false},
		{"education", mustTags(t, tag.Education, edu("nus")), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred.Match(&c); got != tc.want {
				t.Errorf("Match = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewTags_RejectsForeignTag(t *testing.T) {
	if _, err := NewTags(tag.Module, []tag.Tag{edu("NUS")}); err == nil {
		t.Fatal("expected error for tag of another category")
	}
	if _, err := NewTags("hobby", nil); err == nil {
		t.Fatal("expected error for invalid category")
	}
}

func TestWords_DoesNotAliasInput(t *testing.T) {
	values := []string{"Alex"}
	p := mustWords(t, criteria.Name, values...)
	values[0] = "Bob"
	c := person("Alex")
	if !p.Match(&c) {
		t.Fatal("predicate must keep its own copy of the values")
	}
}

// --- fold ---

func TestFold_Identity(t *testing.T) {
	c := person("Alex")
	if !Fold(true).Match(&c) {
		t.Error("empty AND-fold must match")
	}
	if Fold(false).Match(&c) {
		t.Error("empty OR-fold must not match")
	}
}

func TestFold_TruthTables(t *testing.T) {
	c := person("Alex")
	bools := []bool{false, true}
	for _, a := range bools {
		for _, b := range bools {
			for _, d := range bools {
				preds := []Predicate{Const(a), Const(b), Const(d)}
				if got, want := Fold(true, preds...).Match(&c), a && b && d; got != want {
					t.Errorf("AND(%v,%v,%v) = %v, want %v", a, b, d, got, want)
				}
				if got, want := Fold(false, preds...).Match(&c), a || b || d; got != want {
					t.Errorf("OR(%v,%v,%v) = %v, want %v", a, b, d, got, want)
				}
			}
		}
	}
}

func TestFold_ShortCircuits(t *testing.T) {
	c := person("Alex")
	calls := 0
	counting := Func(func(*contact.Contact) bool {
		calls++
		return true
	})

	Fold(true, Const(false), counting).Match(&c)
	Fold(false, Const(true), counting).Match(&c)
	if calls != 0 {
		t.Errorf("expected absorbing element to stop evaluation, got %d calls", calls)
	}

	Fold(true, Const(true), counting).Match(&c)
	if calls != 1 {
		t.Errorf("expected evaluation to continue past identity, got %d calls", calls)
	}
}

// --- compile ---

func descriptor(t *testing.T, names []string, edus []string, mods []string) *criteria.Descriptor {
	t.Helper()
	var d criteria.Descriptor
	if names != nil {
		if err := d.SetWords(criteria.Name, names); err != nil {
			t.Fatal(err)
		}
	}
	if edus != nil {
		tags := make([]tag.Tag, len(edus))
		for i, e := range edus {
			tags[i] = edu(e)
		}
		if err := d.SetTags(criteria.Education, tags); err != nil {
			t.Fatal(err)
		}
	}
	if mods != nil {
		tags := make([]tag.Tag, len(mods))
		for i, m := range mods {
			tags[i] = mod(m)
		}
		if err := d.SetTags(criteria.Module, tags); err != nil {
			t.Fatal(err)
		}
	}
	return &d
}

func TestCompile_DisjunctiveScenario(t *testing.T) {
	d := descriptor(t, []string{"Alex", "Bob"}, nil, nil)
	p, err := Compile(d, mode.Any)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	records := []contact.Contact{person("Alex"), person("Bob"), person("Carl")}
	want := []bool{true, true, false}
	for i := range records {
		if got := p.Match(&records[i]); got != want[i] {
			t.Errorf("record %s: Match = %v, want %v", records[i].Name(), got, want[i])
		}
	}
}

func TestCompile_ConjunctiveScenario(t *testing.T) {
	d := descriptor(t, []string{"Alex"}, []string{"edu"}, nil)
	p, err := Compile(d, mode.All)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	without := person("Alex")
	with := person("Alex", edu("edu"))
	if p.Match(&without) {
		t.Error("contact lacking the education tag must not match")
	}
	if !p.Match(&with) {
		t.Error("contact satisfying every field must match")
	}
}

func TestCompile_ConjunctiveKeepsFieldLevelOr(t *testing.T) {
	d := descriptor(t, []string{"Alex"}, nil, []string{"CS2103T", "CS1101S"})
	p, err := Compile(d, mode.All)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	c := person("Alex", mod("CS1101S"))
	if !p.Match(&c) {
		t.Error("one of two supplied modules must satisfy the module field")
	}
}

func TestCompile_FoldProperties(t *testing.T) {
	d := descriptor(t, []string{"Alex"}, []string{"NUS"}, []string{"CS2103T"})
	fields := d.Present()

	records := []contact.Contact{
		person("Alex"),
		person("Bob", edu("NUS")),
		person("Alex", edu("NUS")),
		person("Alex", edu("NUS"), mod("CS2103T")),
		person("Carl", mod("cs2103t")),
		person("Dana"),
	}

	anyP, err := Compile(d, mode.Any)
	if err != nil {
		t.Fatal(err)
	}
	allP, err := Compile(d, mode.All)
	if err != nil {
		t.Fatal(err)
	}

	for i := range records {
		r := &records[i]
		or, and := false, true
		for _, f := range fields {
			fp, err := ForField(d, f)
			if err != nil {
				t.Fatal(err)
			}
			v := fp.Match(r)
			or = or || v
			and = and && v
		}
		if anyP.Match(r) != or {
			t.Errorf("record %d: disjunctive = %v, want %v", i, anyP.Match(r), or)
		}
		if allP.Match(r) != and {
			t.Errorf("record %d: conjunctive = %v, want %v", i, allP.Match(r), and)
		}
	}
}

func TestCompile_AbsenceIndependence(t *testing.T) {
	base := descriptor(t, []string{"Alex"}, nil, nil)
	extended := descriptor(t, []string{"Alex"}, nil, []string{"CS2103T"})

	c := person("Alex")
	before, err := ForField(base, criteria.Name)
	if err != nil {
		t.Fatal(err)
	}
	after, err := ForField(extended, criteria.Name)
	if err != nil {
		t.Fatal(err)
	}
	if before.Match(&c) != after.Match(&c) {
		t.Error("populating module must not change the name predicate")
	}

	if _, err := ForField(base, criteria.Module); err == nil {
		t.Error("absent field must not produce a predicate")
	}
}

func TestCompile_EmptyDescriptor(t *testing.T) {
	var d criteria.Descriptor
	p, err := Compile(&d, mode.Any)
	if !errors.Is(err, domain.ErrNoParameters) {
		t.Fatalf("err = %v, want ErrNoParameters", err)
	}
	if p != nil {
		t.Error("no predicate may be built from an empty descriptor")
	}
}

func TestCompile_InvalidMode(t *testing.T) {
	d := descriptor(t, []string{"Alex"}, nil, nil)
	if _, err := Compile(d, mode.Mode("not")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestCompile_String(t *testing.T) {
	d := descriptor(t, []string{"Alex"}, nil, []string{"CS2103T"})
	p, err := Compile(d, mode.All)
	if err != nil {
		t.Fatal(err)
	}
	want := "(and name~[Alex] module=[CS2103T])"
	if got := fmt.Sprint(p); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCompile_ConcurrentEvaluation(t *testing.T) {
	d := descriptor(t, []string{"Alex", "Bob"}, nil, []string{"CS2103T"})
	p, err := Compile(d, mode.Any)
	if err != nil {
		t.Fatal(err)
	}

	records := []contact.Contact{person("Alex"), person("Carl", mod("CS2103T")), person("Dana")}
	want := []bool{true, true, false}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				for i := range records {
					if p.Match(&records[i]) != want[i] {
						errs <- fmt.Sprintf("record %d mismatched", i)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
