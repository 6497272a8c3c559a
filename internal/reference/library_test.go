package reference

import (
	"errors"
	"reflect"
	"testing"
)

func newLibrary(t *testing.T, papers ...*Paper) *Library {
	t.Helper()
	lib := NewLibrary()
	for _, p := range papers {
		if err := lib.Add(p); err != nil {
			t.Fatalf("Add(%s) error = %v", p.CiteID, err)
		}
	}
	return lib
}

func TestLibrary_AddDuplicate(t *testing.T) {
	lib := newLibrary(t, &Paper{CiteID: "smith2020"})

	err := lib.Add(&Paper{CiteID: "smith2020"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Add() error = %v, want ErrDuplicateID", err)
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}
}

func TestLibrary_PreservesOrder(t *testing.T) {
	lib := newLibrary(t,
		&Paper{CiteID: "zeta2020"},
		&Paper{CiteID: "alpha2019"},
		&Paper{CiteID: "mid2021"},
	)

	want := []string{"zeta2020", "alpha2019", "mid2021"}
	if got := lib.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	papers := lib.Papers()
	for i, p := range papers {
		if p.CiteID != want[i] {
			t.Errorf("Papers()[%d] = %s, want %s", i, p.CiteID, want[i])
		}
	}
}

func TestLibrary_LinkReplacements(t *testing.T) {
	preprint := &Paper{CiteID: "smith2019"}
	published := &Paper{CiteID: "smith2020", Replaces: []string{"smith2019"}}
	erratum := &Paper{CiteID: "smith2021", Replaces: []string{"smith2019", "ghost2000"}}

	lib := newLibrary(t, preprint, published, erratum)
	dangling := lib.LinkReplacements()

	if want := []string{"smith2020", "smith2021"}; !reflect.DeepEqual(preprint.ReplacedBy, want) {
		t.Errorf("ReplacedBy = %v, want %v", preprint.ReplacedBy, want)
	}
	if succ, ok := preprint.Successor(); !ok || succ != "smith2020" {
		t.Errorf("Successor() = %q, %v; want smith2020, true", succ, ok)
	}
	if published.Superseded() || erratum.Superseded() {
		t.Error("replacers should not be superseded")
	}

	want := []DanglingReplacement{{CiteID: "smith2021", Target: "ghost2000"}}
	if !reflect.DeepEqual(dangling, want) {
		t.Errorf("LinkReplacements() dangling = %v, want %v", dangling, want)
	}
}

func TestLibrary_YearGroups(t *testing.T) {
	lib := newLibrary(t,
		&Paper{CiteID: "a2019", Year: 2019},
		&Paper{CiteID: "b2021", Year: 2021},
		&Paper{CiteID: "c2019", Year: 2019},
	)

	years, groups := lib.YearGroups()
	if want := []int{2021, 2019}; !reflect.DeepEqual(years, want) {
		t.Errorf("years = %v, want %v", years, want)
	}
	if want := []string{"a2019", "c2019"}; !reflect.DeepEqual(groups[2019], want) {
		t.Errorf("groups[2019] = %v, want %v", groups[2019], want)
	}
}

func TestPaper_SkipAndReplacesDeduplicate(t *testing.T) {
	p := &Paper{CiteID: "smith2020"}
	p.AddSkip("doe2018")
	p.AddSkip("doe2018")
	p.AddReplaces("smith2019")
	p.AddReplaces("smith2019")

	if len(p.SkipList) != 1 || !p.Skips("doe2018") {
		t.Errorf("SkipList = %v, want [doe2018]", p.SkipList)
	}
	if p.Skips("other2000") {
		t.Error("Skips(other2000) = true, want false")
	}
	if len(p.Replaces) != 1 {
		t.Errorf("Replaces = %v, want [smith2019]", p.Replaces)
	}
}
