package edge

import (
	"errors"
	"testing"
)

func TestCitation_Validate(t *testing.T) {
	tests := []struct {
		name     string
		citation Citation
		wantErr  error
	}{
		{
			name:     "valid citation",
			citation: Citation{CitingID: "smith2020", CitedID: "doe2018", Score: 95},
			wantErr:  nil,
		},
		{
			name:     "empty citing_id",
			citation: Citation{CitedID: "doe2018", Score: 95},
			wantErr:  ErrEmptyCitingID,
		},
		{
			name:     "empty cited_id",
			citation: Citation{CitingID: "smith2020", Score: 95},
			wantErr:  ErrEmptyCitedID,
		},
		{
			name:     "self citation",
			citation: Citation{CitingID: "smith2020", CitedID: "smith2020", Score: 95},
			wantErr:  ErrSelfEdge,
		},
		{
			name:     "score above 100",
			citation: Citation{CitingID: "smith2020", CitedID: "doe2018", Score: 100.5},
			wantErr:  ErrScoreRange,
		},
		{
			name:     "negative score",
			citation: Citation{CitingID: "smith2020", CitedID: "doe2018", Score: -1},
			wantErr:  ErrScoreRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.citation.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDetectOrphaned(t *testing.T) {
	validIDs := map[string]bool{"a2020": true, "b2019": true}
	citations := []Citation{
		{CitingID: "a2020", CitedID: "b2019", Score: 95},
		{CitingID: "ghost2020", CitedID: "b2019", Score: 95},
		{CitingID: "a2020", CitedID: "ghost2019", Score: 95},
		{CitingID: "x", CitedID: "y", Score: 95},
	}

	orphaned, valid := DetectOrphaned(citations, validIDs)

	if len(valid) != 1 || valid[0].CitingID != "a2020" {
		t.Errorf("valid = %v, want only a2020 -> b2019", valid)
	}

	wantReasons := []string{"missing_citing", "missing_cited", "missing_both"}
	if len(orphaned) != len(wantReasons) {
		t.Fatalf("orphaned = %v, want %d entries", orphaned, len(wantReasons))
	}
	for i, want := range wantReasons {
		if orphaned[i].Reason != want {
			t.Errorf("orphaned[%d].Reason = %s, want %s", i, orphaned[i].Reason, want)
		}
	}
}

func TestFindDuplicates(t *testing.T) {
	citations := []Citation{
		{CitingID: "c2021", CitedID: "a2020", Score: 92},
		{CitingID: "c2021", CitedID: "a2020", Score: 97},
		{CitingID: "c2021", CitedID: "b2019", Score: 91},
	}

	dups := FindDuplicates(citations)

	if len(dups) != 1 {
		t.Fatalf("FindDuplicates() = %v, want 1 duplicate", dups)
	}
	if want := (Duplicate{CitingID: "c2021", CitedID: "a2020", Count: 2}); dups[0] != want {
		t.Errorf("FindDuplicates()[0] = %+v, want %+v", dups[0], want)
	}
}

func TestFindDuplicates_Sorted(t *testing.T) {
	var citations []Citation
	for _, k := range []Key{
		{"d2022", "a2020"}, {"c2021", "b2019"}, {"d2022", "a2020"},
		{"c2021", "b2019"}, {"c2021", "a2020"}, {"c2021", "a2020"},
		{"a2020", "z2019"}, {"a2020", "z2019"}, {"e2023", "a2020"},
	} {
		citations = append(citations, Citation{CitingID: k.CitingID, CitedID: k.CitedID, Score: 95})
	}

	want := []Duplicate{
		{CitingID: "a2020", CitedID: "z2019", Count: 2},
		{CitingID: "c2021", CitedID: "a2020", Count: 2},
		{CitingID: "c2021", CitedID: "b2019", Count: 2},
		{CitingID: "d2022", CitedID: "a2020", Count: 2},
	}
	// Map iteration order varies, so repeat.
	for i := 0; i < 20; i++ {
		got := FindDuplicates(citations)
		if len(got) != len(want) {
			t.Fatalf("FindDuplicates() = %v, want %v", got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("FindDuplicates()[%d] = %+v, want %+v", j, got[j], want[j])
			}
		}
	}
}
