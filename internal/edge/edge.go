// Package edge defines the citation edges inferred between papers.
package edge

import (
	"errors"
	"sort"
)

// Match is a raw inferred citation: the references text of CitingID
// approximately contains the title of CitedID.
type Match struct {
	CitingID string  `json:"citing_id"`
	CitedID  string  `json:"cited_id"`
	Score    float64 `json:"score"` // similarity in [0, 100]
}

// Citation is a match after replacement redirection.
type Citation struct {
	CitingID string  `json:"citing_id"`
	CitedID  string  `json:"cited_id"`
	Score    float64 `json:"score"`
}

// Redirect links a superseded paper to its successor.
type Redirect struct {
	OldID string `json:"old_id"`
	NewID string `json:"new_id"`
}

// Validation errors.
var (
	ErrEmptyCitingID = errors.New("citing_id is required")
	ErrEmptyCitedID  = errors.New("cited_id is required")
	ErrSelfEdge      = errors.New("citing_id and cited_id cannot be the same")
	ErrScoreRange    = errors.New("score must be within [0, 100]")
)

// Validate checks that a citation is well formed.
func (c *Citation) Validate() error {
	if c.CitingID == "" {
		return ErrEmptyCitingID
	}
	if c.CitedID == "" {
		return ErrEmptyCitedID
	}
	if c.CitingID == c.CitedID {
		return ErrSelfEdge
	}
	if c.Score < 0 || c.Score > 100 {
		return ErrScoreRange
	}
	return nil
}

// Key returns the endpoint pair of this citation.
func (c *Citation) Key() Key {
	return Key{CitingID: c.CitingID, CitedID: c.CitedID}
}

// Key identifies a citation by its endpoints.
type Key struct {
	CitingID string
	CitedID  string
}

// OrphanedInfo describes a citation with an endpoint outside the graph.
type OrphanedInfo struct {
	CitingID string `json:"citing_id"`
	CitedID  string `json:"cited_id"`
	Reason   string `json:"reason"` // "missing_citing", "missing_cited", or "missing_both"
}

// DetectOrphaned finds citations that reference papers not in the valid ID set.
// Returns orphaned citations with their reasons and the list of valid ones.
func DetectOrphaned(citations []Citation, validIDs map[string]bool) (orphaned []OrphanedInfo, valid []Citation) {
	for _, c := range citations {
		citingOK := validIDs[c.CitingID]
		citedOK := validIDs[c.CitedID]

		if citingOK && citedOK {
			valid = append(valid, c)
			continue
		}

		info := OrphanedInfo{CitingID: c.CitingID, CitedID: c.CitedID}
		switch {
		case !citingOK && !citedOK:
			info.Reason = "missing_both"
		case !citingOK:
			info.Reason = "missing_citing"
		default:
			info.Reason = "missing_cited"
		}
		orphaned = append(orphaned, info)
	}
	return orphaned, valid
}

// Duplicate is an endpoint pair that appears more than once.
type Duplicate struct {
	CitingID string `json:"citing_id"`
	CitedID  string `json:"cited_id"`
	Count    int    `json:"count"`
}

// FindDuplicates finds endpoint pairs that appear more than once, sorted by
// citing then cited id. Several raw matches redirected to the same successor
// produce these.
func FindDuplicates(citations []Citation) []Duplicate {
	counts := make(map[Key]int)
	for _, c := range citations {
		counts[c.Key()]++
	}

	var duplicates []Duplicate
	for key, count := range counts {
		if count > 1 {
			duplicates = append(duplicates, Duplicate{CitingID: key.CitingID, CitedID: key.CitedID, Count: count})
		}
	}
	sort.Slice(duplicates, func(i, j int) bool {
		if duplicates[i].CitingID != duplicates[j].CitingID {
			return duplicates[i].CitingID < duplicates[j].CitingID
		}
		return duplicates[i].CitedID < duplicates[j].CitedID
	})
	return duplicates
}
