package secret

import (
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 form used for record timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Finding is one detection. Two findings are the same when both fields match.
type Finding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Type, f.Value)
}

// Record is the result of scanning one URL at one point in time.
type Record struct {
	URL       string    `json:"url"`
	Timestamp string    `json:"timestamp"`
	Findings  []Finding `json:"findings"`
}

func NewRecord(url string, ts time.Time) Record {
	return Record{
		URL:       url,
		Timestamp: ts.Format(TimestampLayout),
		Findings:  []Finding{},
	}
}

func (r *Record) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

func (r Record) Empty() bool {
	return len(r.Findings) == 0
}

/*
   Returns a copy of the record without the findings already in seen,
   together with the number of findings removed
*/
func (r Record) Prune(seen FindingSet) (Record, int) {
	pruned := Record{
		URL:       r.URL,
		Timestamp: r.Timestamp,
		Findings:  make([]Finding, 0, len(r.Findings)),
	}

	removed := 0
	for _, f := range r.Findings {
		if seen.Contains(f) {
			removed++
			continue
		}
		pruned.Findings = append(pruned.Findings, f)
	}

	return pruned, removed
}

// FindingSet holds every finding of a set of records.
type FindingSet map[Finding]struct{}

func NewFindingSet(records ...Record) FindingSet {
	set := make(FindingSet)
	for _, r := range records {
		for _, f := range r.Findings {
			set[f] = struct{}{}
		}
	}
	return set
}

func (s FindingSet) Contains(f Finding) bool {
	_, ok := s[f]
	return ok
}

func (s FindingSet) Add(f Finding) {
	s[f] = struct{}{}
}

func GroupFindings(findings []Finding) map[string][]Finding {
	groups := make(map[string][]Finding)

	for _, f := range findings {
		groups[f.Type] = append(groups[f.Type], f)
	}

	return groups
}

// CountFindings totals the findings across records.
func CountFindings(records []Record) int {
	total := 0
	for _, r := range records {
		total += len(r.Findings)
	}
	return total
}
