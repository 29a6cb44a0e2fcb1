// Package dataset loads the property sales table and answers lookups over it.
// A Dataset is immutable after Load and safe for concurrent readers.
package dataset

import (
	"sort"
	"strings"

	"github.com/isaacphi/realty/internal/domain"
)

type Dataset struct {
	source  string
	records []domain.PropertyRecord
	// lowercased address and suburb per record, same order as records
	addressKeys []string
	suburbKeys  []string
	report      LoadReport
}

type LoadReport struct {
	Source   string       `json:"source"`
	Rows     int          `json:"rows"`
	Loaded   int          `json:"loaded"`
	Skipped  int          `json:"skipped"`
	Problems []RowProblem `json:"problems,omitempty"`
}

type RowProblem struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func newDataset(source string, records []domain.PropertyRecord, report LoadReport) *Dataset {
	d := &Dataset{
		source:      source,
		records:     records,
		addressKeys: make([]string, len(records)),
		suburbKeys:  make([]string, len(records)),
		report:      report,
	}
	for i, rec := range records {
		d.addressKeys[i] = normalize(rec.Address)
		d.suburbKeys[i] = normalize(rec.Suburb)
	}
	return d
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (d *Dataset) Source() string {
	return d.source
}

func (d *Dataset) Len() int {
	return len(d.records)
}

func (d *Dataset) Report() LoadReport {
	report := d.report
	report.Problems = append([]RowProblem(nil), d.report.Problems...)
	return report
}

// Record returns a copy of the i-th record in file order.
func (d *Dataset) Record(i int) domain.PropertyRecord {
	return d.records[i].Clone()
}

// Suburbs lists the distinct suburb names, sorted.
func (d *Dataset) Suburbs() []string {
	seen := make(map[string]struct{})
	var suburbs []string
	for i, key := range d.suburbKeys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		suburbs = append(suburbs, strings.TrimSpace(d.records[i].Suburb))
	}
	sort.Strings(suburbs)
	return suburbs
}
