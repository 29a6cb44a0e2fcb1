package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/isaacphi/realty/internal/domain"
)

//go:embed data/melbourne_sample.csv
var bundledCSV []byte

// BundledSource names the sample table compiled into the binary. Load uses it
// when no path is configured.
const BundledSource = "bundled:melbourne_sample.csv"

// maxProblems caps how many skipped rows are kept in the LoadReport.
const maxProblems = 20

// Load reads the property table at path, or the bundled sample when path is
// empty. Rows that fail to parse are skipped and counted; an unreadable file
// or header is a DataLoadError.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return parse(BundledSource, bytes.NewReader(bundledCSV))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.DataLoadError{Path: path, Err: errors.Wrap(err, "open")}
	}
	defer f.Close()
	return parse(path, f)
}

func parse(source string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, domain.DataLoadError{Path: source, Err: fmt.Errorf("file is empty")}
	}
	if err != nil {
		return nil, domain.DataLoadError{Path: source, Err: errors.Wrap(err, "read header")}
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, domain.DataLoadError{Path: source, Err: err}
	}

	report := LoadReport{Source: source}
	var records []domain.PropertyRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.DataLoadError{Path: source, Err: errors.Wrapf(err, "read row %d", report.Rows+1)}
		}
		report.Rows++
		line, _ := cr.FieldPos(0)

		if len(row) != len(header) {
			report.skip(line, fmt.Sprintf("expected %d fields, got %d", len(header), len(row)))
			continue
		}
		rec, err := parseRow(cols, row)
		if err != nil {
			report.skip(line, err.Error())
			continue
		}
		records = append(records, rec)
	}
	report.Loaded = len(records)

	if report.Skipped > 0 {
		slog.Warn("skipped unparsable dataset rows", "source", source, "skipped", report.Skipped, "loaded", report.Loaded)
	}
	slog.Debug("dataset loaded", "source", source, "records", report.Loaded)
	return newDataset(source, records, report), nil
}

func (r *LoadReport) skip(line int, reason string) {
	r.Skipped++
	if len(r.Problems) < maxProblems {
		r.Problems = append(r.Problems, RowProblem{Line: line, Reason: reason})
	}
}
