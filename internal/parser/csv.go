package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/tabsync/internal/table"
)

// CSVParser handles CSV files. The first record is taken as the header row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return table.New(records[0], records[1:]), nil
}
