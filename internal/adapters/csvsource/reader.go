// Package csvsource turns a CSV stream into the key-value rows the bulk
// importer consumes. It deals only with reading mechanics; all semantic
// validation of the rows happens in the importer.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/dto"
)

// Rows reads the whole CSV stream and returns one map per record, keyed by
// the header column names. An unreadable stream or a missing header is an
// ErrInvalidFile; ragged records are tolerated and padded with empty values.
func Rows(r io.Reader) ([]dto.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, importer validates content
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty csv source", apperrors.ErrInvalidFile)
		}
		return nil, fmt.Errorf("%w: unreadable csv header: %v", apperrors.ErrInvalidFile, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []dto.ImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable csv record: %v", apperrors.ErrInvalidFile, err)
		}

		row := make(dto.ImportRow, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
