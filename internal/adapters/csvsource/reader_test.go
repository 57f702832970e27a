package csvsource_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/money_managemet_app/internal/adapters/csvsource"
	"github.com/SscSPs/money_managemet_app/internal/apperrors"
)

func TestRows(t *testing.T) {
	src := strings.Join([]string{
		"Reference Number,Transaction Date,Account Name,Debit,Credit",
		"JE001,03-10-2024,Cash,100.00,",
		"JE001,03-10-2024,Revenue,,100.00",
	}, "\n")

	rows, err := csvsource.Rows(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "JE001", rows[0]["Reference Number"])
	assert.Equal(t, "100.00", rows[0]["Debit"])
	assert.Equal(t, "", rows[0]["Credit"])
	assert.Equal(t, "100.00", rows[1]["Credit"])
}

func TestRowsTrimsHeaderWhitespace(t *testing.T) {
	src := "Reference Number , Transaction Date\nJE001,03-10-2024\n"

	rows, err := csvsource.Rows(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "JE001", rows[0]["Reference Number"])
	assert.Equal(t, "03-10-2024", rows[0]["Transaction Date"])
}

func TestRowsPadsShortRecords(t *testing.T) {
	src := "Reference Number,Transaction Date,Account Name\nJE001,03-10-2024\n"

	rows, err := csvsource.Rows(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["Account Name"])
}

func TestRowsQuotedFields(t *testing.T) {
	src := "Reference Number,Description\nJE001,\"sale, net of tax\"\n"

	rows, err := csvsource.Rows(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "sale, net of tax", rows[0]["Description"])
}

func TestRowsEmptySource(t *testing.T) {
	_, err := csvsource.Rows(strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
}

func TestRowsHeaderOnly(t *testing.T) {
	rows, err := csvsource.Rows(strings.NewReader("Reference Number,Transaction Date\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRowsMalformedQuote(t *testing.T) {
	src := "Reference Number,Description\nJE001,\"broken\n"

	_, err := csvsource.Rows(strings.NewReader(src))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
}
