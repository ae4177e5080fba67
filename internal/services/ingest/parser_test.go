package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsBlankLines(t *testing.T) {
	content := "Name, Email ,PHONE\r\n\n   \nAlice,a@x.com,555\r\n\nBob,b@x.com,556\n"
	table, err := Parse(content)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "email", "phone"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 1, table.Rows[0].Index)
	assert.Equal(t, []string{"Alice", "a@x.com", "555"}, table.Rows[0].Cells)
	assert.Equal(t, 2, table.Rows[1].Index)
	assert.Equal(t, 2, table.DataLines)
	assert.Empty(t, table.Skipped)
}

func TestParseDropsShortRows(t *testing.T) {
	content := "name,email,phone,outstanding_amount,days_overdue\n" +
		"Alice,a@x.com,555-1,12000,95\n" +
		"Carol,c@x.com,555-3\n" +
		"Dave,d@x.com,555-4,10,1\n"
	table, err := Parse(content)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 1, table.Rows[0].Index)
	assert.Equal(t, 3, table.Rows[1].Index)
	assert.Equal(t, []int{2}, table.Skipped)
	assert.LessOrEqual(t, len(table.Rows), table.DataLines)
}

func TestParseKeepsLongRows(t *testing.T) {
	table, err := Parse("name,amount\nAlice,10,extra\n")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0].Cells, 3)
}

func TestParseDoesNotHonourQuotes(t *testing.T) {
	table, err := Parse("name,amount\n\"Smith, John\",100\n")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"\"Smith", " John\"", "100"}, table.Rows[0].Cells)
}

func TestParseHeaderOnly(t *testing.T) {
	table, err := Parse("name,amount\n")
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Zero(t, table.DataLines)
}

func TestParseEmpty(t *testing.T) {
	for _, content := range []string{"", "\n\n", "   \r\n\t\n"} {
		_, err := Parse(content)
		assert.True(t, errors.Is(err, ErrEmptyFile), "content=%q", content)
	}
}
