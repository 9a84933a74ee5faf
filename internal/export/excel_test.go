package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	buf, err := BuildWorkbook([]SheetSpec{
		{
			Title:  "Projects",
			Header: []string{"ID", "Name", "Status"},
			Rows: [][]string{
				{"1", "Project Dragon", "Active"},
				{"2", "Project Phoenix", "Closed"},
			},
		},
		{
			Title:  "Staff",
			Header: []string{"ID", "Name"},
			Rows:   [][]string{{"1", "Alice Chen"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, buf)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Projects", "Staff"}, f.GetSheetList())

	name, err := f.GetCellValue("Projects", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Project Dragon", name)

	header, err := f.GetCellValue("Staff", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)
}

func TestBuildWorkbookRequiresSheets(t *testing.T) {
	_, err := BuildWorkbook(nil)
	assert.Error(t, err)
}

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA", 28: "AB", 52: "AZ", 53: "BA"}
	for n, want := range cases {
		assert.Equal(t, want, colName(n), "n=%d", n)
	}
}
