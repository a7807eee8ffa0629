package readings_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentroll/internal/importer/readings"
)

func TestParser_ExportLayout(t *testing.T) {
	csv := strings.Join([]string{
		"unit_number,elec_prev_reading,elec_curr_reading,elec_rate,water_amount,notes",
		"101,100,150,11,200,",
		"102,230.5,280.25,11,200,late reader",
	}, "\n")

	items, err := readings.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "101", items[0].UnitNumber)
	assert.True(t, items[0].ElecPrev.Equal(decimal.RequireFromString("100")))
	assert.True(t, items[0].ElecCurr.Equal(decimal.RequireFromString("150")))
	assert.True(t, items[0].ElecRate.Equal(decimal.RequireFromString("11")))
	assert.True(t, items[0].Water.Equal(decimal.RequireFromString("200")))
	assert.Empty(t, items[0].Notes)

	assert.Equal(t, "102", items[1].UnitNumber)
	assert.True(t, items[1].ElecCurr.Equal(decimal.RequireFromString("280.25")))
	assert.Equal(t, "late reader", items[1].Notes)
}

func TestParser_SheetLayoutSemicolon(t *testing.T) {
	csv := strings.Join([]string{
		"Unit;Previous Reading;Current Reading;Rate;Water;Notes",
		"301;1.234,5;1.345,8;10,75;180,50;",
	}, "\n")

	items, err := readings.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "301", items[0].UnitNumber)
	assert.True(t, items[0].ElecPrev.Equal(decimal.RequireFromString("1234.5")),
		"prev = %s", items[0].ElecPrev)
	assert.True(t, items[0].ElecCurr.Equal(decimal.RequireFromString("1345.8")),
		"curr = %s", items[0].ElecCurr)
	assert.True(t, items[0].ElecRate.Equal(decimal.RequireFromString("10.75")),
		"rate = %s", items[0].ElecRate)
	assert.True(t, items[0].Water.Equal(decimal.RequireFromString("180.50")),
		"water = %s", items[0].Water)
}

// Sheets exported from spreadsheets often carry a title row above the
// header and a totals row below the data; both must be ignored.
func TestParser_SkipsPreambleAndFooter(t *testing.T) {
	csv := strings.Join([]string{
		"Meter readings March 2024",
		"Unit,Previous Reading,Current Reading,Rate,Water,Notes",
		"101,100,150,11,200,",
		",,,,,",
		",450,580,,,Total",
	}, "\n")

	items, err := readings.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "101", items[0].UnitNumber)
}

func TestParser_EmptyCellsReadAsZero(t *testing.T) {
	csv := strings.Join([]string{
		"unit_number,elec_prev_reading,elec_curr_reading,elec_rate,water_amount,notes",
		"101,,,11,,",
	}, "\n")

	items, err := readings.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].ElecPrev.IsZero())
	assert.True(t, items[0].ElecCurr.IsZero())
	assert.True(t, items[0].Water.IsZero())
}

func TestParser_MalformedNumber(t *testing.T) {
	csv := strings.Join([]string{
		"unit_number,elec_prev_reading,elec_curr_reading,elec_rate,water_amount,notes",
		"101,100,150,11,200,",
		"102,abc,280,11,200,",
	}, "\n")

	items, err := readings.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "previous reading")
}

func TestParser_UnknownLayout(t *testing.T) {
	csv := strings.Join([]string{
		"a,b,c",
		"1,2,3",
	}, "\n")

	items, err := readings.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, items)
}
