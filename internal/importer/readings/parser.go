package readings

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"rentroll/internal/billing"
	enc "rentroll/internal/encoding"
)

// Parser reads a meter-readings CSV and produces billing import items.
// The column layout is auto-detected by matching headers against known
// profiles; both comma and semicolon separators are accepted.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]billing.ImportItem, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, comma := range []rune{',', ';'} {
		rows, err := readAll(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no matching readings layout found: expected unit, previous/current reading, rate and water columns")
}

func readAll(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts import items from data rows using the matched
// profile. Rows without a unit number (footers, blank lines) are skipped;
// malformed numbers are errors, since silently dropping a unit's readings
// would surface as a missing bill much later.
func parseRows(p *Profile, cols colIndex, rows [][]string, firstRowIdx int) ([]billing.ImportItem, error) {
	notesIdx, hasNotes := cols[p.NotesCol]

	var items []billing.ImportItem

	for i, row := range rows {
		rowNum := firstRowIdx + i + 1 // 1-based file row

		unitNumber := cellValue(row, cols[p.UnitCol])
		if unitNumber == "" {
			continue
		}

		item := billing.ImportItem{UnitNumber: unitNumber}

		fields := []struct {
			name string
			idx  int
			dst  *decimal.Decimal
		}{
			{"previous reading", cols[p.PrevCol], &item.ElecPrev},
			{"current reading", cols[p.CurrCol], &item.ElecCurr},
			{"rate", cols[p.RateCol], &item.ElecRate},
			{"water", cols[p.WaterCol], &item.Water},
		}

		for _, f := range fields {
			val, err := parseNumber(cellValue(row, f.idx))
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", rowNum, f.name, err)
			}

			*f.dst = val
		}

		if hasNotes {
			item.Notes = cellValue(row, notesIdx)
		}

		items = append(items, item)
	}

	return items, nil
}

// parseNumber reads a decimal cell, accepting both "1234.56" and the
// European "1.234,56" style. Empty cells read as zero.
func parseNumber(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots are thousands markers.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}

	return d, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
