package surface

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xhhuango/json"

	"github.com/bcdannyboy/optcross/models"
)

// LoadCSV reads surface rows from a CSV file. The header must contain the
// columns maturity, strike and iv (any order, case-insensitive); extra
// columns are ignored.
func LoadCSV(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open surface file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumns)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"maturity", "strike", "iv"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, required)
		}
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read surface rows: %w", err)
	}

	rows := make([]Point, 0, len(records))
	for i, record := range records {
		p, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("surface row %d: %w", i+1, err)
		}
		rows = append(rows, p)
	}
	return rows, nil
}

func parseRow(record []string, cols map[string]int) (Point, error) {
	field := func(name string) (float64, error) {
		idx := cols[name]
		if idx >= len(record) {
			return 0, fmt.Errorf("%w: short row", models.ErrInvalidInput)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad %s value %q", models.ErrInvalidInput, name, record[idx])
		}
		return v, nil
	}

	var p Point
	var err error
	if p.Maturity, err = field("maturity"); err != nil {
		return Point{}, err
	}
	if p.Strike, err = field("strike"); err != nil {
		return Point{}, err
	}
	if p.IV, err = field("iv"); err != nil {
		return Point{}, err
	}
	return p, nil
}

// LoadJSON reads surface rows from a JSON array of
// {"maturity": ..., "strike": ..., "iv": ...} objects.
func LoadJSON(path string) ([]Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open surface file: %w", err)
	}

	var rows []Point
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode surface rows: %w", err)
	}
	for i, p := range rows {
		if p.Maturity <= 0 || p.Strike <= 0 {
			return nil, fmt.Errorf("%w: row %d needs positive maturity and strike", ErrMissingColumns, i+1)
		}
	}
	return rows, nil
}
