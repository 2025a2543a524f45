package benchplot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV writes t as comma separated values: a header row with the
// column names in column order, then one record per row. Missing cells
// are empty. If index is true a leading unnamed column holds the row
// number.
func WriteCSV(w io.Writer, t *Table, index bool) error {
	cw := csv.NewWriter(w)
	header := t.FieldNames()
	if index {
		header = append([]string{""}, header...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for i := 0; i < t.N; i++ {
		j := 0
		if index {
			record[0] = strconv.Itoa(i)
			j = 1
		}
		for _, col := range t.Order {
			record[j] = t.Columns[col].Format(i)
			j++
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes t to path, creating missing directories.
func SaveCSV(path string, t *Table, index bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t, index); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV reads a table written by WriteCSV or any CSV file with a
// header row. Column types are inferred: Int if every non-empty cell is
// an integer, Float if every non-empty cell is a number, String
// otherwise. Empty cells are missing. A column with an empty header is
// named "index".
func ReadCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: no header row", name)
	}
	header, body := records[0], records[1:]

	t := NewTable(name, nil)
	t.N = len(body)
	for c, col := range header {
		if col == "" {
			col = "index"
		}
		if t.Has(col) {
			return nil, fmt.Errorf("read %s: %w: %q", name, ErrColumnExists, col)
		}
		typ := csvType(body, c)
		f := NewField(t.N, typ, t.Pool)
		for i, rec := range body {
			cell := rec[c]
			if cell == "" {
				f.SetNA(i)
				continue
			}
			switch typ {
			case Int:
				n, _ := strconv.ParseInt(cell, 10, 64)
				f.Data[i] = float64(n)
			case Float:
				f.Data[i], _ = strconv.ParseFloat(cell, 64)
			default:
				f.Data[i] = float64(t.Pool.Add(cell))
			}
		}
		t.Add(col, f)
	}
	return t, nil
}

// LoadCSV reads the CSV file at path, the table is named after the file.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, filepath.Base(path))
}

func csvType(body [][]string, c int) FieldType {
	typ := Int
	for _, rec := range body {
		cell := rec[c]
		if cell == "" {
			continue
		}
		if typ == Int {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			typ = Float
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return String
		}
	}
	return typ
}
