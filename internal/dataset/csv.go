package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

type CSVResult struct {
	Headers []string
	Rows    [][]string
}

// ReadCSV parses headers plus data rows from an open CSV stream.
func ReadCSV(r io.Reader) (*CSVResult, error) {
	csvReader := csv.NewReader(r)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return &CSVResult{Headers: headers, Rows: rows}, nil
}

// ReadCSVFile reads a local CSV file.
func ReadCSVFile(path string) (*CSVResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// InferColumnType classifies a column from its raw string values. Empty
// strings are treated as missing and do not influence the result.
func InferColumnType(values []string) ColumnType {
	isNumber := true
	isBoolean := true
	isDate := true
	seen := false

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen = true

		if isNumber {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isNumber = false
			}
		}
		if isBoolean {
			lower := strings.ToLower(v)
			if lower != "true" && lower != "false" {
				isBoolean = false
			}
		}
		if isDate {
			if !parsesAsDate(v) {
				isDate = false
			}
		}
	}

	switch {
	case !seen:
		return ColumnTypeString
	case isBoolean:
		return ColumnTypeBoolean
	case isNumber:
		return ColumnTypeNumber
	case isDate:
		return ColumnTypeDate
	default:
		return ColumnTypeString
	}
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// FromCSV converts raw CSV content into a typed Dataset, inferring each
// column's type from its values.
func FromCSV(result *CSVResult) (*Dataset, error) {
	columns := make([]Column, len(result.Headers))
	for i, header := range result.Headers {
		values := make([]string, 0, len(result.Rows))
		for _, row := range result.Rows {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		columns[i] = Column{Name: header, Type: InferColumnType(values)}
	}

	rows := make([]map[string]any, 0, len(result.Rows))
	for _, raw := range result.Rows {
		if len(raw) != len(columns) {
			return nil, fmt.Errorf("row has %d cells, expected %d", len(raw), len(columns))
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			cell, err := parseCell(raw[i], col.Type)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			row[col.Name] = cell
		}
		rows = append(rows, row)
	}

	return New(columns, rows), nil
}

func parseCell(raw string, t ColumnType) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	switch t {
	case ColumnTypeNumber:
		return strconv.ParseFloat(raw, 64)
	case ColumnTypeBoolean:
		return strconv.ParseBool(strings.ToLower(raw))
	default:
		return raw, nil
	}
}
