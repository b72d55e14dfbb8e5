// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package fixtures

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSV column names.
const (
	ColDate      = "Date"
	ColName      = "Name"
	ColYear      = "Year"
	ColURI       = "Letterboxd URI"
	ColPosterURL = "Poster URL"
	ColTMDBID    = "TMDB ID"
)

// Row is one data line keyed by header name. Index is the 0-based position
// of the line among data lines.
type Row struct {
	Index  int
	Fields map[string]string
}

// Get returns the trimmed value of column, or "" when the row is short.
func (r Row) Get(column string) string {
	return r.Fields[column]
}

// ParseQuoted reads CSV where double quotes protect commas inside a field.
// Rows may have fewer fields than the header.
func ParseQuoted(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	rows := []Row{}
	for {
		values, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if blank(values) {
			continue
		}
		rows = append(rows, makeRow(len(rows), header, values))
	}
	return rows, nil
}

// ParseSimple splits every line on commas with no quote handling.
func ParseSimple(r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(skipBOM(r))
	var header []string
	rows := []Row{}
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")
		if header == nil {
			header = values
			continue
		}
		rows = append(rows, makeRow(len(rows), header, values))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan csv: %w", err)
	}
	return rows, nil
}

func makeRow(index int, header, values []string) Row {
	fields := make(map[string]string, len(header))
	for i, h := range header {
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		fields[strings.TrimSpace(h)] = v
	}
	return Row{Index: index, Fields: fields}
}

func blank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return br
}
