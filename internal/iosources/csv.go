package iosources

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnames/consetl/pkg/table"
	"github.com/gnames/gnlib"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// readCSVFile parses a CSV file with a header row into a table.
func readCSVFile(name, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readCSV(name, f)
}

// readCSV parses CSV data. The first record is the header. Rows that are
// shorter or longer than the header are padded or trimmed, cells are
// converted to valid UTF-8.
func readCSV(name string, r io.Reader) (*table.Table, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(bom)); err == nil && bytes.Equal(b, bom) {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row in %s data", name)
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(gnlib.FixUtf8(header[i]))
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for i := range rec {
			rec[i] = gnlib.FixUtf8(rec[i])
		}
		rows = append(rows, rec)
	}

	return table.New(name, header, rows), nil
}
