package survey

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	return hasSuffix(filename, ".csv", ".tsv")
}

func (csvReader) Read(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, sniffDelimiter(path))
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a delimited stream whose first record is the header. A
// leading UTF-8 byte-order mark is dropped and stray quotes inside unquoted
// fields are kept as text.
func ReadCSV(src io.Reader, delim rune) ([]string, [][]string, error) {
	br := bufio.NewReader(src)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return header, records, nil
}

func sniffDelimiter(path string) rune {
	if hasSuffix(path, ".tsv") {
		return '\t'
	}
	return ','
}
