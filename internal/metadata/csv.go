package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Columns is the CSV header; order is part of the contract.
var Columns = []string{"source_path", "segment_index", "start", "end", "title", "speakers"}

// Appender writes rows to a CSV file one at a time, flushing after every row
// so an interrupted session keeps everything already confirmed.
type Appender struct {
	file   *os.File
	writer *csv.Writer
}

// OpenAppend opens path for appending, writing the header first when the
// file is new or empty.
func OpenAppend(path string) (*Appender, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat csv: %w", err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(Columns); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("write csv header: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("flush csv header: %w", err)
		}
	}

	return &Appender{file: file, writer: writer}, nil
}

// Append writes one row and flushes it to disk.
func (a *Appender) Append(row Row) error {
	record := []string{
		row.SourcePath,
		strconv.Itoa(row.SegmentIndex),
		FormatTimestamp(row.Segment.Start),
		FormatTimestamp(row.Segment.End),
		row.Title,
		strings.Join(row.Speakers, SpeakerDelimiter),
	}
	if err := a.writer.Write(record); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	a.writer.Flush()
	if err := a.writer.Error(); err != nil {
		return fmt.Errorf("flush csv row: %w", err)
	}
	return a.file.Sync()
}

// Close releases the underlying file.
func (a *Appender) Close() error {
	a.writer.Flush()
	flushErr := a.writer.Error()
	closeErr := a.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// ReadFile loads every row from a collector CSV, in file order. The header
// must match Columns exactly.
func ReadFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read decodes rows from r, validating the header and field shapes. Segment
// timestamps are parsed but not range-checked against source durations;
// that is the processor's per-row validation.
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, want := range Columns {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("csv header column %d: got %q, want %q", i+1, header[i], want)
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(record []string) (Row, error) {
	index, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return Row{}, fmt.Errorf("segment index: %w", err)
	}
	start, err := ParseTimestamp(record[2])
	if err != nil {
		return Row{}, err
	}
	end, err := ParseTimestamp(record[3])
	if err != nil {
		return Row{}, err
	}

	var speakers []string
	for _, speaker := range strings.Split(record[5], SpeakerDelimiter) {
		if trimmed := strings.TrimSpace(speaker); trimmed != "" {
			speakers = append(speakers, trimmed)
		}
	}

	return Row{
		SourcePath:   strings.TrimSpace(record[0]),
		SegmentIndex: index,
		Segment:      Segment{Start: start, End: end},
		Title:        strings.TrimSpace(record[4]),
		Speakers:     speakers,
	}, nil
}
