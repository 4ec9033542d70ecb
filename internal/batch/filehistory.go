package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// HistoryFile is the job history file name inside a ledger directory.
const HistoryFile = "job-history.csv"

// historyHeader is the CSV header for job-history.csv.
var historyHeader = []string{
	"job_id", "job_name", "status", "start_time", "end_time",
	"processed", "succeeded", "failed", "errors", "output_path", "error_message",
}

const (
	histNumFields    = 11
	histColJobID     = 0
	histColJobName   = 1
	histColStatus    = 2
	histColStart     = 3
	histColEnd       = 4
	histColProcessed = 5
	histColSucceeded = 6
	histColFailed    = 7
	histColErrors    = 8
	histColOutput    = 9
	histColMessage   = 10
)

// errorsSeparator joins the per-record error strings into one CSV field.
const errorsSeparator = " | "

// FileHistory is an append-only CSV-file History. Appends open the file in
// append mode under a lock, so concurrent writers in one process serialize;
// the file survives restarts.
type FileHistory struct {
	mu   sync.Mutex
	path string
}

// NewFileHistory creates a FileHistory writing to <dir>/job-history.csv.
func NewFileHistory(dir string) *FileHistory {
	return &FileHistory{path: filepath.Join(dir, HistoryFile)}
}

// Append records a finished result.
func (h *FileHistory) Append(res *Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	needsHeader := false
	if _, err := os.Stat(h.path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening job history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(historyHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := cw.Write(marshalResult(res)); err != nil {
		return fmt.Errorf("writing job history row: %w", err)
	}
	return cw.Error()
}

// Get returns a result by job ID.
func (h *FileHistory) Get(jobID string) (*Result, bool, error) {
	results, err := h.read()
	if err != nil {
		return nil, false, err
	}
	for _, res := range results {
		if res.JobID == jobID {
			return res, true, nil
		}
	}
	return nil, false, nil
}

// Recent returns up to limit results, most recent first.
func (h *FileHistory) Recent(limit int) ([]*Result, error) {
	results, err := h.read()
	if err != nil {
		return nil, err
	}
	n := len(results)
	if limit > n {
		limit = n
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]*Result, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, results[i])
	}
	return out, nil
}

func (h *FileHistory) read() ([]*Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening job history: %w", err)
	}
	defer f.Close()

	return readResults(f)
}

func readResults(r io.Reader) ([]*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = histNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading job history CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var results []*Result
	for i, rec := range records[1:] {
		res, err := unmarshalResult(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func marshalResult(res *Result) []string {
	row := make([]string, histNumFields)
	row[histColJobID] = res.JobID
	row[histColJobName] = res.JobName
	row[histColStatus] = string(res.Status)
	row[histColStart] = res.StartTime.Format(time.RFC3339)
	row[histColEnd] = res.EndTime.Format(time.RFC3339)
	row[histColProcessed] = strconv.Itoa(res.RecordsProcessed)
	row[histColSucceeded] = strconv.Itoa(res.RecordsSucceeded)
	row[histColFailed] = strconv.Itoa(res.RecordsFailed)
	row[histColErrors] = strings.Join(res.Errors, errorsSeparator)
	row[histColOutput] = res.OutputFilePath
	row[histColMessage] = res.ErrorMessage
	return row
}

func unmarshalResult(record []string) (*Result, error) {
	if len(record) != histNumFields {
		return nil, fmt.Errorf("expected %d fields, got %d", histNumFields, len(record))
	}

	start, err := time.Parse(time.RFC3339, record[histColStart])
	if err != nil {
		return nil, fmt.Errorf("parsing start_time %q: %w", record[histColStart], err)
	}

	end, err := time.Parse(time.RFC3339, record[histColEnd])
	if err != nil {
		return nil, fmt.Errorf("parsing end_time %q: %w", record[histColEnd], err)
	}

	processed, err := strconv.Atoi(record[histColProcessed])
	if err != nil {
		return nil, fmt.Errorf("parsing processed %q: %w", record[histColProcessed], err)
	}

	succeeded, err := strconv.Atoi(record[histColSucceeded])
	if err != nil {
		return nil, fmt.Errorf("parsing succeeded %q: %w", record[histColSucceeded], err)
	}

	failed, err := strconv.Atoi(record[histColFailed])
	if err != nil {
		return nil, fmt.Errorf("parsing failed %q: %w", record[histColFailed], err)
	}

	var errs []string
	if record[histColErrors] != "" {
		errs = strings.Split(record[histColErrors], errorsSeparator)
	}

	return &Result{
		JobID:            record[histColJobID],
		JobName:          record[histColJobName],
		Status:           Status(record[histColStatus]),
		StartTime:        start,
		EndTime:          end,
		RecordsProcessed: processed,
		RecordsSucceeded: succeeded,
		RecordsFailed:    failed,
		Errors:           errs,
		OutputFilePath:   record[histColOutput],
		ErrorMessage:     record[histColMessage],
	}, nil
}
