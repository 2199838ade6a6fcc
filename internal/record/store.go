package record

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"shiftlog/internal/kv"
)

// Key is the kv key the records blob lives under.
const Key = "work_records"

// Store keeps at most one record per date, sorted newest first, and mirrors
// every change to the backing kv store. It is not safe for concurrent use.
type Store struct {
	backend  kv.Store
	logger   *log.Logger
	records  []Record
	onChange func([]Record)
}

func NewStore(backend kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger.WithPrefix("records"),
	}
}

// OnChange registers fn to be called with a copy of the records after every
// reconcile or clear.
func (s *Store) OnChange(fn func([]Record)) {
	s.onChange = fn
}

// Records returns a copy of the current records.
func (s *Store) Records() []Record {
	return slices.Clone(s.records)
}

func (s *Store) Len() int {
	return len(s.records)
}

// Find returns the record stored for date.
func (s *Store) Find(date string) (Record, bool) {
	for _, r := range s.records {
		if r.Date == date {
			return r, true
		}
	}
	return Record{}, false
}

// Reconcile normalizes, keeps the last record per date, sorts by date
// descending, persists and notifies. A persistence failure is logged and
// does not undo the in-memory update.
func (s *Store) Reconcile() {
	Normalize(s.records)
	s.records = dedupeKeepLast(s.records)
	slices.SortStableFunc(s.records, func(a, b Record) int {
		return strings.Compare(b.Date, a.Date)
	})

	_ = s.Persist()
	s.notify()
}

func dedupeKeepLast(recs []Record) []Record {
	byDate := make(map[string]int, len(recs))
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if i, ok := byDate[r.Date]; ok {
			out[i] = r
			continue
		}
		byDate[r.Date] = len(out)
		out = append(out, r)
	}
	return out
}

// Upsert replaces any record with the same date.
func (s *Store) Upsert(r Record) {
	s.records = slices.DeleteFunc(s.records, func(old Record) bool {
		return old.Date == r.Date
	})
	s.records = append(s.records, r)
	s.Reconcile()
}

// Persist writes all records to the backend. Failures are logged and
// returned; the in-memory records are kept either way.
func (s *Store) Persist() error {
	recs := s.records
	if recs == nil {
		recs = []Record{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		s.logger.Warn("encode records", "err", err)
		return err
	}
	if err := s.backend.Set(Key, string(data)); err != nil {
		s.logger.Warn("could not persist records", "err", err, "count", len(recs))
		return fmt.Errorf("persist records: %w", err)
	}
	return nil
}

// Restore loads the persisted records. A missing, unreadable or malformed
// blob leaves the store as it was.
func (s *Store) Restore() {
	blob, ok, err := s.backend.Get(Key)
	if err != nil {
		s.logger.Warn("could not read records", "err", err)
		return
	}
	if !ok {
		s.logger.Debug("no stored records")
		return
	}
	recs, issues, err := Decode([]byte(blob))
	if err != nil {
		s.logger.Warn("ignoring stored records", "err", err)
		return
	}
	s.logIssues(issues)
	s.records = recs
	s.Reconcile()
}

// ImportFromText replaces every record with the JSON array in text. On error
// the store is untouched.
func (s *Store) ImportFromText(text string) error {
	recs, issues, err := Decode([]byte(text))
	if err != nil {
		return err
	}
	s.logIssues(issues)
	s.records = recs
	s.Reconcile()
	s.logger.Info("imported records", "count", len(s.records))
	return nil
}

// ExportToText reconciles and returns the records as indented JSON.
func (s *Store) ExportToText() (string, error) {
	s.Reconcile()
	recs := s.records
	if recs == nil {
		recs = []Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clear drops every record and the persisted blob.
func (s *Store) Clear() {
	s.records = nil
	if err := s.backend.Delete(Key); err != nil {
		s.logger.Warn("could not remove stored records", "err", err)
	}
	s.notify()
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.Records())
	}
}

func (s *Store) logIssues(issues []FieldIssue) {
	for _, is := range issues {
		s.logger.Debug("coerced record field", "err", error(is))
	}
}
