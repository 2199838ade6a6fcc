package record

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data    map[string]string
	failSet bool
	failGet bool
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(key string) (string, bool, error) {
	if m.failGet {
		return "", false, errors.New("read failed")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	if m.failSet {
		return errors.New("quota exceeded")
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func dates(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Date
	}
	return out
}

func TestReconcileKeepsLastPerDate(t *testing.T) {
	s := NewStore(newMemKV(), quietLogger())
	s.records = []Record{
		{Date: "2024-01-02", Start: "08:00", Worked: 1},
		{Date: "2024-01-01", Start: "09:00", Worked: 2},
		{Date: "2024-01-02", Start: "10:00", Worked: 3},
	}
	s.Reconcile()

	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, Record{Date: "2024-01-02", Start: "10:00", Worked: 3}, recs[0])
	assert.Equal(t, "2024-01-01", recs[1].Date)
}

func TestReconcileSortsDescending(t *testing.T) {
	s := NewStore(newMemKV(), quietLogger())
	s.records = []Record{
		{Date: "2023-12-31"},
		{Date: "2024-02-01"},
		{Date: "2024-01-15"},
		{Date: "2024-01-02"},
	}
	s.Reconcile()

	recs := s.Records()
	for i := 0; i+1 < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i].Date, recs[i+1].Date)
	}
	assert.Equal(t, []string{"2024-02-01", "2024-01-15", "2024-01-02", "2023-12-31"}, dates(recs))
}

func TestNormalizeIdempotent(t *testing.T) {
	recs := []Record{{Date: "2024-01-01", Worked: math.NaN(), Balance: math.Inf(1), Allocated: 8}}
	Normalize(recs)
	once := append([]Record(nil), recs...)
	Normalize(recs)
	assert.Equal(t, once, recs)
	assert.Equal(t, Record{Date: "2024-01-01", Allocated: 8}, recs[0])
}

func TestUpsertOverwritesSameDay(t *testing.T) {
	backend := newMemKV()
	s := NewStore(backend, quietLogger())
	var seen []Record
	s.OnChange(func(recs []Record) { seen = recs })

	s.Upsert(Record{Date: "2024-01-01", Start: "09:00", End: "17:00", Worked: 8})
	s.Upsert(Record{Date: "2024-01-01", Start: "09:00", End: "18:00", Worked: 9, Balance: 1})

	require.Equal(t, 1, s.Len())
	r, ok := s.Find("2024-01-01")
	require.True(t, ok)
	assert.Equal(t, 9.0, r.Worked)
	assert.Equal(t, s.Records(), seen)
	assert.Contains(t, backend.data[Key], `"worked":9`)
}

func TestPersistFailureKeepsMemory(t *testing.T) {
	backend := newMemKV()
	backend.failSet = true
	s := NewStore(backend, quietLogger())
	notified := 0
	s.OnChange(func([]Record) { notified++ })

	s.Upsert(Record{Date: "2024-03-01", Worked: 8})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, notified)
	assert.Empty(t, backend.data)
	assert.Error(t, s.Persist())
}

func TestRestore(t *testing.T) {
	t.Run("missing blob is a no-op", func(t *testing.T) {
		s := NewStore(newMemKV(), quietLogger())
		s.records = []Record{{Date: "2024-01-01"}}
		s.Restore()
		assert.Equal(t, []string{"2024-01-01"}, dates(s.Records()))
	})

	t.Run("corrupt blob is a no-op", func(t *testing.T) {
		backend := newMemKV()
		backend.data[Key] = `{"date":"2024-01-01"}`
		s := NewStore(backend, quietLogger())
		s.Restore()
		assert.Equal(t, 0, s.Len())

		backend.data[Key] = `[{`
		s.Restore()
		assert.Equal(t, 0, s.Len())
	})

	t.Run("blob with trailing data is a no-op", func(t *testing.T) {
		backend := newMemKV()
		backend.data[Key] = `[{"date":"2024-01-01"}] ]`
		s := NewStore(backend, quietLogger())
		s.records = []Record{{Date: "2024-05-05"}}
		s.Restore()
		assert.Equal(t, []string{"2024-05-05"}, dates(s.Records()))
	})

	t.Run("read failure is a no-op", func(t *testing.T) {
		backend := newMemKV()
		backend.failGet = true
		s := NewStore(backend, quietLogger())
		s.Restore()
		assert.Equal(t, 0, s.Len())
	})

	t.Run("loads and reconciles", func(t *testing.T) {
		backend := newMemKV()
		backend.data[Key] = `[
			{"date":"2024-01-01","worked":"8","balance":0},
			{"date":"2024-01-03","worked":9,"balance":1,"cargoLate":0.5},
			{"date":"2024-01-01","worked":7.5}
		]`
		s := NewStore(backend, quietLogger())
		s.Restore()

		recs := s.Records()
		require.Len(t, recs, 2)
		assert.Equal(t, "2024-01-03", recs[0].Date)
		assert.Equal(t, 0.5, recs[0].CargoLate)
		assert.Equal(t, 7.5, recs[1].Worked)
	})
}

func TestImportFromText(t *testing.T) {
	s := NewStore(newMemKV(), quietLogger())
	s.Upsert(Record{Date: "2024-05-05", Worked: 8})

	for _, bad := range []string{
		`{"date":"x"}`, `not json`, `null`, `42`,
		`[] garbage`, `[{"date":"2024-01-01"}] ]`, `[]{}`, `[][]`,
	} {
		err := s.ImportFromText(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
	assert.Equal(t, []string{"2024-05-05"}, dates(s.Records()))

	require.NoError(t, s.ImportFromText(`[{"date":"2024-01-01","worked":8},{"date":"2024-01-02","worked":"x"}]`))
	recs := s.Records()
	assert.Equal(t, []string{"2024-01-02", "2024-01-01"}, dates(recs))
	assert.Equal(t, 0.0, recs[0].Worked)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := NewStore(newMemKV(), quietLogger())
	src.Upsert(Record{Date: "2024-01-01", Start: "09:00", End: "18:00", Allocated: 8, Worked: 9, Balance: 1, CargoLate: 0.25})
	src.Upsert(Record{Date: "2024-01-02", Start: "22:00", End: "06:00", Worked: 8, Balance: 8})

	text, err := src.ExportToText()
	require.NoError(t, err)
	assert.Contains(t, text, "\n  {")

	dst := NewStore(newMemKV(), quietLogger())
	require.NoError(t, dst.ImportFromText(text))
	assert.Equal(t, src.Records(), dst.Records())
}

func TestExportEmptyStore(t *testing.T) {
	s := NewStore(newMemKV(), quietLogger())
	text, err := s.ExportToText()
	require.NoError(t, err)
	assert.Equal(t, "[]", text)
}

func TestClear(t *testing.T) {
	backend := newMemKV()
	s := NewStore(backend, quietLogger())
	s.Upsert(Record{Date: "2024-01-01"})
	require.Contains(t, backend.data, Key)

	var seen []Record
	s.OnChange(func(recs []Record) { seen = recs })
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.NotContains(t, backend.data, Key)
	assert.Empty(t, seen)
}
