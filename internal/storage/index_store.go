package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"nounsIndexer/internal/model"
)

// indexFile is the on-disk layout of <dir>/<EventName>.json.
type indexFile struct {
	Events []json.RawMessage `json:"events"`
}

type provenanceOnly struct {
	Provenance *model.Provenance `json:"provenance"`
}

// IndexStore keeps one JSON file per event name. Every write goes to a temp
// file in the same directory which is synced and renamed over the index, and
// writers of the same event name are serialized.
type IndexStore struct {
	dir    string
	decode RecordDecoder

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	rename func(oldpath, newpath string) error
}

func NewIndexStore(dir string, decode RecordDecoder) *IndexStore {
	return &IndexStore{
		dir:    dir,
		decode: decode,
		locks:  make(map[string]*sync.Mutex),
		rename: os.Rename,
	}
}

// Path returns the index file path of an event name.
func (s *IndexStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// RebuildPath returns the side file a rebuild of an event name is written to.
func (s *IndexStore) RebuildPath(name string) string {
	return filepath.Join(s.dir, "."+name+".rebuild.json")
}

func (s *IndexStore) lock(name string) func() {
	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// ReadAll returns every record of an event name in persisted order.
// A missing index yields no records.
func (s *IndexStore) ReadAll(name string) ([]model.Record, error) {
	unlock := s.lock(name)
	defer unlock()

	file, err := s.load(s.Path(name))
	if err != nil {
		return nil, err
	}
	if s.decode == nil {
		return nil, fmt.Errorf("no record decoder configured")
	}

	records := make([]model.Record, 0, len(file.Events))
	for i, raw := range file.Events {
		record, err := s.decode(name, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", ErrCorruptIndex, name, i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Append adds records after the existing content of an event's index.
func (s *IndexStore) Append(name string, records []model.Record) error {
	return s.appendTo(name, s.Path(name), records)
}

// BeginRebuild starts an empty side index for name. The live index stays
// readable and keeps serving LastBlock until CommitRebuild.
func (s *IndexStore) BeginRebuild(name string) error {
	unlock := s.lock(name)
	defer unlock()
	return s.write(name, s.RebuildPath(name), indexFile{})
}

// AppendRebuild adds records to the side index started by BeginRebuild.
func (s *IndexStore) AppendRebuild(name string, records []model.Record) error {
	return s.appendTo(name, s.RebuildPath(name), records)
}

// CommitRebuild atomically replaces the index of name with its side index.
func (s *IndexStore) CommitRebuild(name string) error {
	unlock := s.lock(name)
	defer unlock()

	if _, err := s.load(s.RebuildPath(name)); err != nil {
		return err
	}
	if err := s.rename(s.RebuildPath(name), s.Path(name)); err != nil {
		return fmt.Errorf("%w: commit rebuild of %s: %v", ErrWriteFailure, name, err)
	}
	syncDir(s.dir)
	return nil
}

func (s *IndexStore) appendTo(name, path string, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	unlock := s.lock(name)
	defer unlock()

	file, err := s.load(path)
	if err != nil {
		return err
	}

	var last *model.Provenance
	if n := len(file.Events); n > 0 {
		p, err := lastProvenance(file.Events[n-1])
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorruptIndex, name, err)
		}
		last = &p
	}

	encoded, err := encodeRecords(name, records, last)
	if err != nil {
		return err
	}
	file.Events = append(file.Events, encoded...)

	return s.write(name, path, file)
}

// Rewrite atomically replaces the index of an event name.
func (s *IndexStore) Rewrite(name string, records []model.Record) error {
	unlock := s.lock(name)
	defer unlock()

	encoded, err := encodeRecords(name, records, nil)
	if err != nil {
		return err
	}
	return s.write(name, s.Path(name), indexFile{Events: encoded})
}

// LastBlock returns the block number of the last persisted record.
func (s *IndexStore) LastBlock(name string) (uint64, bool, error) {
	p, ok, err := s.Last(name)
	if err != nil || !ok {
		return 0, false, err
	}
	return p.BlockNumber, true, nil
}

// Last returns the provenance of the last persisted record.
func (s *IndexStore) Last(name string) (model.Provenance, bool, error) {
	unlock := s.lock(name)
	defer unlock()

	file, err := s.load(s.Path(name))
	if err != nil {
		return model.Provenance{}, false, err
	}
	n := len(file.Events)
	if n == 0 {
		return model.Provenance{}, false, nil
	}
	p, err := lastProvenance(file.Events[n-1])
	if err != nil {
		return model.Provenance{}, false, fmt.Errorf("%w: %s: %v", ErrCorruptIndex, name, err)
	}
	return p, true, nil
}

// load reads an index file. A missing file is an empty index; a file whose
// "events" is missing or null is corrupt.
func (s *IndexStore) load(path string) (indexFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return indexFile{}, nil
		}
		return indexFile{}, fmt.Errorf("read index %s: %w", path, err)
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return indexFile{}, fmt.Errorf("%w: %s: %v", ErrCorruptIndex, path, err)
	}
	if file.Events == nil {
		return indexFile{}, fmt.Errorf("%w: %s: missing events", ErrCorruptIndex, path)
	}
	return file, nil
}

func (s *IndexStore) write(name, path string, file indexFile) error {
	if file.Events == nil {
		file.Events = []json.RawMessage{}
	}
	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrWriteFailure, name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create index dir: %v", ErrWriteFailure, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", ErrWriteFailure, name, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("%w: write %s: %v", ErrWriteFailure, name, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%w: sync %s: %v", ErrWriteFailure, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %v", ErrWriteFailure, name, err)
	}
	if err := s.rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename %s: %v", ErrWriteFailure, name, err)
	}

	syncDir(s.dir)
	return nil
}

func encodeRecords(name string, records []model.Record, last *model.Provenance) ([]json.RawMessage, error) {
	encoded := make([]json.RawMessage, 0, len(records))
	for _, record := range records {
		if record == nil {
			return nil, fmt.Errorf("%w: %s: nil record", ErrWriteFailure, name)
		}
		if record.EventName() != name {
			return nil, fmt.Errorf("%w: %s record in %s index", ErrWriteFailure, record.EventName(), name)
		}
		p := record.Origin()
		if last != nil && !last.Before(p) {
			return nil, fmt.Errorf("%w: %s: %s does not follow %s", ErrOutOfOrder, name, p, last)
		}
		last = &p

		data, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal %s record: %v", ErrWriteFailure, name, err)
		}
		encoded = append(encoded, data)
	}
	return encoded, nil
}

func lastProvenance(raw json.RawMessage) (model.Provenance, error) {
	var head provenanceOnly
	if err := json.Unmarshal(raw, &head); err != nil {
		return model.Provenance{}, err
	}
	if head.Provenance == nil {
		return model.Provenance{}, fmt.Errorf("record has no provenance")
	}
	return *head.Provenance, nil
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}
