// Package userstore persists a small ordered collection of user records as a
// single JSON document.
//
// The store is stateless between calls: every operation re-reads the document
// and every mutation rewrites it whole (no incremental patching). Concurrent
// read-modify-write cycles therefore race - two simultaneous Appends can both
// read the same prior state and the second write discards the first addition.
// That lost-update behavior is a documented property of the whole-document
// design, not a bug to patch here.
package userstore

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// UsersFileName is the fixed file name of the document under the data
// directory.
const UsersFileName = "users.json"

// Record is one user entry.
type Record struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RejectedRecord is a record that failed validation during AppendAll, with
// the reason it was rejected.
type RejectedRecord struct {
	Record Record `json:"record"`
	Reason string `json:"reason"`
}

// Stats summarizes the persisted collection.
type Stats struct {
	Total       int `json:"total"`
	UniqueNames int `json:"unique_names"`
}

// document is the persisted wire shape: {"users": [...]}.
type document struct {
	Users []Record `json:"users"`
}

// Store reads and writes the users document at a fixed path.
type Store struct {
	path      string
	validator *docValidator
}

// New creates a Store rooted at dataDir. The data directory itself is created
// by the server bootstrap, not by the store.
func New(dataDir string) (*Store, error) {
	v, err := newDocValidator()
	if err != nil {
		return nil, fmt.Errorf("compiling users document schema: %w", err)
	}
	return &Store{
		path:      filepath.Join(dataDir, UsersFileName),
		validator: v,
	}, nil
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full collection from the document.
// A missing file is an empty collection, not an error.
func (s *Store) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStorage, s.path, err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", ErrCorrupt, s.path, err)
	}
	if errs := s.validator.validate(value); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrCorrupt, s.path, strings.Join(errs, "; "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []Record{}
	}
	return doc.Users, nil
}

// Append validates the record, then performs a full read-modify-write cycle:
// load, append preserving order, rewrite the whole document. Returns the
// updated collection. Duplicate names are allowed.
func (s *Store) Append(r Record) ([]Record, error) {
	if err := validateRecord(r); err != nil {
		return nil, err
	}

	users, err := s.Load()
	if err != nil {
		return nil, err
	}

	users = append(users, r)
	if err := s.WriteAll(users); err != nil {
		return nil, err
	}

	slog.Debug("user appended", "name", r.Name, "total", len(users))
	return users, nil
}

// AppendAll validates and appends many records in one read-modify-write
// cycle. Invalid records are collected and skipped; valid records are
// appended in input order and written with a single document replace. When
// every record is invalid no write happens.
func (s *Store) AppendAll(records []Record) (added []Record, rejected []RejectedRecord, err error) {
	users, err := s.Load()
	if err != nil {
		return nil, nil, err
	}

	for _, r := range records {
		if verr := validateRecord(r); verr != nil {
			rejected = append(rejected, RejectedRecord{Record: r, Reason: verr.Error()})
			continue
		}
		users = append(users, r)
		added = append(added, r)
	}

	if len(added) == 0 {
		return added, rejected, nil
	}
	if err := s.WriteAll(users); err != nil {
		return nil, nil, err
	}
	return added, rejected, nil
}

// Count returns the number of records in the persisted collection.
func (s *Store) Count() (int, error) {
	users, err := s.Load()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// FindByName returns every record whose name matches exactly
// (case-sensitive), preserving insertion order. No match is an empty slice,
// not an error.
func (s *Store) FindByName(name string) ([]Record, error) {
	users, err := s.Load()
	if err != nil {
		return nil, err
	}

	matches := []Record{}
	for _, u := range users {
		if u.Name == name {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

// Stats returns the collection length and the number of distinct names.
func (s *Store) Stats() (Stats, error) {
	users, err := s.Load()
	if err != nil {
		return Stats{}, err
	}

	names := make(map[string]struct{}, len(users))
	for _, u := range users {
		names[u.Name] = struct{}{}
	}
	return Stats{Total: len(users), UniqueNames: len(names)}, nil
}

// WriteAll replaces the document content with the given collection. This is a
// whole-document replace via direct overwrite; a crash mid-write can leave a
// truncated document, which the next Load reports as corrupt.
func (s *Store) WriteAll(users []Record) error {
	if users == nil {
		users = []Record{}
	}

	data, err := json.MarshalIndent(document{Users: users}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding users document: %v", ErrStorage, err)
	}

	if err := os.WriteFile(s.path, data, fs.FileMode(0644)); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorage, s.path, err)
	}
	return nil
}

// validateRecord applies the store's shape check: non-empty name, email
// containing "@". Email format beyond that is the caller's concern.
func validateRecord(r Record) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidRecord)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: email %q must contain '@'", ErrInvalidRecord, r.Email)
	}
	return nil
}
