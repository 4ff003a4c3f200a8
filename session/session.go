// Package session holds state owned by an interactive user, like notes taken while browsing
// reports. It is never read by the metrics engine.
package session

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"
)

// Session is an in-memory key-value store safe for concurrent use.
// The zero value is an empty session ready to use.
type Session struct {
	mu     sync.RWMutex
	values map[string]string
}

// New returns an empty session.
func New() *Session { return &Session{} }

// Set stores value under key, replacing any previous value.
func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Append adds a line to the value stored under key.
func (s *Session) Append(key, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if v, ok := s.values[key]; ok && v != "" {
		line = v + "\n" + line
	}
	s.values[key] = line
}

// Delete removes key. It is a no-op if key is absent.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns all keys in alphabetical order.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of keys.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Encode writes the session as a JSON object.
func (s *Session) Encode(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := s.values
	if values == nil {
		values = map[string]string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(values)
}

// Decode reads a session previously written by Encode. Values are merged into s.
func (s *Session) Decode(r io.Reader) error {
	var values map[string]string
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("could not decode session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string, len(values))
	}
	maps.Copy(s.values, values)
	return nil
}
