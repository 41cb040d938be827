// Package pillar reads and updates the pillar data consumed by salt states.
//
// Pillar data lives as YAML documents under a root directory, one file per
// top-level namespace. A key is a slash-separated path; its first segment
// selects the file, the remaining segments walk the nested mappings:
//
//	release/upgrade/repos -> <root>/release.sls : upgrade: repos: ...
package pillar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

// Key is a slash-separated pillar key path, e.g. "release/upgrade/repos".
type Key string

// Segments splits the key into its path components.
func (k Key) Segments() []string {
	s := strings.Trim(string(k), "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// String returns the key path.
func (k Key) String() string {
	return string(k)
}

// Store resolves and updates pillar keys against the YAML documents under a
// root directory. It is safe for concurrent use.
type Store struct {
	root string

	mu sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithRoot overrides the pillar root directory.
func WithRoot(root string) Option {
	return func(s *Store) {
		s.root = root
	}
}

// NewStore creates a pillar store rooted at the default pillar directory
// unless overridden with WithRoot.
func NewStore(opts ...Option) *Store {
	s := &Store{root: config.DefaultPillarRoot}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get resolves a pillar key. A missing file or key resolves to nil unless
// failOnUndefined is set, in which case it fails with an UNDEFINED_PILLAR
// structured error naming the key.
func (s *Store) Get(key Key, failOnUndefined bool) (any, error) {
	segments := key.Segments()
	if len(segments) == 0 {
		return nil, prvsnrerrors.New(prvsnrerrors.ErrCodeInvalidRequest, "empty pillar key")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.readFile(segments[0])
	if err != nil {
		return nil, err
	}

	value := any(doc)
	for _, seg := range segments[1:] {
		m, ok := value.(map[string]any)
		if !ok {
			value = nil
			break
		}
		value = m[seg]
	}
	if doc == nil {
		value = nil
	}

	if value == nil && failOnUndefined {
		return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeUndefinedPillar,
			"pillar key %q is not defined", key)
	}
	return value, nil
}

// GetStringMap resolves a key whose value is a mapping, returning its keys
// and values with string keys.
func (s *Store) GetStringMap(key Key, failOnUndefined bool) (map[string]any, error) {
	value, err := s.Get(key, failOnUndefined)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, prvsnrerrors.Newf(prvsnrerrors.ErrCodeInvalidRequest,
			"pillar key %q does not hold a mapping", key)
	}
	return m, nil
}

// Set updates a pillar key, creating intermediate mappings and the backing
// file as needed.
func (s *Store) Set(key Key, value any) error {
	segments := key.Segments()
	if len(segments) == 0 {
		return prvsnrerrors.New(prvsnrerrors.ErrCodeInvalidRequest, "empty pillar key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readFile(segments[0])
	if err != nil {
		return err
	}
	if doc == nil {
		doc = make(map[string]any)
	}

	if len(segments) == 1 {
		// A single-segment key replaces the whole document; it must stay a
		// mapping to remain valid pillar data.
		m, ok := value.(map[string]any)
		if !ok {
			return prvsnrerrors.Newf(prvsnrerrors.ErrCodeInvalidRequest,
				"top-level pillar key %q requires a mapping value", key)
		}
		doc = m
	} else {
		node := doc
		for _, seg := range segments[1 : len(segments)-1] {
			next, ok := node[seg].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[seg] = next
			}
			node = next
		}
		node[segments[len(segments)-1]] = value
	}

	return s.writeFile(segments[0], doc)
}

// Delete removes a pillar key. Deleting an absent key is a no-op.
func (s *Store) Delete(key Key) error {
	segments := key.Segments()
	if len(segments) < 2 {
		return prvsnrerrors.Newf(prvsnrerrors.ErrCodeInvalidRequest,
			"pillar key %q cannot be deleted", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readFile(segments[0])
	if err != nil || doc == nil {
		return err
	}

	node := doc
	for _, seg := range segments[1 : len(segments)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			return nil
		}
		node = next
	}
	delete(node, segments[len(segments)-1])

	return s.writeFile(segments[0], doc)
}

func (s *Store) path(namespace string) string {
	return filepath.Join(s.root, namespace+".sls")
}

func (s *Store) readFile(namespace string) (map[string]any, error) {
	data, err := os.ReadFile(s.path(namespace))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pillar file for %q: %w", namespace, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("pillar file for %q is not valid YAML: %w", namespace, err)
	}
	return doc, nil
}

func (s *Store) writeFile(namespace string, doc map[string]any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal pillar data for %q: %w", namespace, err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create pillar root: %w", err)
	}
	if err := os.WriteFile(s.path(namespace), data, 0o644); err != nil {
		return fmt.Errorf("failed to write pillar file for %q: %w", namespace, err)
	}
	return nil
}
