// Package chrome provides a treestore.Store backed by a Chromium profile's
// "Bookmarks" file.
//
// The file is handled as a generic JSON document so that fields marksort
// doesn't model (dates, GUIDs, meta_info, sync metadata) survive a rewrite.
// Chromium keeps the tree in memory while it runs and overwrites the file on
// its own schedule, so moves should be applied while the browser is closed.
package chrome

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/treestore"
)

// rootNames are the permanent folders under "roots", in display order.
var rootNames = []string{"bookmark_bar", "other", "synced"}

// Store implements treestore.Store over a Bookmarks file.
type Store struct {
	path string

	// mu serializes read-modify-write cycles on the file.
	mu sync.Mutex
}

// NewStore creates a store for the Bookmarks file at path. The file must exist.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("bookmarks file path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening bookmarks file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("bookmarks path %s is a directory", path)
	}

	return &Store{path: path}, nil
}

// DefaultPath returns the Bookmarks file of the default Chrome profile for
// the current platform.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "Bookmarks"), nil
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Bookmarks"), nil
	default:
		return filepath.Join(home, ".config", "google-chrome", "Default", "Bookmarks"), nil
	}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// FetchTree parses the file into a tree rooted at a synthetic folder with id
// bookmark.RootID whose children are the permanent folders.
func (s *Store) FetchTree(_ context.Context) (*bookmark.Node, error) {
	s.mu.Lock()
	doc, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	roots, err := rootsOf(doc)
	if err != nil {
		return nil, err
	}

	root := bookmark.NewFolder(bookmark.RootID, "")
	for _, name := range rootNames {
		raw, ok := roots[name].(map[string]any)
		if !ok {
			continue
		}

		node, err := toNode(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		root.Children = append(root.Children, node)
	}

	return root, nil
}

// Move relocates id to index within its current parent and rewrites the file
// atomically. The stale checksum is dropped so Chromium recomputes it.
func (s *Store) Move(_ context.Context, id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	roots, err := rootsOf(doc)
	if err != nil {
		return err
	}

	var parent map[string]any
	pos := -1
	for _, name := range rootNames {
		raw, ok := roots[name].(map[string]any)
		if !ok {
			continue
		}
		if stringField(raw, "id") == id {
			return treestore.ErrRootChild
		}
		if parent, pos = locate(raw, id); parent != nil {
			break
		}
	}
	if parent == nil {
		return treestore.NotFoundError{ID: id}
	}

	children, _ := parent["children"].([]any)
	node := children[pos]
	rest := slices.Delete(slices.Clone(children), pos, pos+1)

	if index < 0 || index > len(rest) {
		return treestore.IndexError{ID: id, Index: index, Len: len(rest)}
	}

	parent["children"] = slices.Insert(rest, index, node)
	delete(doc, "checksum")

	return s.write(doc)
}

// Close is a no-op; the file is only open during reads and writes.
func (s *Store) Close() error {
	return nil
}

func (s *Store) read() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding bookmarks file: %w", err)
	}

	return doc, nil
}

func (s *Store) write(doc map[string]any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "   ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding bookmarks file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".Bookmarks-*")
	if err != nil {
		return fmt.Errorf("creating temp bookmarks file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp bookmarks file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp bookmarks file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing bookmarks file: %w", err)
	}

	return nil
}

func rootsOf(doc map[string]any) (map[string]any, error) {
	roots, ok := doc["roots"].(map[string]any)
	if !ok {
		return nil, errors.New("bookmarks file has no roots object")
	}
	return roots, nil
}

func toNode(raw map[string]any) (*bookmark.Node, error) {
	id := stringField(raw, "id")
	title := stringField(raw, "name")

	switch stringField(raw, "type") {
	case "url":
		return bookmark.NewLeaf(id, title, stringField(raw, "url")), nil
	case "folder":
		items, _ := raw["children"].([]any)
		children := make([]*bookmark.Node, 0, len(items))
		for _, item := range items {
			child, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("folder %q has a non-object child", id)
			}
			node, err := toNode(child)
			if err != nil {
				return nil, err
			}
			children = append(children, node)
		}
		return bookmark.NewFolder(id, title, children...), nil
	default:
		return nil, fmt.Errorf("node %q has unknown type %q", id, stringField(raw, "type"))
	}
}

// locate finds the folder beneath raw that directly holds id, and id's
// position within it.
func locate(raw map[string]any, id string) (map[string]any, int) {
	children, _ := raw["children"].([]any)
	for i, item := range children {
		child, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if stringField(child, "id") == id {
			return raw, i
		}
		if parent, pos := locate(child, id); parent != nil {
			return parent, pos
		}
	}
	return nil, -1
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}
