package index

import (
	"fmt"
	"sync"

	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// Manager owns the on-disk index of one repository. Every mutation goes
// through Update, which saves the result before returning.
type Manager struct {
	indexPath scpath.SourcePath
	index     *Index
	mu        sync.RWMutex
}

// NewManager creates a manager for the index below sourcePath.
func NewManager(sourcePath scpath.SourcePath) *Manager {
	return &Manager{
		indexPath: sourcePath.IndexPath(),
		index:     NewIndex(),
	}
}

// Initialize loads the index from disk.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := Read(m.indexPath)
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}
	m.index = idx
	return nil
}

// View runs fn with read access to the index.
func (m *Manager) View(fn func(idx *Index) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(m.index)
}

// Update runs fn with write access and saves the index when fn succeeds.
// On failure the in-memory index is reloaded so it matches the file again.
func (m *Manager) Update(fn func(idx *Index) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := fn(m.index); err != nil {
		if reloaded, rerr := Read(m.indexPath); rerr == nil {
			m.index = reloaded
		}
		return err
	}
	return m.index.Write(m.indexPath)
}

// Clear empties the index and saves it.
func (m *Manager) Clear() error {
	return m.Update(func(idx *Index) error {
		idx.Clear()
		return nil
	})
}

// IsEmpty reports whether nothing is staged.
func (m *Manager) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.IsEmpty()
}
