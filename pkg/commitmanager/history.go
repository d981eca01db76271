package commitmanager

import (
	"context"

	"github.com/samber/lo"

	"github.com/utkarsh5026/gitlet/pkg/catalog"
	"github.com/utkarsh5026/gitlet/pkg/objects"
)

// Log follows first parents from HEAD back to the initial commit.
func (m *Manager) Log(ctx context.Context) ([]LogEntry, error) {
	head, err := m.graph.HeadCommit(ctx)
	if err != nil {
		return nil, err
	}

	entries := []LogEntry{entryFromCommit(head)}
	for cur := head; !cur.IsRoot(); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parent, err := m.graph.GetCommit(ctx, cur.Parent())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entryFromCommit(parent))
		cur = parent
	}
	return entries, nil
}

// GlobalLog lists every commit ever made, newest first.
func (m *Manager) GlobalLog(ctx context.Context) ([]LogEntry, error) {
	all, err := m.history.All(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(all, func(e catalog.Entry, _ int) LogEntry {
		return entryFromCatalog(e)
	}), nil
}

// Find returns the sorted ids of commits whose message is exactly message.
func (m *Manager) Find(ctx context.Context, message string) ([]objects.ObjectHash, error) {
	ids, err := m.history.FindByMessage(ctx, message)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, NewNoMatchingCommitError(message)
	}
	return ids, nil
}
