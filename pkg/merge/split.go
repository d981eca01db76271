package merge

import (
	"context"

	"github.com/utkarsh5026/gitlet/pkg/objects"
)

// Ancestry is the part of the commit graph split point search needs.
type Ancestry interface {
	DistancesFrom(ctx context.Context, id objects.ObjectHash) (map[objects.ObjectHash]int, error)
	AncestorsOf(ctx context.Context, id objects.ObjectHash) ([]objects.ObjectHash, error)
}

// SplitPoint picks the common ancestor of current and given used as the
// merge base: among the ancestors of given, in AncestorsOf order, the one
// closest to current. Ties go to the earliest in that order.
//
// This looks only at distances from current, so it can differ from a true
// lowest common ancestor in criss-cross histories.
func SplitPoint(ctx context.Context, g Ancestry, current, given objects.ObjectHash) (objects.ObjectHash, error) {
	dist, err := g.DistancesFrom(ctx, current)
	if err != nil {
		return "", err
	}
	anc, err := g.AncestorsOf(ctx, given)
	if err != nil {
		return "", err
	}

	var (
		best     objects.ObjectHash
		bestDist = -1
	)
	for _, id := range anc {
		d, ok := dist[id]
		if !ok {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	if bestDist < 0 {
		return "", NewNoSplitPointError(current.Short().String(), given.Short().String())
	}
	return best, nil
}
