package reorder

import (
	"slices"

	"github.com/papercomputeco/marksort/pkg/bookmark"
)

// desiredOrder returns the child ids of folder in the order the policy wants
// them. Ineligible children keep their positions; eligible children are
// stably sorted by descending score into the positions eligible children
// occupied.
func desiredOrder(folder *bookmark.Node, policy Policy, s *scorer) []string {
	children := folder.Children
	desired := folder.ChildIDs()

	var (
		positions []int
		eligible  []*bookmark.Node
	)
	for i, child := range children {
		if policy.Eligible(child.Category()) {
			positions = append(positions, i)
			eligible = append(eligible, child)
		}
	}

	if len(eligible) < 2 {
		return desired
	}

	slices.SortStableFunc(eligible, func(a, b *bookmark.Node) int {
		sa, sb := s.score(a), s.score(b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})

	for i, pos := range positions {
		desired[pos] = eligible[i].ID
	}

	return desired
}

// idModel is the ordered child-id list the reconciler mutates in lockstep
// with every move it issues.
type idModel []string

func (m idModel) indexOf(id string) int {
	return slices.Index(m, id)
}

// moveTo removes the id at from and reinserts it at to.
func (m idModel) moveTo(from, to int) idModel {
	id := m[from]
	m = slices.Delete(m, from, from+1)
	return slices.Insert(m, to, id)
}
