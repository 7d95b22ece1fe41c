package navtree

import (
	"cmp"
	"fmt"
	"slices"

	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Compare orders two nodes by position, then title, then path. A nil other
// sorts after a. Two distinct nodes that still tie, or a node with a malformed
// position, yield an ordering error naming both paths.
func Compare(a, other Node) (int, error) {
	if other == nil {
		return -1, nil
	}
	if a == nil {
		return 1, nil
	}
	if a == other {
		return 0, nil
	}

	pa, err := a.orderPosition()
	if err != nil {
		return 0, orderingError(a, other, err)
	}
	po, err := other.orderPosition()
	if err != nil {
		return 0, orderingError(a, other, err)
	}
	if c := cmp.Compare(pa, po); c != 0 {
		return c, nil
	}
	if c := cmp.Compare(a.Title(), other.Title()); c != 0 {
		return c, nil
	}
	if c := cmp.Compare(a.Path(), other.Path()); c != 0 {
		return c, nil
	}
	return 0, orderingError(a, other, nil)
}

func orderingError(a, other Node, cause error) error {
	return dberrors.OrderingError(fmt.Sprintf("comparing %s and %s failed", a.Path(), other.Path())).
		WithContext("path", a.Path()).
		WithContext("other_path", other.Path()).
		WithCause(cause).
		Build()
}

// Sort orders every directory's children recursively. The subtree of the
// unsorted top-level section keeps its insertion order.
func (r *Root) Sort() error {
	return sortNode(r)
}

func sortNode(n Node) error {
	if n.Level() == 1 && n.Segment() == n.base().opts.UnsortedSection {
		return nil
	}

	children := n.base().children
	var sortErr error
	slices.SortStableFunc(children, func(x, y Node) int {
		c, err := Compare(x, y)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c
	})
	if sortErr != nil {
		return sortErr
	}

	for _, child := range children {
		if child.IsDocument() {
			continue
		}
		if err := sortNode(child); err != nil {
			return err
		}
	}
	return nil
}
