package derive

import (
	"context"
	"errors"
	"fmt"

	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/pproc"
)

var (
	ErrMixedStructure = errors.New("top level mixes sections and leaves")
	ErrEmptySection   = errors.New("section has neither file pointers nor divisions")
	ErrDuplicateOrder = errors.New("sibling divisions share an ORDER")
)

// Check reports structural defects that would make derivation fail or
// produce colliding ids. It runs before anything is written.
func (c *Context) Check() error {
	if err := c.METS.Validate(); err != nil {
		return err
	}
	for _, div := range c.METS.AllDivisions() {
		if div.IsSection() && len(div.Pointers) == 0 && len(div.Children) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptySection, NodeID(c.ID, div.Path()))
		}
	}
	if err := checkOrders(c.ID, nil, c.METS.Divisions()); err != nil {
		return err
	}
	top := c.METS.Divisions()
	for _, div := range top {
		if (len(div.Children) > 0) != (len(top[0].Children) > 0) {
			return fmt.Errorf("%w: %s", ErrMixedStructure, NodeID(c.ID, div.Path()))
		}
	}
	return nil
}

func checkOrders(id string, path []string, divs []*mets.Division) error {
	seen := make(map[string]bool)
	for _, div := range divs {
		if seen[div.Order] {
			return fmt.Errorf("%w: %s", ErrDuplicateOrder, NodeID(id, append(path, div.Order)))
		}
		seen[div.Order] = true
		if err := checkOrders(id, div.Path(), div.Children); err != nil {
			return err
		}
	}
	return nil
}

// Sectioned is true if the top level divisions are sections with leaves
// below them.
func (c *Context) Sectioned() bool {
	top := c.METS.Divisions()
	return len(top) > 0 && len(top[0].Children) > 0
}

// Derive checks the structure, then writes the object level document and
// derives every top level division on the pool. A failing division does not
// stop the others, all errors are returned joined.
func Derive(ctx context.Context, c *Context, sink Sink, pool *pproc.Pool) error {
	if err := c.Check(); err != nil {
		return err
	}
	core, err := c.CoreRecord()
	if err != nil {
		return err
	}
	if doc := c.ObjectDocument(core); doc != nil {
		if err := sink.Put(doc); err != nil {
			return err
		}
	}
	var (
		top       = c.METS.Divisions()
		sectioned = c.Sectioned()
	)
	c.Log.WithField("sectioned", sectioned).Infof("deriving %d top level divisions", len(top))
	return pool.Run(ctx, len(top), func(ctx context.Context, i int) error {
		var err error
		if sectioned {
			err = c.deriveSection(top[i], core, sink)
		} else {
			_, err = c.deriveLeaf(top[i], core, Media{}, sink)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", NodeID(c.ID, top[i].Path()), err)
		}
		return nil
	})
}

// IDs returns the ids of all divisions in document order, used to verify
// uniqueness.
func (c *Context) IDs() []string {
	var ids []string
	for _, div := range c.METS.AllDivisions() {
		ids = append(ids, NodeID(c.ID, div.Path()))
	}
	return ids
}
