// Package repair fixes structural defects in the METS document of a
// dissemination package in place. Every fixer runs on a single document,
// sequentially; the package is only written, and its bag manifests only
// updated, when something was fixed.
package repair

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/uklibraries/dipkit/bagit"
	"github.com/uklibraries/dipkit/mets"
)

var (
	ErrNoPreviousSection    = errors.New("empty section without preceding section")
	ErrNoFrontThumbnail     = errors.New("previous section has no front thumbnail")
	ErrAmbiguousIdentifiers = errors.New("first and last front thumbnail share an identifier")
	ErrNoAIPMatch           = errors.New("no matching master file in AIP")
)

// METSPath is the location of the METS file relative to the package
// directory, as listed in the bag manifests.
const METSPath = "data/mets.xml"

// Package is an opened dissemination package.
type Package struct {
	Dir  string
	METS *mets.Document
	Log  *logrus.Entry
}

// Open reads the METS file of the package in dir and rejects documents with
// empty file groups.
func Open(dir string, log *logrus.Entry) (*Package, error) {
	filename := filepath.Join(dir, filepath.FromSlash(METSPath))
	doc, err := mets.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := doc.ValidateFileGroups(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &Package{Dir: dir, METS: doc, Log: log}, nil
}

// Save writes the METS file and updates the bag manifests.
func (p *Package) Save() error {
	p.Log.Info("fixing bag")
	if err := p.METS.WriteFile(filepath.Join(p.Dir, filepath.FromSlash(METSPath))); err != nil {
		return err
	}
	bag := bagit.Bag{Dir: p.Dir}
	return bag.UpdateManifests(METSPath)
}

// Fixer changes the document of p and returns the number of defects fixed.
type Fixer func(p *Package) (int, error)

// Run applies fix and saves the package if anything was fixed. Nothing is
// written when fix fails or finds nothing to do.
func Run(p *Package, fix Fixer) (int, error) {
	n, err := fix(p)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		p.Log.Debug("nothing to fix")
		return 0, nil
	}
	p.METS.Reindex()
	if err := p.Save(); err != nil {
		return n, err
	}
	return n, nil
}
