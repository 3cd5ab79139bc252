// Package derive turns the METS structure of a dissemination package into
// one flat metadata document per structural node: an object level
// document (collection or section), a section document per top level
// section and a leaf document per page, image, audio or video division.
package derive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/uklibraries/dipkit/ead"
	"github.com/uklibraries/dipkit/imagemeta"
	"github.com/uklibraries/dipkit/mets"
)

var ErrMissingFindingAid = errors.New("finding aid group without access file")

// Context is the read-only state shared by all builders of one object.
type Context struct {
	// ID is the object identifier.
	ID string
	// Dir is the package directory, files live below Dir/data.
	Dir     string
	BaseURL string
	METS    *mets.Document
	// FindingAid is nil for objects without a finding aid.
	FindingAid     *ead.FindingAid
	FindingAidHref string
	Log            *logrus.Entry
	// Dimensions reads image sizes, imagemeta.ReadFile by default.
	Dimensions func(filename string) (imagemeta.Dimensions, error)
}

// Load reads data/mets.xml and, if referenced, the finding aid of the
// package in dir.
func Load(dir, id, baseURL string, log *logrus.Entry) (*Context, error) {
	doc, err := mets.ReadFile(filepath.Join(dir, "data", "mets.xml"))
	if err != nil {
		return nil, err
	}
	c := &Context{
		ID:         id,
		Dir:        dir,
		BaseURL:    baseURL,
		METS:       doc,
		Log:        log,
		Dimensions: imagemeta.ReadFile,
	}
	if doc.FindingAidGroup() != nil {
		href, ok := doc.FindingAidHref()
		if !ok {
			return nil, ErrMissingFindingAid
		}
		fa, err := ead.ReadFile(c.DataPath(href))
		if err != nil {
			return nil, fmt.Errorf("finding aid: %w", err)
		}
		c.FindingAid = fa
		c.FindingAidHref = mets.CleanHref(href)
	}
	return c, nil
}

// HasFindingAid is true for archival collections.
func (c *Context) HasFindingAid() bool {
	return c.FindingAid != nil
}

// PublicURL joins base URL, object id, the data directory and a relative
// location.
func PublicURL(base, id, href string) string {
	return strings.Join([]string{strings.TrimSuffix(base, "/"), id, "data", mets.CleanHref(href)}, "/")
}

// URL returns the public URL of a file of this object.
func (c *Context) URL(href string) string {
	return PublicURL(c.BaseURL, c.ID, href)
}

// DataPath returns the local path of a file of this object.
func (c *Context) DataPath(href string) string {
	return filepath.Join(c.Dir, "data", filepath.FromSlash(mets.CleanHref(href)))
}

// resolve logs dangling pointers and returns the empty string for them.
func (c *Context) resolve(div *mets.Division, r mets.Role, deep bool) string {
	var (
		href string
		err  error
	)
	if deep {
		href, err = c.METS.ResolveDeep(div, r)
	} else {
		href, err = c.METS.Resolve(div, r)
	}
	if err != nil {
		c.Log.WithField("node", NodeID(c.ID, div.Path())).Warn(err)
		return ""
	}
	return href
}

func (c *Context) resolveURL(div *mets.Division, r mets.Role, deep bool) string {
	if href := c.resolve(div, r, deep); href != "" {
		return c.URL(href)
	}
	return ""
}

// readText returns the content of a text file, e.g. OCR output. Unreadable
// files are logged and yield false.
func (c *Context) readText(href string) (string, bool) {
	b, err := os.ReadFile(c.DataPath(href))
	if err != nil {
		c.Log.WithField("href", href).Warnf("cannot read text: %v", err)
		return "", false
	}
	return string(b), true
}

// imageSize returns the dimensions of the image at href or zeros if they
// cannot be read.
func (c *Context) imageSize(href string) (int, int) {
	filename := c.DataPath(href)
	d, err := c.Dimensions(filename)
	if err != nil {
		c.Log.WithField("path", filename).Warnf("check image: %v", err)
		return 0, 0
	}
	return d.Width, d.Height
}
