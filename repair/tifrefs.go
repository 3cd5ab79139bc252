package repair

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/uklibraries/dipkit/mets"
)

// Derivative describes a file derived from a TIFF master.
type Derivative struct {
	Role mets.Role
	Use  string
	// Ext is appended to the basename of the master, without .tif.
	Ext  string
	MIME string
}

// Derivatives are the files a master is replaced with, in order.
var Derivatives = []Derivative{
	{mets.RoleThumbnail, "thumbnail", "_tb.jpg", "image/jpeg"},
	{mets.RoleFrontThumbnail, "front thumbnail", "_ftb.jpg", "image/jpeg"},
	{mets.RoleReferenceImage, "reference image", ".jpg", "image/jpeg"},
	{mets.RolePrintImage, "print image", ".pdf", "application/pdf"},
}

// FileID returns the identifier of the derivative for a master suffix, e.g.
// Thumbnail0001.
func (d Derivative) FileID(suffix string) string {
	return d.Role.Prefix() + suffix
}

// Href returns the location of the derivative of the master at href, e.g.
// ./0001/0001_tb.jpg for ./0001.tif.
func (d Derivative) Href(href string) string {
	stem := strings.TrimSuffix(href, ".tif")
	return stem + "/" + path.Base(stem) + d.Ext
}

// FixTifRefs replaces references to TIFF master files with references to
// their derivatives. Master files sharing an identifier are first renamed
// to <id>dupe<n>, along with their file groups and pointers.
func FixTifRefs(p *Package) (int, error) {
	n := renameDuplicateMasters(p)
	if n > 0 {
		p.METS.Reindex()
	}
	for _, g := range p.METS.FileGroups() {
		for _, f := range g.Files {
			if f.Role != mets.RoleMaster {
				continue
			}
			p.Log.WithField("file", f.ID).Info("fixing mets")
			for _, d := range Derivatives {
				file := mets.NewElement(g.El, "file")
				file.CreateAttr("ID", d.FileID(f.Suffix))
				file.CreateAttr("USE", d.Use)
				file.CreateAttr("MIMETYPE", d.MIME)
				loc := mets.NewElement(file, "FLocat")
				loc.CreateAttr("LOCTYPE", "OTHER")
				mets.SetHref(loc, d.Href(f.Href))
				file.AddChild(loc)
				g.El.AddChild(file)
			}
			g.El.RemoveChild(f.El)
			n++
		}
	}
	for _, div := range p.METS.AllDivisions() {
		for _, ptr := range div.Pointers {
			if ptr.Role != mets.RoleMaster {
				continue
			}
			for _, d := range Derivatives {
				fptr := mets.NewElement(div.El, "fptr")
				fptr.CreateAttr("FILEID", d.FileID(ptr.Suffix))
				div.El.AddChild(fptr)
			}
			div.El.RemoveChild(ptr.El)
			n++
		}
	}
	return n, nil
}

func renameDuplicateMasters(p *Package) int {
	var (
		files = make(map[string][]*mets.File)
		ids   []string
	)
	for _, g := range p.METS.FileGroups() {
		for _, f := range g.Files {
			if f.Role != mets.RoleMaster {
				continue
			}
			if _, ok := files[f.ID]; !ok {
				ids = append(ids, f.ID)
			}
			files[f.ID] = append(files[f.ID], f)
		}
	}
	sort.Strings(ids)
	var n int
	for _, id := range ids {
		if len(files[id]) < 2 {
			continue
		}
		p.Log.WithField("file", id).Info("renaming duplicate master files")
		for i, f := range files[id] {
			suffix := f.Suffix + "dupe" + strconv.Itoa(i)
			f.El.CreateAttr("ID", mets.RoleMaster.Prefix()+"File"+suffix)
			f.Group.El.CreateAttr("ID", "FileGrp"+suffix)
		}
		var (
			i    int
			base = files[id][0].Suffix
		)
		for _, div := range p.METS.AllDivisions() {
			for _, ptr := range div.Pointers {
				if ptr.FileID != id {
					continue
				}
				ptr.El.CreateAttr("FILEID", mets.RoleMaster.Prefix()+"File"+base+"dupe"+strconv.Itoa(i))
				i++
			}
		}
		n++
	}
	return n
}
