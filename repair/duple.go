package repair

import "github.com/uklibraries/dipkit/mets"

// DupleFix merges consecutive sibling divisions that share an ORDER. The
// file pointers of the later divisions are appended to the first one of the
// run and the later divisions are removed. Sections are not merged.
func DupleFix(p *Package) (int, error) {
	var n int
	var walk func(divs []*mets.Division)
	walk = func(divs []*mets.Division) {
		var prev *mets.Division
		for _, div := range divs {
			if div.IsSection() {
				walk(div.Children)
				continue
			}
			if prev != nil && prev.Order == div.Order {
				p.Log.WithField("order", div.Order).Info("fixing mets")
				for _, ptr := range div.Pointers {
					prev.El.AddChild(ptr.El)
				}
				if len(div.Children) > 0 {
					p.Log.WithField("order", div.Order).Warn("dropping divisions below merged duplicate")
				}
				if parent := div.El.Parent(); parent != nil {
					parent.RemoveChild(div.El)
				}
				n++
				continue
			}
			prev = div
			walk(div.Children)
		}
	}
	walk(p.METS.Divisions())
	return n, nil
}
