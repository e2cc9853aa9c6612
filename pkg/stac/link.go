package stac

// Link relation types used in serialized records.
const (
	RelSelf   = "self"
	RelRoot   = "root"
	RelParent = "parent"
	RelChild  = "child"
	RelItem   = "item"
)

// Link connects a catalog object to a related resource. Structural links
// (self, root, parent, child, item) are computed when the catalog is
// saved; callers only add non-structural links by hand.
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}
