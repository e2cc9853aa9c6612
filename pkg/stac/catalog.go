package stac

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Version is the STAC specification version of serialized records.
const Version = "1.0.0"

// CatalogType selects how hrefs are written on save.
type CatalogType string

const (
	// SelfContained writes relative hrefs and no self links, so the
	// catalog tree can be moved or published anywhere as a unit.
	SelfContained CatalogType = "SELF_CONTAINED"
	// AbsolutePublished writes absolute hrefs including self links.
	AbsolutePublished CatalogType = "ABSOLUTE_PUBLISHED"
)

// Catalog is the root record of a generated catalog tree.
type Catalog struct {
	ID          string
	Description string

	children []*Collection
}

// NewCatalog creates an empty root catalog.
func NewCatalog(id, description string) *Catalog {
	return &Catalog{ID: id, Description: description}
}

// AddChild attaches a top-level collection.
func (c *Catalog) AddChild(col *Collection) {
	c.children = append(c.children, col)
}

// Children returns the attached top-level collections.
func (c *Catalog) Children() []*Collection {
	return c.children
}

// catalogJSON is the serialized shape of the root catalog.
type catalogJSON struct {
	Type        string `json:"type"`
	StacVersion string `json:"stac_version"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Links       []Link `json:"links"`
}

// Save normalizes hrefs under dir and writes the whole tree: dir/catalog.json,
// one directory per collection holding collection.json, and one directory per
// item holding <item-id>.json. Absent optional properties never appear as
// nulls in the written records.
func (c *Catalog) Save(dir string, typ CatalogType) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrap(err, "resolving catalog dir")
	}

	w := &treeWriter{typ: typ, rootPath: filepath.Join(abs, "catalog.json")}

	links := []Link{w.link(RelRoot, w.rootPath, MediaTypeJSON, w.rootPath)}
	for _, col := range c.children {
		colPath := filepath.Join(abs, col.ID, "collection.json")
		links = append(links, w.link(RelChild, colPath, MediaTypeJSON, w.rootPath))
		if err := w.writeCollection(col, colPath, w.rootPath); err != nil {
			return err
		}
	}
	if typ == AbsolutePublished {
		links = append(links, w.link(RelSelf, w.rootPath, MediaTypeJSON, w.rootPath))
	}

	record := catalogJSON{
		Type:        "Catalog",
		StacVersion: Version,
		ID:          c.ID,
		Description: c.Description,
		Links:       links,
	}
	return writeJSONFile(w.rootPath, record)
}

// treeWriter carries the href policy through the recursive save.
type treeWriter struct {
	typ      CatalogType
	rootPath string
}

// link builds a Link whose href is absolute or relative to the file that
// will contain it, depending on the catalog type.
func (w *treeWriter) link(rel, target, mediaType, from string) Link {
	href := target
	if w.typ == SelfContained {
		if r, err := filepath.Rel(filepath.Dir(from), target); err == nil {
			href = filepath.ToSlash(r)
			if href[0] != '.' {
				href = "./" + href
			}
		}
	}
	return Link{Rel: rel, Href: href, Type: mediaType}
}

func (w *treeWriter) writeCollection(col *Collection, path, parentPath string) error {
	links := []Link{
		w.link(RelRoot, w.rootPath, MediaTypeJSON, path),
		w.link(RelParent, parentPath, MediaTypeJSON, path),
	}

	dir := filepath.Dir(path)
	for _, child := range col.Children() {
		childPath := filepath.Join(dir, child.ID, "collection.json")
		links = append(links, w.link(RelChild, childPath, MediaTypeJSON, path))
		if err := w.writeCollection(child, childPath, path); err != nil {
			return err
		}
	}
	for _, item := range col.Items() {
		itemPath := filepath.Join(dir, item.ID, item.ID+".json")
		links = append(links, w.link(RelItem, itemPath, MediaTypeGeoJSON, path))
		if err := w.writeItem(item, itemPath, path); err != nil {
			return err
		}
	}
	if w.typ == AbsolutePublished {
		links = append(links, w.link(RelSelf, path, MediaTypeJSON, path))
	}

	return writeJSONFile(path, col.toJSON(links))
}

func (w *treeWriter) writeItem(item *Item, path, parentPath string) error {
	links := []Link{
		w.link(RelRoot, w.rootPath, MediaTypeJSON, path),
		w.link(RelParent, parentPath, MediaTypeJSON, path),
	}
	if w.typ == AbsolutePublished {
		links = append(links, w.link(RelSelf, path, MediaTypeGeoJSON, path))
	}
	return writeJSONFile(path, item.toJSON(links))
}

// writeJSONFile marshals record with indentation and writes it, creating
// parent directories as needed.
func writeJSONFile(path string, record any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	b, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
