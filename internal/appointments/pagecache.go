package appointments

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/companywatch/dossier/internal/registry"
)

// PageCache owns the raw appointment pages for one officer until they
// are merged. Each page is also snapshotted to disk as raw JSON so an
// aborted run can be inspected or resumed by hand.
type PageCache struct {
	dir   string
	name  string
	pages map[int]*registry.AppointmentsPage
}

// NewPageCache creates a cache writing snapshots for the named officer
// under dir. dir may be empty to disable snapshots (tests).
func NewPageCache(dir, officerName string) *PageCache {
	return &PageCache{
		dir:   dir,
		name:  officerName,
		pages: make(map[int]*registry.AppointmentsPage),
	}
}

// Put stores a fetched page and writes its snapshot.
func (c *PageCache) Put(pageNo int, page *registry.AppointmentsPage, raw []byte) error {
	c.pages[pageNo] = page
	if c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(c.dir, fmt.Sprintf("%s page %d.json", c.name, pageNo))
	return os.WriteFile(path, raw, 0600)
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int { return len(c.pages) }

// Merged concatenates the cached pages' items ordered by page index.
func (c *PageCache) Merged() []registry.AppointmentItem {
	nos := make([]int, 0, len(c.pages))
	for n := range c.pages {
		nos = append(nos, n)
	}
	sort.Ints(nos)
	out := make([]registry.AppointmentItem, 0)
	for _, n := range nos {
		out = append(out, c.pages[n].Items...)
	}
	return out
}
