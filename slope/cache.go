package slope

// Key identifies one surface of one sector.
type Key struct {
	SectorID int
	Floor    bool
}

type entry struct {
	plane Plane
	ok    bool
}

// Cache holds generated planes per surface. Failed fits are cached too so
// a degenerate surface is not refitted on every query.
type Cache struct {
	entries map[Key]entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Key]entry)}
}

// Get returns the cached plane, whether the fit succeeded and whether the
// slot was populated at all.
func (c *Cache) Get(key Key) (plane Plane, ok bool, cached bool) {
	e, cached := c.entries[key]
	return e.plane, e.ok, cached
}

func (c *Cache) Put(key Key, plane Plane, ok bool) {
	c.entries[key] = entry{plane: plane, ok: ok}
}

func (c *Cache) Invalidate(key Key) {
	delete(c.entries, key)
}

// InvalidateSector drops both surfaces of a sector.
func (c *Cache) InvalidateSector(sectorID int) {
	delete(c.entries, Key{SectorID: sectorID, Floor: true})
	delete(c.entries, Key{SectorID: sectorID, Floor: false})
}

func (c *Cache) Len() int {
	return len(c.entries)
}
