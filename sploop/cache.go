package sploop

import "github.com/sarchlab/vliwdbt/translation"

// Key identifies one cached phase block: a loop instance plus a phase.
type Key struct {
	LoopID int
	Phase  translation.Phase
}

// Cache is the translation cache: an append-only mapping from
// (loop instance, phase) to the block translated for it. It is
// consulted before any translation, so each phase translates at most
// once per loop lifetime. Retention policy belongs to the embedding
// dispatcher; loops are finite and nothing is evicted here.
type Cache struct {
	blocks map[Key]*translation.TranslationBlock
}

// NewCache creates an empty translation cache.
func NewCache() *Cache {
	return &Cache{
		blocks: make(map[Key]*translation.TranslationBlock),
	}
}

// Lookup returns the block cached for k, if any.
func (c *Cache) Lookup(k Key) (*translation.TranslationBlock, bool) {
	tb, ok := c.blocks[k]
	return tb, ok
}

// Insert records the block translated for k. Each key is written at
// most once for a loop's lifetime; the first insertion wins.
func (c *Cache) Insert(k Key, tb *translation.TranslationBlock) {
	if _, ok := c.blocks[k]; ok {
		return
	}
	c.blocks[k] = tb
}

// Len returns the number of cached blocks.
func (c *Cache) Len() int {
	return len(c.blocks)
}
