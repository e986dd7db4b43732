package driver

import (
	"github.com/samx-lang/samxlex/spec"
)

type CacheStats struct {
	Hits   int
	Misses int

	// Rows is the number of rows currently held.
	Rows int
}

type cacheKey struct {
	mode  spec.LexModeNum
	state int
}

// transitionCache memoizes rows decoded from compressed transition tables. It belongs to a single lexer.
type transitionCache struct {
	rows   map[cacheKey][]int
	hits   int
	misses int
}

func newTransitionCache() *transitionCache {
	return &transitionCache{
		rows: map[cacheKey][]int{},
	}
}

func (c *transitionCache) transition(mode spec.LexModeNum, dfa *spec.TransitionTable, state int, v byte) (int, error) {
	key := cacheKey{
		mode:  mode,
		state: state,
	}
	row, ok := c.rows[key]
	if ok {
		c.hits++
		return row[v], nil
	}
	c.misses++
	row = make([]int, dfa.ColCount)
	err := dfa.Row(state, row)
	if err != nil {
		return 0, err
	}
	c.rows[key] = row
	return row[v], nil
}

func (c *transitionCache) clear() {
	c.rows = map[cacheKey][]int{}
}

func (c *transitionCache) stats() CacheStats {
	return CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Rows:   len(c.rows),
	}
}
