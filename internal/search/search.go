package search

import (
	"sort"
	"strings"

	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/sahilm/fuzzy"
)

// DefaultMaxResults caps a result list when the host sets no limit
const DefaultMaxResults = 75

// Options restrict the pool an Index searches
type Options struct {
	Include []string
	Exclude []string
	Filter  func(emoji.Record) bool
	Custom  []emoji.Record

	// Loose accepts subsequence matches instead of requiring each query
	// word to appear verbatim.
	Loose bool
}

// Index answers queries over the emojis a picker shows
type Index struct {
	pool  []emoji.Record
	loose bool
}

// pool adapts records to fuzzy.Source
type pool []emoji.Record

func (p pool) String(i int) string { return p[i].Search }
func (p pool) Len() int            { return len(p) }

// New builds an index over the dataset's allowed categories plus custom
// records. Each emoji is indexed once, in category order.
func New(data *emoji.Data, opts Options) *Index {
	idx := &Index{loose: opts.Loose}
	seen := make(map[string]bool)
	add := func(rec emoji.Record) {
		if seen[rec.ID] {
			return
		}
		if opts.Filter != nil && !rec.Custom && !opts.Filter(rec) {
			return
		}
		seen[rec.ID] = true
		if rec.Search == "" {
			rec.Search = emoji.BuildSearch(rec)
		}
		idx.pool = append(idx.pool, rec)
	}

	if data != nil {
		for _, c := range data.Categories {
			if !categories.Allowed(c.ID, opts.Include, opts.Exclude) {
				continue
			}
			for _, id := range c.Emojis {
				if rec, ok := data.Lookup(id); ok {
					add(rec)
				}
			}
		}
	}
	if categories.Allowed(categories.CustomID, opts.Include, opts.Exclude) {
		for _, r := range opts.Custom {
			if rec, ok := emoji.NewCustom(r); ok {
				add(rec)
			}
		}
	}
	return idx
}

// Len returns the number of searchable emojis
func (idx *Index) Len() int {
	return len(idx.pool)
}

type hit struct {
	pos   int
	score int
	exact bool
}

// Search returns matching ids, best first. A blank query returns nil; a
// query matching nothing returns an empty, non-nil slice.
func (idx *Index) Search(query string, max int) []string {
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(query, ",", " ")))
	if len(words) == 0 {
		return nil
	}
	if max <= 0 {
		max = DefaultMaxResults
	}

	hits := make(map[int]*hit)
	for n, w := range words {
		matched := make(map[int]int)
		for _, m := range fuzzy.FindFrom(w, pool(idx.pool)) {
			if !idx.loose && !strings.Contains(m.Str, w) {
				continue
			}
			matched[m.Index] = m.Score
		}

		if n == 0 {
			for i, score := range matched {
				hits[i] = &hit{pos: i, score: score}
			}
			continue
		}
		for i, h := range hits {
			score, ok := matched[i]
			if !ok {
				delete(hits, i)
				continue
			}
			h.score += score
		}
	}

	whole := strings.Join(words, "_")
	ranked := make([]*hit, 0, len(hits))
	for _, h := range hits {
		for _, name := range idx.pool[h.pos].ShortNames {
			if strings.ToLower(name) == whole {
				h.exact = true
				break
			}
		}
		ranked = append(ranked, h)
	}
	sort.Slice(ranked, func(a, b int) bool {
		ha, hb := ranked[a], ranked[b]
		if ha.exact != hb.exact {
			return ha.exact
		}
		if ha.score != hb.score {
			return ha.score > hb.score
		}
		return ha.pos < hb.pos
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	ids := make([]string, len(ranked))
	for i, h := range ranked {
		ids[i] = idx.pool[h.pos].ID
	}
	return ids
}
