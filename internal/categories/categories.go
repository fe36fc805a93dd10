package categories

import (
	"sort"

	"github.com/connorleisz/emojiTUI/internal/emoji"
)

// Pseudo-category ids
const (
	SearchID = "search"
	RecentID = "recent"
	CustomID = "custom"
)

// Category is an ordered group of emoji refs shown as one block of the strip
type Category struct {
	ID     string
	Name   string
	Emojis []string // nil for Search until a query runs, and for Recent
	Anchor bool     // false hides the category from the anchor bar
	First  bool     // set on the first assembled category, never on Search
}

// Options are the assembler inputs
type Options struct {
	Base          []emoji.CategoryData
	Custom        []emoji.Record
	Include       []string
	Exclude       []string
	Filter        func(emoji.Record) bool
	DisableRecent bool

	// Lookup resolves refs for Filter. Custom records are resolved first;
	// refs neither knows reach Filter with only ID set.
	Lookup func(id string) (emoji.Record, bool)
}

// Set is the assembled, ordered category list plus handles on the
// pseudo-categories the controller mutates.
type Set struct {
	All []*Category

	Search *Category
	Recent *Category
	Custom *Category

	// CustomEmojis maps synthesized ids to the host's custom records
	CustomEmojis map[string]emoji.Record
	// CustomOrder keeps the host's ordering of custom ids
	CustomOrder []string

	HideSearch bool
	HideRecent bool
}

// Assemble builds the ordered category list. It is a pure function of opts;
// a panicking Filter propagates to the caller.
func Assemble(opts Options) *Set {
	s := &Set{
		Search:       &Category{ID: SearchID, Name: "Search"},
		Recent:       &Category{ID: RecentID, Name: "Recent", Anchor: true},
		Custom:       &Category{ID: CustomID, Name: "Custom", Anchor: true},
		CustomEmojis: make(map[string]emoji.Record),
		HideSearch:   true,
		HideRecent:   true,
	}

	for _, rec := range opts.Custom {
		custom, ok := emoji.NewCustom(rec)
		if !ok {
			continue
		}
		if _, dup := s.CustomEmojis[custom.ID]; !dup {
			s.CustomOrder = append(s.CustomOrder, custom.ID)
		}
		s.CustomEmojis[custom.ID] = custom
	}

	all := make([]*Category, 0, len(opts.Base)+1)
	for _, c := range opts.Base {
		all = append(all, &Category{ID: c.ID, Name: c.Name, Emojis: c.Emojis, Anchor: true})
	}
	if len(s.CustomOrder) > 0 {
		s.Custom.Emojis = append([]string(nil), s.CustomOrder...)
		all = append(all, s.Custom)
	}

	if opts.Include != nil {
		rank := func(id string) int {
			for i, inc := range opts.Include {
				if inc == id {
					return i
				}
			}
			return len(opts.Include)
		}
		sort.SliceStable(all, func(i, j int) bool {
			return rank(all[i].ID) < rank(all[j].ID)
		})
	}

	for _, c := range all {
		if !Allowed(c.ID, opts.Include, opts.Exclude) {
			continue
		}

		if opts.Filter == nil {
			s.All = append(s.All, c)
			continue
		}

		var kept []string
		for _, id := range c.Emojis {
			if opts.Filter(s.resolve(id, opts.Lookup)) {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if c == s.Custom {
			c.Emojis = kept
			s.All = append(s.All, c)
			continue
		}
		s.All = append(s.All, &Category{ID: c.ID, Name: c.Name, Emojis: kept, Anchor: true})
	}

	if !opts.DisableRecent && Allowed(RecentID, opts.Include, opts.Exclude) {
		s.HideRecent = false
		s.All = append([]*Category{s.Recent}, s.All...)
	}

	if len(s.All) > 0 {
		s.All[0].First = true
	}

	if Allowed(SearchID, opts.Include, opts.Exclude) {
		s.HideSearch = false
		s.All = append([]*Category{s.Search}, s.All...)
	}

	return s
}

// resolve returns the record for id. Unknown refs come back as a bare
// record carrying only the id.
func (s *Set) resolve(id string, lookup func(string) (emoji.Record, bool)) emoji.Record {
	if rec, ok := s.CustomEmojis[id]; ok {
		return rec
	}
	if lookup != nil {
		if rec, ok := lookup(id); ok {
			return rec
		}
	}
	return emoji.Record{ID: id}
}

// Allowed applies the include/exclude test to a category id
func Allowed(id string, include, exclude []string) bool {
	included := len(include) == 0 || contains(include, id)
	excluded := len(exclude) > 0 && contains(exclude, id)
	return included && !excluded
}

// Index returns the position of the category with the given id, or -1
func (s *Set) Index(id string) int {
	for i, c := range s.All {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// FirstAnchor returns the first category shown on the anchor bar
func (s *Set) FirstAnchor() *Category {
	for _, c := range s.All {
		if c.Anchor {
			return c
		}
	}
	return nil
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
