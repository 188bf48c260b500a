package border

import (
	"fmt"
	"sort"
	"strings"
)

// GroupPair is an unordered pair of groups, Lo <= Hi.
type GroupPair struct {
	Lo, Hi Group
}

func makeGroupPair(a, b Group) GroupPair {
	if a > b {
		a, b = b, a
	}
	return GroupPair{Lo: a, Hi: b}
}

// PairCount is the number of boundary cells between one pair of groups.
type PairCount struct {
	Groups GroupPair
	Cells  int
}

// Report summarises the current mask and the last extraction.
type Report struct {
	Seeds       int
	Groups      int
	Width       int
	Height      int
	BorderCells int
	ByGroups    []PairCount // sorted by Lo, then Hi
	Extraction  Extraction
}

// BuildReport tallies the mask. ex may be the zero value when no extraction
// has run.
func BuildReport(seeds SeedSet, m *Mask, ex Extraction) Report {
	r := Report{
		Seeds:      seeds.Len(),
		Groups:     seeds.Groups(),
		Width:      m.width,
		Height:     m.height,
		Extraction: ex,
	}
	counts := map[GroupPair]int{}
	for _, p := range m.cells {
		if !p.IsSet() {
			continue
		}
		r.BorderCells++
		counts[makeGroupPair(seeds.seeds[p.A].Group, seeds.seeds[p.B].Group)]++
	}
	for gp, n := range counts {
		r.ByGroups = append(r.ByGroups, PairCount{Groups: gp, Cells: n})
	}
	sort.Slice(r.ByGroups, func(i, j int) bool {
		a, b := r.ByGroups[i].Groups, r.ByGroups[j].Groups
		if a.Lo != b.Lo {
			return a.Lo < b.Lo
		}
		return a.Hi < b.Hi
	})
	return r
}

// String formats the report, listing at most 32 vertices.
func (r Report) String() string {
	return r.Format(32)
}

// Format formats the report, listing at most maxVertices vertices.
//
//	seeds=750 groups=5 grid=1000x800 border_cells=10412
//	  groups 0|1  cells=2210
//	vertices=57 start=(12,331) visited=9876
//	  (13,331) (40,360) ...
func (r Report) Format(maxVertices int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "seeds=%d groups=%d grid=%dx%d border_cells=%d\n",
		r.Seeds, r.Groups, r.Width, r.Height, r.BorderCells)
	for _, pc := range r.ByGroups {
		fmt.Fprintf(&b, "  groups %d|%d  cells=%d\n", pc.Groups.Lo, pc.Groups.Hi, pc.Cells)
	}
	ex := r.Extraction
	if !ex.Found {
		b.WriteString("vertices: no boundary present\n")
		return b.String()
	}
	fmt.Fprintf(&b, "vertices=%d start=(%d,%d) visited=%d\n",
		len(ex.Vertices), ex.Start.X, ex.Start.Y, ex.Visited)
	n := len(ex.Vertices)
	if maxVertices >= 0 && n > maxVertices {
		n = maxVertices
	}
	for i := 0; i < n; i++ {
		if i%8 == 0 {
			b.WriteString(" ")
		}
		v := ex.Vertices[i]
		fmt.Fprintf(&b, " (%d,%d)", v.X, v.Y)
		if i%8 == 7 || i == n-1 {
			b.WriteByte('\n')
		}
	}
	if n < len(ex.Vertices) {
		fmt.Fprintf(&b, "  ... %d more\n", len(ex.Vertices)-n)
	}
	return b.String()
}
