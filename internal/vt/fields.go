package vt

import (
	"fmt"
	"strings"
)

// maxFields bounds how many scalar values (parameters plus subparameters
// combined) a single CSI or DCS control function may carry. Longer sequences
// keep scanning but are marked truncated so the dispatch still fires.
const maxFields = 32

// Fields accumulates the numeric parameters of one CSI or DCS control
// function. Parameters are separated by ';'; a parameter may itself carry
// subparameters separated by ':' (e.g. SGR's "38:2:r:g:b" extended color
// form) — each such run is one group.
type Fields struct {
	groups [][maxFields]uint16
	sizes  [maxFields]uint8
	n      int // number of groups
	total  int // scalar values across all groups
}

// newFields returns an empty Fields ready for reuse via Reset.
func newFields() *Fields {
	return &Fields{}
}

// Len reports the total scalar count across every group.
func (f *Fields) Len() int { return f.total }

// IsEmpty reports whether no value has been recorded.
func (f *Fields) IsEmpty() bool { return f.total == 0 }

// IsFull reports whether the next Start or Append would be dropped.
func (f *Fields) IsFull() bool { return f.total >= maxFields }

// Reset discards all recorded groups.
func (f *Fields) Reset() {
	f.n = 0
	f.total = 0
}

// Start begins a new parameter group with value as its first element.
func (f *Fields) Start(value uint16) {
	if f.IsFull() || f.n >= maxFields {
		return
	}
	f.groups[f.n][0] = value
	f.sizes[f.n] = 1
	f.n++
	f.total++
}

// Append adds value as a subparameter of the most recently started group.
// With no open group it behaves like Start.
func (f *Fields) Append(value uint16) {
	if f.IsFull() {
		return
	}
	if f.n == 0 {
		f.Start(value)
		return
	}
	g := f.n - 1
	if int(f.sizes[g]) >= maxFields {
		return
	}
	f.groups[g][f.sizes[g]] = value
	f.sizes[g]++
	f.total++
}

// Groups returns every recorded parameter group, main value first followed
// by any subparameters, in arrival order.
func (f *Fields) Groups() [][]uint16 {
	if f.n == 0 {
		return nil
	}
	out := make([][]uint16, f.n)
	for i := 0; i < f.n; i++ {
		out[i] = append([]uint16(nil), f.groups[i][:f.sizes[i]]...)
	}
	return out
}

// Iter is an alias for Groups kept for call sites that read like an
// iteration rather than a snapshot.
func (f *Fields) Iter() [][]uint16 { return f.Groups() }

func (f *Fields) String() string {
	groups := f.Groups()
	if len(groups) == 0 {
		return "Fields{}"
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		strs := make([]string, len(g))
		for j, v := range g {
			strs[j] = fmt.Sprintf("%d", v)
		}
		parts[i] = strings.Join(strs, ":")
	}
	return fmt.Sprintf("Fields{%s}", strings.Join(parts, ";"))
}
