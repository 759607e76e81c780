package cluster

import (
	"sort"

	"github.com/katalvlaran/coflow/core"
)

// Membership is one stream's clustering outcome: the cluster label
// (NoiseLabel for unclustered streams) and the confidence in [0,1].
type Membership struct {
	Label      int
	Confidence float64
}

// Assignment maps every clustered StreamID to its Membership. It is
// produced by a Clusterer and read-only afterwards.
type Assignment struct {
	ids  []core.StreamID
	byID map[core.StreamID]Membership
}

// Get returns the membership for id and whether id was part of the run.
func (a *Assignment) Get(id core.StreamID) (Membership, bool) {
	m, ok := a.byID[id]
	return m, ok
}

// Len returns the number of streams in the assignment.
func (a *Assignment) Len() int { return len(a.ids) }

// IDs returns the streams in matrix row order. The slice is a copy.
func (a *Assignment) IDs() []core.StreamID {
	out := make([]core.StreamID, len(a.ids))
	copy(out, a.ids)
	return out
}

// Member pairs one StreamID with its membership confidence inside a
// report group.
type Member struct {
	ID         core.StreamID
	Confidence float64
}

// Group is all members sharing one cluster label.
type Group struct {
	Label   int
	Members []Member
}

// Report is the grouped view of an Assignment: groups ascending by
// label (noise first), members ascending by StreamID within a group.
type Report []Group

// Report builds the grouped view. Each call returns a fresh value that
// the caller may retain or mutate freely.
func (a *Assignment) Report() Report {
	byLabel := make(map[int][]Member)
	for _, id := range a.ids {
		m := a.byID[id]
		byLabel[m.Label] = append(byLabel[m.Label], Member{ID: id, Confidence: m.Confidence})
	}

	labels := make([]int, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	report := make(Report, 0, len(labels))
	for _, l := range labels {
		members := byLabel[l]
		sort.Slice(members, func(i, j int) bool {
			return members[i].ID.Compare(members[j].ID) < 0
		})
		report = append(report, Group{Label: l, Members: members})
	}

	return report
}
