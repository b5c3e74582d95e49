package scene

import (
	"sort"

	"github.com/san-kum/gapsim/internal/dataset"
)

// Partition splits a target slice against the live identities. Every
// identity appears in at most one of Create, Update and Remove, and each
// list is sorted by identity.
type Partition struct {
	Create []dataset.Record
	Update []dataset.Record
	Remove []string

	// Duplicates lists identities that appeared more than once in the
	// target. The last occurrence wins.
	Duplicates []string
}

// Diff partitions target against the keys of live.
func Diff[G any](live map[string]G, target []dataset.Record) Partition {
	byID := make(map[string]dataset.Record, len(target))
	seen := make(map[string]int, len(target))
	var dups []string
	for _, rec := range target {
		seen[rec.ID]++
		if seen[rec.ID] == 2 {
			dups = append(dups, rec.ID)
		}
		byID[rec.ID] = rec
	}

	var p Partition
	for id := range live {
		if _, ok := byID[id]; !ok {
			p.Remove = append(p.Remove, id)
		}
	}
	for id, rec := range byID {
		if _, ok := live[id]; ok {
			p.Update = append(p.Update, rec)
		} else {
			p.Create = append(p.Create, rec)
		}
	}

	sort.Strings(p.Remove)
	sortRecords(p.Create)
	sortRecords(p.Update)
	if len(dups) > 0 {
		sort.Strings(dups)
		p.Duplicates = dups
	}
	return p
}

// Empty reports whether the partition changes nothing.
func (p Partition) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Remove) == 0
}

func sortRecords(recs []dataset.Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
}
