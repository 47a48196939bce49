// Package strategy orders the staff/activity/slot/group tuples the
// Variable Factory walks when creating X variables. Two equal CampData
// inputs must produce the same CP-SAT model no matter which strategy is
// in effect, so every strategy returns a total order over the same key
// set — strategies differ only in which tuples are created and posted
// first, not in what gets built. The order is not passed to the solver
// as a decision strategy.
package strategy

import (
	"fmt"
	"sort"

	"github.com/campsched/campsched/internal/domain"
)

// AssignmentKey identifies one candidate X[s,a,k,g] variable.
type AssignmentKey struct {
	StaffID    int
	ActivityID int
	Slot       domain.TimeSlot
	GroupID    int
}

func (k AssignmentKey) less(other AssignmentKey) bool {
	if k.Slot != other.Slot {
		return k.Slot.Less(other.Slot)
	}
	if k.GroupID != other.GroupID {
		return k.GroupID < other.GroupID
	}
	if k.ActivityID != other.ActivityID {
		return k.ActivityID < other.ActivityID
	}
	return k.StaffID < other.StaffID
}

// Strategy orders a slice of candidate assignment keys before variable
// creation and constraint posting.
type Strategy interface {
	Order(cd *domain.CampData, keys []AssignmentKey) []AssignmentKey
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "", "lexicographic":
		return &Lexicographic{}, nil
	case "scarce_first":
		return &ScarceFirst{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// Lexicographic orders keys purely by (slot, group, activity, staff) —
// the baseline order that makes two builds over equal inputs produce
// byte-identical constraint graphs.
type Lexicographic struct{}

func (s *Lexicographic) Order(_ *domain.CampData, keys []AssignmentKey) []AssignmentKey {
	out := append([]AssignmentKey(nil), keys...)
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// ScarceFirst orders keys so activities with fewer qualified staff (the
// ones most likely to bind C10's lead requirement or C8's min-staffing
// constraint) are posted before activities with abundant qualified
// staff. Ties break lexicographically so the
// order stays deterministic.
type ScarceFirst struct{}

func (s *ScarceFirst) Order(cd *domain.CampData, keys []AssignmentKey) []AssignmentKey {
	qualifiedCount := map[int]int{}
	for _, a := range cd.Activities {
		count := 0
		for _, st := range cd.Staff {
			if cd.Qualified(st.ID, a.ID) {
				count++
			}
		}
		qualifiedCount[a.ID] = count
	}

	out := append([]AssignmentKey(nil), keys...)
	sort.Slice(out, func(i, j int) bool {
		ci, cj := qualifiedCount[out[i].ActivityID], qualifiedCount[out[j].ActivityID]
		if ci != cj {
			return ci < cj
		}
		return out[i].less(out[j])
	})
	return out
}
