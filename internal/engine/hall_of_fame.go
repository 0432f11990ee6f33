package engine

import (
	"sort"

	"github.com/your-org/strategy-miner/internal/validator"
)

// HallOfFame keeps the best strategies seen across the whole run,
// capped at a fixed capacity and kept sorted by fitness descending.
// Entries survive population replacement; every admitted individual is
// deep-copied.
//
// Admission is diversity-aware: a candidate whose parameter profile is
// not distinct from an existing member competes only against that
// member, so the hall does not fill up with near-identical variants of
// one strategy.
type HallOfFame struct {
	capacity  int
	diversity *validator.Diversity

	entries  []*Individual
	profiles []validator.ParamProfile
}

// NewHallOfFame creates an empty hall with the given capacity.
// Capacity must be positive.
func NewHallOfFame(capacity int, diversity *validator.Diversity) *HallOfFame {
	return &HallOfFame{
		capacity:  capacity,
		diversity: diversity,
	}
}

// Offer proposes an individual for admission and reports whether the
// hall changed. Sentinel-scored and tree-less candidates are rejected
// outright.
func (h *HallOfFame) Offer(ind *Individual) bool {
	if ind == nil || ind.Rule == nil || IsSentinel(ind.Fitness) {
		return false
	}
	profile := validator.Profile(ind.Rule.Condition)

	// A clash with an existing member is a head-to-head contest:
	// replace the member only on a strictly better score.
	for i, existing := range h.profiles {
		if h.diversity.Distinct(profile, existing) {
			continue
		}
		if ind.Fitness > h.entries[i].Fitness {
			h.entries[i] = ind.clone()
			h.profiles[i] = profile
			h.sortDesc()
			return true
		}
		return false
	}

	if len(h.entries) < h.capacity {
		h.entries = append(h.entries, ind.clone())
		h.profiles = append(h.profiles, profile)
		h.sortDesc()
		return true
	}

	// Full and diverse: displace the current worst if strictly better.
	worst := len(h.entries) - 1
	if ind.Fitness > h.entries[worst].Fitness {
		h.entries[worst] = ind.clone()
		h.profiles[worst] = profile
		h.sortDesc()
		return true
	}
	return false
}

func (h *HallOfFame) sortDesc() {
	type pair struct {
		ind     *Individual
		profile validator.ParamProfile
	}
	pairs := make([]pair, len(h.entries))
	for i := range h.entries {
		pairs[i] = pair{h.entries[i], h.profiles[i]}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].ind.Fitness > pairs[b].ind.Fitness
	})
	for i := range pairs {
		h.entries[i] = pairs[i].ind
		h.profiles[i] = pairs[i].profile
	}
}

// Len returns the number of admitted entries.
func (h *HallOfFame) Len() int { return len(h.entries) }

// Best returns the top entry, or nil when the hall is empty.
func (h *HallOfFame) Best() *Individual {
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[0]
}

// Entries returns the members ordered best first. The returned slice
// is a copy; the individuals are the hall's own deep copies.
func (h *HallOfFame) Entries() []*Individual {
	out := make([]*Individual, len(h.entries))
	copy(out, h.entries)
	return out
}
