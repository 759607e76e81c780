package tune

import (
	"fmt"
	"math"

	"github.com/katalvlaran/coflow/cluster"
	"github.com/katalvlaran/coflow/core"
)

// Score grades a cluster report against ground-truth regions.
//
// Stage 1: each member's earliest timestamp maps to an expected region
// via RegionOf; half-regions count as "should be unclustered".
// Stage 2: per non-noise group, purity is the dominant region's share
// of the members that belong to whole regions (an empty share scores a
// full 1). The noise group instead scores the share of its members
// that indeed belong to half-regions.
// Stage 3: the final score averages three components in [0,1]: the
// size metric exp(-|formed-expected|/expected), the mean group purity,
// and the noise-group purity.
func Score(firstSeen map[core.StreamID]uint64, regions []Region, report cluster.Report) (float64, error) {
	if len(regions) == 0 {
		return 0, ErrNoRegions
	}

	purities := make([]float64, 0, len(report))
	unclusteredPurity := 0.0
	formed := 0

	for _, group := range report {
		counts := make(map[int]int)
		halves := 0
		for _, member := range group.Members {
			earliest, ok := firstSeen[member.ID]
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrUnknownStream, member.ID)
			}
			expected := RegionOf(earliest, regions)
			if expected == math.Round(expected) {
				counts[int(expected)]++
			} else {
				halves++
			}
		}

		if group.Label == cluster.NoiseLabel {
			// The noise group is pure when its members were indeed
			// expected to stay unclustered.
			unclusteredPurity = float64(halves) / float64(len(group.Members))
			continue
		}
		formed++

		maxCount := 0
		for _, c := range counts {
			if c > maxCount {
				maxCount = c
			}
		}
		purity := 1.0
		if whole := len(group.Members) - halves; whole != 0 {
			purity = float64(maxCount) / float64(whole)
		}
		purities = append(purities, purity)
	}

	averagePurity := 0.0
	if len(purities) > 0 {
		total := 0.0
		for _, p := range purities {
			total += p
		}
		averagePurity = total / float64(len(purities))
	}

	diff := math.Abs(float64(formed - len(regions)))
	sizeMetric := math.Exp(-diff / float64(len(regions)))

	return (sizeMetric + averagePurity + unclusteredPurity) / 3, nil
}
