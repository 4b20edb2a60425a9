package analysis

import (
	"sort"
	"time"
)

// DefaultClusterGap is the maximum distance between consecutive events in
// one temporal cluster.
const DefaultClusterGap = 24 * time.Hour

// ClusterTimes partitions timestamps into maximal clusters where each
// consecutive pair is within the gap. The input is sorted ascending first;
// a single left-to-right pass then appends each timestamp to the current
// cluster when its distance from the cluster's latest member is at most gap,
// and starts a new cluster otherwise. Every input timestamp appears in
// exactly one cluster; empty input yields nil. Pure function.
func ClusterTimes(timestamps []time.Time, gap time.Duration) [][]time.Time {
	if len(timestamps) == 0 {
		return nil
	}

	sorted := make([]time.Time, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	var clusters [][]time.Time
	current := []time.Time{sorted[0]}

	for _, ts := range sorted[1:] {
		latest := current[len(current)-1]
		if ts.Sub(latest) <= gap {
			current = append(current, ts)
			continue
		}
		clusters = append(clusters, current)
		current = []time.Time{ts}
	}

	return append(clusters, current)
}

// LargestClusterSize returns the size of the largest cluster, or 0 when
// there are none.
func LargestClusterSize(clusters [][]time.Time) int {
	max := 0
	for _, c := range clusters {
		if len(c) > max {
			max = len(c)
		}
	}
	return max
}
