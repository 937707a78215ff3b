package model

import "sort"

// Project sorts raw events ascending by their effective timestamp and
// normalizes each into a Card. The input slice is never mutated; ties keep
// their original relative order. A nil input yields an empty result.
func Project(raws []Record) []*Card {
	if len(raws) == 0 {
		return []*Card{}
	}
	sorted := make([]Record, len(raws))
	copy(sorted, raws)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortValue(sorted[i]) < sortValue(sorted[j])
	})
	cards := make([]*Card, 0, len(sorted))
	for _, raw := range sorted {
		cards = append(cards, Normalize(raw))
	}
	return cards
}
