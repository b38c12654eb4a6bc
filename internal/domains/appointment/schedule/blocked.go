package schedule

import (
	"garage/shared/constant"

	"github.com/rs/zerolog/log"
)

// Booked is an existing appointment as seen by the calculator.
type Booked struct {
	Time    string
	Service string
}

// Classifier resolves a service to its bay and the number of slots it occupies.
type Classifier interface {
	BayOf(serviceID string) int
	SlotCount(serviceID string) int
}

type span struct {
	start int
	slots int
}

// BlockedSlots returns the grid labels a candidate service of candidateSlots length cannot start at in
// candidateBay, ordered by grid position. dayEnd is the closing boundary in minutes since midnight.
func BlockedSlots(booked []Booked, candidateBay, candidateSlots int, grid Grid, dayEnd int, classifier Classifier) []string {
	if candidateSlots < 1 {
		candidateSlots = 1
	}

	spans := sameBay(booked, candidateBay, classifier)
	blocked := make(map[int]struct{}, len(grid.minutes))

	blockOccupied(spans, grid, blocked)
	blockCandidateConflicts(spans, candidateSlots, grid, dayEnd, blocked)

	result := make([]string, 0, len(blocked))

	for position, minute := range grid.minutes {
		if _, ok := blocked[minute]; ok {
			result = append(result, grid.labels[position])
		}
	}

	return result
}

func sameBay(booked []Booked, bay int, classifier Classifier) []span {
	spans := make([]span, 0, len(booked))

	for _, b := range booked {
		if classifier.BayOf(b.Service) != bay {
			continue
		}

		start, err := ParseLabel(b.Time)
		if err != nil {
			log.Warn().Err(err).Str("time", b.Time).Str("service", b.Service).Msg("skipping booked appointment with unparsable time")

			continue
		}

		spans = append(spans, span{start: start, slots: classifier.SlotCount(b.Service)})
	}

	return spans
}

// blockOccupied marks every grid slot an existing booking covers.
func blockOccupied(spans []span, grid Grid, blocked map[int]struct{}) {
	for _, sp := range spans {
		last := sp.start + (sp.slots-1)*constant.SlotMinutes

		for _, minute := range grid.minutes {
			if minute >= sp.start && minute <= last {
				blocked[minute] = struct{}{}
			}
		}
	}
}

// blockCandidateConflicts marks start times where the candidate would run past dayEnd or where one of its
// own sub-slots lands on an existing booking's start.
func blockCandidateConflicts(spans []span, candidateSlots int, grid Grid, dayEnd int, blocked map[int]struct{}) {
	starts := make(map[int]struct{}, len(spans))
	for _, sp := range spans {
		starts[sp.start] = struct{}{}
	}

	for _, minute := range grid.minutes {
		if minute+candidateSlots*constant.SlotMinutes > dayEnd {
			blocked[minute] = struct{}{}

			continue
		}

		for i := range candidateSlots {
			if _, ok := starts[minute+i*constant.SlotMinutes]; ok {
				blocked[minute] = struct{}{}

				break
			}
		}
	}
}
