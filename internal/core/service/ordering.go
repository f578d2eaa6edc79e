package service

import (
	"cmp"
	"slices"
)

type orderable interface {
	GetID() string
	GetPriority() int
}

// nextPriority is the priority that places a new item last in its scope.
func nextPriority[T orderable](items []T) int {
	highest := 0

	for _, item := range items {
		highest = max(highest, item.GetPriority())
	}

	return highest + 1
}

type priorityShift struct {
	ID       string
	Priority int
}

// shiftSiblings returns the new priorities of the siblings displaced when the
// item movedID goes from oldPriority to newPriority. Items outside the range
// between the two positions keep their priority and are not returned.
func shiftSiblings[T orderable](items []T, movedID string, oldPriority, newPriority int) []priorityShift {
	var shifts []priorityShift

	for _, item := range items {
		if item.GetID() == movedID {
			continue
		}

		p := item.GetPriority()

		switch {
		case oldPriority < newPriority && p > oldPriority && p <= newPriority:
			shifts = append(shifts, priorityShift{ID: item.GetID(), Priority: p - 1})
		case oldPriority > newPriority && p >= newPriority && p < oldPriority:
			shifts = append(shifts, priorityShift{ID: item.GetID(), Priority: p + 1})
		}
	}

	return shifts
}

func sortByPriority[T orderable](items []T) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(a.GetPriority(), b.GetPriority())
	})

	return items
}
