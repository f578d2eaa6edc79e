package service_test

import (
	"sort"

	"taskboard/internal/core/domain"
)

type prioritized interface {
	GetPriority() int
}

// prioritiesOf returns the priorities of items in ascending order.
func prioritiesOf[T prioritized](items []T) []int {
	result := make([]int, 0, len(items))

	for _, item := range items {
		result = append(result, item.GetPriority())
	}

	sort.Ints(result)

	return result
}

func dense(n int) []int {
	result := make([]int, n)

	for i := range result {
		result[i] = i + 1
	}

	return result
}

func priorityByID[T interface {
	prioritized
	GetID() string
}](items []T) map[string]int {
	result := make(map[string]int, len(items))

	for _, item := range items {
		result[item.GetID()] = item.GetPriority()
	}

	return result
}

func titles(todos []domain.Todo) []string {
	result := make([]string, 0, len(todos))

	for _, todo := range todos {
		result = append(result, todo.Title)
	}

	return result
}
