package services

import (
	"sort"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Sort keys accepted by TaskService.List. Anything else means SortCreated.
const (
	SortCreated  = "created"
	SortDue      = "due"
	SortPriority = "priority"
)

// SortTasks reorders tasks in place. The input is expected newest-id first;
// both re-orderings are stable, so ties keep that order.
func SortTasks(tasks []models.Task, key string) {
	switch key {
	case SortDue:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if !a.Valid {
				return false
			}
			if !b.Valid {
				return true
			}
			return a.Before(b)
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return models.PriorityRank(tasks[i].Priority) < models.PriorityRank(tasks[j].Priority)
		})
	}
}
