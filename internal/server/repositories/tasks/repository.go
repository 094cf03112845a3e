// Package tasks is the task store: task records owned by users, in a
// PostgreSQL and an in-memory flavour. Ownership is not checked here; the
// service layer does that before any mutation.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Repository stores tasks. Absent ids are reported with common.ErrNotFound.
type Repository interface {
	// ListByUser returns all tasks of userID, newest id first.
	ListByUser(ctx context.Context, userID int64) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	// OwnerOf returns the id of the user owning task id.
	OwnerOf(ctx context.Context, id int64) (int64, error)
	// Create stores task as given; the store assigns id and timestamps.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// Update writes the supplied fields of in and refreshes updated_at.
	Update(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}
