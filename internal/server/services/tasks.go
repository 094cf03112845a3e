package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
)

type TaskService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewTaskService(m repomanager.RepositoryManager, log logging.Logger) *TaskService {
	return &TaskService{
		repomanager: m,
		log:         log.With("module", "tasks"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns the tasks of userID ordered by sortKey.
func (s *TaskService) List(ctx context.Context, userID int64, sortKey string) ([]models.Task, error) {
	tasks, err := s.repomanager.Tasks().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	SortTasks(tasks, sortKey)
	return tasks, nil
}

// Get returns a task of userID. Another user's task is reported as
// common.ErrNotFound so its existence does not leak.
func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.repomanager.Tasks().Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, common.ErrNotFound
	}
	return task, nil
}

// Create validates in, fills defaults and stores the task for userID.
func (s *TaskService) Create(ctx context.Context, userID int64, in models.TaskInput) (*models.Task, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}

	task := models.NewTask(userID, in, s.now())
	created, err := s.repomanager.Tasks().Create(ctx, &task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	s.log.Info(ctx, "task created", "user_id", userID, "task_id", created.ID)
	return created, nil
}

// Update merges the supplied fields of in into a task owned by userID.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, in models.TaskInput) (*models.Task, error) {
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, userID, taskID); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Tasks().Update(ctx, taskID, in)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "task updated", "user_id", userID, "task_id", taskID)
	return updated, nil
}

// Delete removes a task owned by userID.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	if err := s.checkOwner(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.repomanager.Tasks().Delete(ctx, taskID); err != nil {
		return err
	}

	s.log.Info(ctx, "task deleted", "user_id", userID, "task_id", taskID)
	return nil
}

// checkOwner yields common.ErrNotFound for a missing task and
// common.ErrForbidden for one owned by someone else.
func (s *TaskService) checkOwner(ctx context.Context, userID, taskID int64) error {
	owner, err := s.repomanager.Tasks().OwnerOf(ctx, taskID)
	if err != nil {
		return err
	}
	if owner != userID {
		s.log.Warn(ctx, "ownership check failed", "user_id", userID, "task_id", taskID)
		return common.ErrForbidden
	}
	return nil
}
