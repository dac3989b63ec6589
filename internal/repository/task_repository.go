package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-manager/internal/model"
)

// TaskChanges lists the fields to overwrite on an existing task. Nil fields are left as they are.
type TaskChanges struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskRepository handles CRUD for tasks. Every lookup is scoped by owner.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

// Update applies changes to the owner's task inside a single transaction and returns the stored result.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID uuid.UUID, changes TaskChanges) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find task: %w", err)
		}

		if changes.Title != nil {
			task.Title = *changes.Title
		}
		if changes.Description != nil {
			task.Description = *changes.Description
		}
		if changes.Completed != nil {
			task.Completed = *changes.Completed
		}

		if err := tx.Save(&task).Error; err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes the owner's task. ErrNotFound is returned when nothing matched.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the total and completed task counts across all owners.
func (r *TaskRepository) Stats(ctx context.Context) (total, completed int64, err error) {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Task{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count tasks: %w", err)
	}
	if err := db.Model(&model.Task{}).Where("completed = ?", true).Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return total, completed, nil
}
