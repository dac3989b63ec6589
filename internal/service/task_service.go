package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
}

// TaskPatch carries a partial update. Nil fields keep their current value.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService wraps task-related business logic. Every call is scoped to ownerID.
type TaskService struct {
	taskRepo *repository.TaskRepository
	now      func() time.Time
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, now: time.Now}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID uuid.UUID, input TaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("title and description are required: %w", ErrInvalidInput)
	}

	task := model.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   s.now().UTC(),
		UserID:      ownerID,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	return s.taskRepo.ListByOwner(ctx, ownerID)
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, patch TaskPatch) (*model.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("title must not be empty: %w", ErrInvalidInput)
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, fmt.Errorf("description must not be empty: %w", ErrInvalidInput)
	}

	task, err := s.taskRepo.Update(ctx, ownerID, taskID, repository.TaskChanges{
		Title:       patch.Title,
		Description: patch.Description,
		Completed:   patch.Completed,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

// DeleteTask removes a task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	return mapNotFound(s.taskRepo.Delete(ctx, ownerID, taskID))
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
