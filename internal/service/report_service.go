package service

import (
	"context"
	"fmt"
	"time"

	"task-manager/internal/repository"
)

// UsageReport is a point-in-time snapshot of stored records.
type UsageReport struct {
	GeneratedAt    time.Time
	Users          int64
	Tasks          int64
	CompletedTasks int64
}

func (r UsageReport) String() string {
	open := r.Tasks - r.CompletedTasks
	return fmt.Sprintf("usage report %s: users=%d tasks=%d completed=%d open=%d",
		r.GeneratedAt.Format(time.RFC3339), r.Users, r.Tasks, r.CompletedTasks, open)
}

// ReportService builds usage summaries for the periodic report job.
type ReportService struct {
	userRepo *repository.UserRepository
	taskRepo *repository.TaskRepository
}

func NewReportService(userRepo *repository.UserRepository, taskRepo *repository.TaskRepository) *ReportService {
	return &ReportService{userRepo: userRepo, taskRepo: taskRepo}
}

func (s *ReportService) Usage(ctx context.Context, now time.Time) (UsageReport, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return UsageReport{}, fmt.Errorf("count users: %w", err)
	}
	total, completed, err := s.taskRepo.Stats(ctx)
	if err != nil {
		return UsageReport{}, err
	}
	return UsageReport{
		GeneratedAt:    now.UTC(),
		Users:          users,
		Tasks:          total,
		CompletedTasks: completed,
	}, nil
}
