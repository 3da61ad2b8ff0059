package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/mapper"
	"github.com/ovenledger/bakery-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepo *repository.TaskRepository
	logger   *zap.Logger
}

func NewTaskService(taskRepo *repository.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateTaskRequest) (*domain.TaskDTO, error) {
	task := &domain.Task{
		OwnerID: ownerID,
		Title:   req.Title,
		Details: req.Details,
		DueDate: parseDate(req.DueDate),
		Tags:    req.Tags,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, includeCompleted bool) ([]domain.TaskDTO, error) {
	tasks, err := s.taskRepo.List(ctx, ownerID, includeCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	dtos := make([]domain.TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = mapper.ToTaskDTO(&task)
	}

	return dtos, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateTaskRequest) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Title = req.Title
	task.Details = req.Details
	task.DueDate = parseDate(req.DueDate)
	task.Tags = req.Tags

	if req.Completed != nil && *req.Completed != task.Completed {
		task.Completed = *req.Completed
		if task.Completed {
			now := time.Now().UTC()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}

// Complete marks a task done, stamping the completion time. Completing an
// already-completed task is a no-op.
func (s *TaskService) Complete(ctx context.Context, ownerID, id uuid.UUID) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if !task.Completed {
		task.Completed = true
		now := time.Now().UTC()
		task.CompletedAt = &now

		if err := s.taskRepo.Update(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to complete task: %w", err)
		}
	}

	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.taskRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.taskRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
