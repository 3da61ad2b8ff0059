package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		First(&task, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, ownerID uuid.UUID, includeCompleted bool) ([]domain.Task, error) {
	var tasks []domain.Task

	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeCompleted {
		query = query.Where("completed = ?", false)
	}

	err := query.Order("due_date IS NULL, due_date, created_at").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Task{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// DeleteAllForOwner removes every task for an owner.
func (r *TaskRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "owner_id = ?", ownerID)
	return result.RowsAffected, result.Error
}
