package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gotodo/internal/model"
	"gotodo/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidDueDate  = errors.New("due date is invalid")
	ErrInvalidPriority = errors.New("priority is out of range")
	ErrInvalidPaging   = errors.New("paging parameters are invalid")
	ErrTodoNotFound    = errors.New("todo not found")
)

// Due dates arrive as dd/mm/yyyy on the wire and are stored as calendar
// dates.
const dueDateLayout = "02/01/2006"

const maxPriority = 10

// TodoStore is the slice of the todo repository the service consumes.
type TodoStore interface {
	Create(todo *model.Todo) error
	ListByOwner(userID uint, limit, offset int) ([]model.Todo, error)
	GetByOwnerAndID(userID, todoID uint) (*model.Todo, error)
	UpdateByOwnerAndID(userID, todoID uint, changes repository.TodoChanges) (*model.Todo, error)
	SoftDeleteByOwnerAndID(userID, todoID uint) (bool, error)
}

// ActivityRecorder receives todo lifecycle events for asynchronous
// persistence.
type ActivityRecorder interface {
	Publish(ctx context.Context, entry model.Activity) error
}

// ListCache caches per-user list pages. A cache miss or failure is never
// fatal; the store stays authoritative. GetList reports the generation it
// observed and SetList must file the page under that same generation, so a
// page loaded before a concurrent write can never surface after it.
type ListCache interface {
	GetList(ctx context.Context, userID uint, page, limit int) (todos []model.Todo, gen int64, hit bool, err error)
	SetList(ctx context.Context, userID uint, gen int64, page, limit int, todos []model.Todo) error
	InvalidateUser(ctx context.Context, userID uint) error
}

type TodoService struct {
	todos    TodoStore
	activity ActivityRecorder
	cache    ListCache
}

type CreateTodoInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    *int
}

type UpdateTodoInput struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *int
	IsCompleted *bool
}

func NewTodoService(todos TodoStore, activity ActivityRecorder, cache ListCache) *TodoService {
	return &TodoService{
		todos:    todos,
		activity: activity,
		cache:    cache,
	}
}

func (s *TodoService) Create(ctx context.Context, userID uint, input CreateTodoInput) (*model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	priority := 0
	if input.Priority != nil {
		priority = *input.Priority
		if priority < 0 || priority >= maxPriority {
			return nil, ErrInvalidPriority
		}
	}

	var dueDate *time.Time
	if strings.TrimSpace(input.DueDate) != "" {
		parsed, err := parseDueDate(input.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		dueDate = &parsed
	}

	todo := &model.Todo{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		DueDate:     dueDate,
		Priority:    priority,
	}
	if err := s.todos.Create(todo); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	s.recordActivity(ctx, userID, todo.ID, model.ActivityTodoCreated)
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID uint, page, limit int) ([]model.Todo, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPaging
	}
	offset := (page - 1) * limit

	// The generation must be observed before the store read; see ListCache.
	cacheGen := int64(-1)
	if s.cache != nil {
		cached, gen, hit, err := s.cache.GetList(ctx, userID, page, limit)
		if err == nil {
			if hit {
				return cached, nil
			}
			cacheGen = gen
		}
	}

	todos, err := s.todos.ListByOwner(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && cacheGen >= 0 {
		if err := s.cache.SetList(ctx, userID, cacheGen, page, limit, todos); err != nil {
			log.Printf("cache todo list failed: %v", err)
		}
	}
	return todos, nil
}

// GetByID returns nil without error when no live row owned by userID exists.
func (s *TodoService) GetByID(userID, todoID uint) (*model.Todo, error) {
	if todoID == 0 {
		return nil, ErrTodoNotFound
	}
	return s.todos.GetByOwnerAndID(userID, todoID)
}

func (s *TodoService) Update(ctx context.Context, userID, todoID uint, input UpdateTodoInput) (*model.Todo, error) {
	if todoID == 0 {
		return nil, ErrTodoNotFound
	}

	changes := repository.TodoChanges{
		Description: input.Description,
		IsCompleted: input.IsCompleted,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		changes.Title = &title
	}
	if input.Priority != nil {
		if *input.Priority < 0 || *input.Priority >= maxPriority {
			return nil, ErrInvalidPriority
		}
		changes.Priority = input.Priority
	}
	if input.DueDate != nil && strings.TrimSpace(*input.DueDate) != "" {
		parsed, err := parseDueDate(*input.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		changes.DueDate = &parsed
	}

	todo, err := s.todos.UpdateByOwnerAndID(userID, todoID, changes)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}

	s.invalidateCache(ctx, userID)
	s.recordActivity(ctx, userID, todoID, model.ActivityTodoUpdated)
	return todo, nil
}

// Delete soft-deletes. It is deliberately not idempotent: deleting an
// already-deleted todo reports ErrTodoNotFound.
func (s *TodoService) Delete(ctx context.Context, userID, todoID uint) error {
	if todoID == 0 {
		return ErrTodoNotFound
	}

	deleted, err := s.todos.SoftDeleteByOwnerAndID(userID, todoID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTodoNotFound
	}

	s.invalidateCache(ctx, userID)
	s.recordActivity(ctx, userID, todoID, model.ActivityTodoDeleted)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Printf("invalidate todo list cache failed: %v", err)
	}
}

// recordActivity is best effort: the audit trail never fails a user request.
func (s *TodoService) recordActivity(ctx context.Context, userID, todoID uint, action string) {
	if s.activity == nil {
		return
	}
	entry := model.Activity{
		UserID:    userID,
		TodoID:    todoID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	if err := s.activity.Publish(ctx, entry); err != nil {
		log.Printf("publish activity %s failed: %v", action, err)
	}
}

func parseDueDate(raw string) (time.Time, error) {
	return time.Parse(dueDateLayout, strings.TrimSpace(raw))
}
