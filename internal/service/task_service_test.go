package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/mocks"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	t.Parallel()

	caller := &domain.User{ID: uuid.New(), Email: "caller@x.com"}
	other := &domain.User{ID: uuid.New(), Email: "other@x.com"}
	missing := uuid.New()

	tests := []struct {
		name       string
		in         service.TaskInput
		wantErr    error
		wantAuthor uuid.UUID
		commit     bool
	}{
		{
			name:       "author defaults to caller",
			in:         service.TaskInput{Title: "Write spec"},
			wantAuthor: caller.ID,
			commit:     true,
		},
		{
			name:       "explicit author and assignee",
			in:         service.TaskInput{Title: "Review", AuthorID: &other.ID, AssigneeID: &caller.ID},
			wantAuthor: other.ID,
			commit:     true,
		},
		{
			name:    "unknown author",
			in:      service.TaskInput{Title: "x", AuthorID: &missing},
			wantErr: service.ErrAuthorNotFound,
		},
		{
			name:    "unknown assignee",
			in:      service.TaskInput{Title: "x", AssigneeID: &missing},
			wantErr: service.ErrAssigneeNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db, sqlMock := newTxDB(t)
			sqlMock.ExpectBegin()
			if tt.commit {
				sqlMock.ExpectCommit()
			} else {
				sqlMock.ExpectRollback()
			}

			created := 0
			tasks := &mocks.MockTaskStore{
				CreateFn: func(ctx context.Context, task *domain.Task) error {
					created++
					return nil
				},
			}
			svc := service.NewTaskService(tasks, mocks.NewUserStoreWith(caller, other), db, quietLogger())

			task, err := svc.Create(context.Background(), caller.ID, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantAuthor, task.AuthorID)
				assert.Equal(t, domain.PriorityMedium, task.Priority)
				assert.Equal(t, domain.StatusPending, task.Status)
				assert.Equal(t, 1, created)
			}
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestTaskService_CreateValidation(t *testing.T) {
	t.Parallel()

	svc := service.NewTaskService(&mocks.MockTaskStore{}, &mocks.MockUserStore{}, nil, quietLogger())
	_, err := svc.Create(context.Background(), uuid.New(), service.TaskInput{Title: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskService_Update(t *testing.T) {
	t.Parallel()

	author := &domain.User{ID: uuid.New(), Email: "a@x.com"}
	assignee := &domain.User{ID: uuid.New(), Email: "b@x.com"}
	existing := &domain.Task{
		ID:         uuid.New(),
		Title:      "Old",
		Priority:   domain.PriorityLow,
		Status:     domain.StatusPending,
		AuthorID:   author.ID,
		AssigneeID: &assignee.ID,
	}

	db, sqlMock := newTxDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	var saved *domain.Task
	tasks := &mocks.MockTaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			copied := *existing
			return &copied, nil
		},
		UpdateFn: func(ctx context.Context, task *domain.Task) error {
			saved = task
			return nil
		},
	}
	svc := service.NewTaskService(tasks, mocks.NewUserStoreWith(author, assignee), db, quietLogger())

	task, err := svc.Update(context.Background(), existing.ID, service.TaskInput{
		Title:    "New",
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", task.Title)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.StatusPending, task.Status)
	assert.Equal(t, author.ID, saved.AuthorID)
	assert.Nil(t, saved.AssigneeID, "update replaces the assignee")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestTaskService_UpdateResetsOmittedPriorityAndStatus(t *testing.T) {
	t.Parallel()

	author := &domain.User{ID: uuid.New(), Email: "a@x.com"}
	existing := &domain.Task{
		ID:       uuid.New(),
		Title:    "Old",
		Priority: domain.PriorityHigh,
		Status:   domain.StatusInProgress,
		AuthorID: author.ID,
	}

	db, sqlMock := newTxDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	tasks := &mocks.MockTaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			copied := *existing
			return &copied, nil
		},
		UpdateFn: func(ctx context.Context, task *domain.Task) error { return nil },
	}
	svc := service.NewTaskService(tasks, mocks.NewUserStoreWith(author), db, quietLogger())

	task, err := svc.Update(context.Background(), existing.ID, service.TaskInput{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.StatusPending, task.Status)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestTaskService_GetAssignee(t *testing.T) {
	t.Parallel()

	assignee := &domain.User{ID: uuid.New(), Email: "b@x.com"}
	assigned := &domain.Task{ID: uuid.New(), AssigneeID: &assignee.ID}
	unassigned := &domain.Task{ID: uuid.New()}

	tasks := &mocks.MockTaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			switch id {
			case assigned.ID:
				return assigned, nil
			case unassigned.ID:
				return unassigned, nil
			}
			return nil, store.ErrTaskNotFound
		},
	}
	svc := service.NewTaskService(tasks, mocks.NewUserStoreWith(assignee), nil, quietLogger())

	user, err := svc.GetAssignee(context.Background(), assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, assignee.ID, user.ID)

	_, err = svc.GetAssignee(context.Background(), unassigned.ID)
	assert.ErrorIs(t, err, service.ErrNoAssignee)

	_, err = svc.GetAssignee(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var gotStatus domain.Status
	tasks := &mocks.MockTaskStore{
		UpdateStatusFn: func(ctx context.Context, taskID uuid.UUID, status domain.Status) error {
			gotStatus = status
			return nil
		},
		GetByIDFn: func(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
			return &domain.Task{ID: taskID, Status: gotStatus}, nil
		},
	}
	svc := service.NewTaskService(tasks, &mocks.MockUserStore{}, nil, quietLogger())

	task, err := svc.UpdateStatus(context.Background(), id, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, task.Status)
}

func TestTaskService_ListsNormalizePaging(t *testing.T) {
	t.Parallel()

	var got store.PageRequest
	tasks := &mocks.MockTaskStore{
		ListByPriorityFn: func(ctx context.Context, p domain.Priority, page store.PageRequest) (store.Page[domain.Task], error) {
			got = page
			return store.NewPage[domain.Task](nil, page, 0), nil
		},
	}
	svc := service.NewTaskService(tasks, &mocks.MockUserStore{}, nil, quietLogger())

	_, err := svc.ListByPriority(context.Background(), domain.PriorityHigh, store.PageRequest{Page: -1, Size: 500})
	require.NoError(t, err)
	assert.Equal(t, store.PageRequest{Page: 0, Size: store.MaxPageSize}, got)
}
