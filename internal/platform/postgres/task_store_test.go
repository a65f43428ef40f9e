package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskRowColumns = []string{
	"id", "title", "description", "priority", "status", "author_id", "assignee_id", "created_at", "updated_at",
}

func TestPostgresTaskStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("unassigned task stores null assignee", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())
		task, err := domain.NewTask("Write docs", "", domain.PriorityHigh, "", uuid.New(), nil)
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
			WithArgs(task.ID, task.Title, "", "HIGH", "PENDING", task.AuthorID, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), task))
	})

	t.Run("missing author maps to invalid entity", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())
		task, err := domain.NewTask("Write docs", "", "", "", uuid.New(), nil)
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_author_id_fkey"})

		assert.ErrorIs(t, s.Create(context.Background(), task), store.ErrInvalidEntity)
	})

	t.Run("invalid task never reaches the database", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())

		err := s.Create(context.Background(), &domain.Task{ID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("with assignee", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())
		id, author, assignee := uuid.New(), uuid.New(), uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(id.String(), "T", "D", "LOW", "IN_PROGRESS", author.String(), assignee.String(), now, now))

		got, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, got.Status)
		require.NotNil(t, got.AssigneeID)
		assert.Equal(t, assignee, *got.AssigneeID)
	})

	t.Run("without assignee", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())
		id := uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(id.String(), "T", "", "MEDIUM", "PENDING", uuid.NewString(), nil, now, now))

		got, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got.AssigneeID)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())

		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("updates", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET status = $1")).
			WithArgs("COMPLETED", sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.UpdateStatus(context.Background(), id, domain.StatusCompleted))
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())

		mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET status = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateStatus(context.Background(), uuid.New(), domain.StatusCompleted)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, discardLogger())

		err := s.UpdateStatus(context.Background(), uuid.New(), "DONE")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestPostgresTaskStore_ListFilters(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tests := []struct {
		name  string
		where string
		arg   any
		call  func(s *postgres.PostgresTaskStore) (store.Page[domain.Task], error)
	}{
		{
			name:  "status",
			where: "WHERE status = $1",
			arg:   "PENDING",
			call: func(s *postgres.PostgresTaskStore) (store.Page[domain.Task], error) {
				return s.ListByStatus(context.Background(), domain.StatusPending, store.PageRequest{Size: 5})
			},
		},
		{
			name:  "priority",
			where: "WHERE priority = $1",
			arg:   "HIGH",
			call: func(s *postgres.PostgresTaskStore) (store.Page[domain.Task], error) {
				return s.ListByPriority(context.Background(), domain.PriorityHigh, store.PageRequest{Size: 5})
			},
		},
		{
			name:  "author",
			where: "WHERE author_id = $1",
			arg:   userID,
			call: func(s *postgres.PostgresTaskStore) (store.Page[domain.Task], error) {
				return s.ListByAuthor(context.Background(), userID, store.PageRequest{Size: 5})
			},
		},
		{
			name:  "assignee",
			where: "WHERE assignee_id = $1",
			arg:   userID,
			call: func(s *postgres.PostgresTaskStore) (store.Page[domain.Task], error) {
				return s.ListByAssignee(context.Background(), userID, store.PageRequest{Size: 5})
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			s := postgres.NewPostgresTaskStore(db, discardLogger())

			mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks " + tt.where)).
				WithArgs(tt.arg).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
			mock.ExpectQuery(regexp.QuoteMeta(tt.where + " ORDER BY created_at DESC, id LIMIT $2 OFFSET $3")).
				WithArgs(tt.arg, 5, 0).
				WillReturnRows(sqlmock.NewRows(taskRowColumns))

			page, err := tt.call(s)
			require.NoError(t, err)
			assert.Empty(t, page.Content)
			assert.Equal(t, 5, page.Size)
			assert.Equal(t, 0, page.TotalPages)
		})
	}
}

func TestPostgresTaskStore_Delete(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresTaskStore(db, discardLogger())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), uuid.New()), store.ErrTaskNotFound)
}
