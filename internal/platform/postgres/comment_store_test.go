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

var commentRowColumns = []string{"id", "content", "task_id", "author_id", "created_at", "updated_at"}

func TestPostgresCommentStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("inserts", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresCommentStore(db, discardLogger())
		c, err := domain.NewComment("hello", uuid.New(), uuid.New())
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comments")).
			WithArgs(c.ID, "hello", c.TaskID, c.AuthorID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Create(context.Background(), c))
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresCommentStore(db, discardLogger())
		c, err := domain.NewComment("hello", uuid.New(), uuid.New())
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comments")).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "comments_task_id_fkey"})

		assert.ErrorIs(t, s.Create(context.Background(), c), store.ErrInvalidEntity)
	})
}

func TestPostgresCommentStore_GetUpdateDelete(t *testing.T) {
	t.Parallel()

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresCommentStore(db, discardLogger())
		id := uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(commentRowColumns).
				AddRow(id.String(), "hi", uuid.NewString(), uuid.NewString(), now, now))

		c, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "hi", c.Content)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresCommentStore(db, discardLogger())

		mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(commentRowColumns))

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrCommentNotFound)
	})

	t.Run("update missing", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresCommentStore(db, discardLogger())
		c, err := domain.NewComment("edited", uuid.New(), uuid.New())
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET content = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), c), store.ErrCommentNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresCommentStore(db, discardLogger())

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), uuid.New()))
	})
}

func TestPostgresCommentStore_ListByTask(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresCommentStore(db, discardLogger())
	taskID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM comments WHERE task_id = $1")).
		WithArgs(taskID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE task_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3")).
		WithArgs(taskID, 10, 0).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).
			AddRow(uuid.NewString(), "a", taskID.String(), uuid.NewString(), now, now).
			AddRow(uuid.NewString(), "b", taskID.String(), uuid.NewString(), now, now))

	page, err := s.ListByTask(context.Background(), taskID, store.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 1, page.TotalPages)
}
