//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/store"
	"github.com/phrazzld/taskhub-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertUser(t *testing.T, tx *sql.Tx, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "Integration User", "password123", domain.RoleUser)
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$integrationtesthashvaluexxxxxxxxxxxxxxxxxxxxxxxxxxxx"
	user.Password = ""
	require.NoError(t, postgres.NewPostgresUserStore(tx, discardLogger()).Create(context.Background(), user))
	return user
}

func TestUserStore_Integration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	t.Run("create and fetch by email", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, discardLogger())
			created := insertUser(t, tx, "alice@example.com")

			got, err := users.GetByEmail(ctx, "alice@example.com")
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.HashedPassword, got.HashedPassword)
			assert.True(t, got.Enabled)
		})
	})

	t.Run("unknown id", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, discardLogger())
			_, err := users.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})

	t.Run("duplicate email", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			insertUser(t, tx, "dup@example.com")

			again, err := domain.NewUser("dup@example.com", "Other", "password123", domain.RoleUser)
			require.NoError(t, err)
			again.HashedPassword = "hash"
			err = postgres.NewPostgresUserStore(tx, discardLogger()).Create(ctx, again)
			assert.ErrorIs(t, err, store.ErrEmailExists)
		})
	})
}

func TestTaskAndCommentStores_Integration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		author := insertUser(t, tx, "author@example.com")
		assignee := insertUser(t, tx, "assignee@example.com")

		tasks := postgres.NewPostgresTaskStore(tx, discardLogger())
		comments := postgres.NewPostgresCommentStore(tx, discardLogger())

		task, err := domain.NewTask("Write docs", "", domain.PriorityHigh, "", author.ID, &assignee.ID)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))

		require.NoError(t, tasks.UpdateStatus(ctx, task.ID, domain.StatusInProgress))
		got, err := tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, got.Status)
		require.NotNil(t, got.AssigneeID)
		assert.Equal(t, assignee.ID, *got.AssigneeID)

		byAssignee, err := tasks.ListByAssignee(ctx, assignee.ID, store.PageRequest{Size: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, byAssignee.TotalElements)

		comment, err := domain.NewComment("Looks good", task.ID, assignee.ID)
		require.NoError(t, err)
		require.NoError(t, comments.Create(ctx, comment))

		byTask, err := comments.ListByTask(ctx, task.ID, store.PageRequest{Size: 10})
		require.NoError(t, err)
		require.Len(t, byTask.Content, 1)
		assert.Equal(t, "Looks good", byTask.Content[0].Content)

		require.NoError(t, tasks.Delete(ctx, task.ID))
		_, err = comments.GetByID(ctx, comment.ID)
		assert.ErrorIs(t, err, store.ErrCommentNotFound)
	})
}
