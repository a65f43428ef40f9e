package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/taskhub-api/internal/store"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryPage runs countQuery for the total and selectQuery for one page of
// rows. LIMIT and OFFSET placeholders are appended after args.
func queryPage[T any](
	ctx context.Context,
	db store.DBTX,
	countQuery, selectQuery string,
	args []any,
	req store.PageRequest,
	scan func(rowScanner) (T, error),
) (store.Page[T], error) {
	req = req.Normalize()

	var total int64
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return store.Page[T]{}, MapError(err)
	}

	query := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", selectQuery, len(args)+1, len(args)+2)
	pageArgs := append(append([]any{}, args...), req.Size, req.Offset())

	rows, err := db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return store.Page[T]{}, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]T, 0, req.Size)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return store.Page[T]{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return store.Page[T]{}, MapError(err)
	}

	return store.NewPage(items, req, total), nil
}

// dbFromTx narrows a transaction to DBTX.
func dbFromTx(tx *sql.Tx) store.DBTX {
	return tx
}
