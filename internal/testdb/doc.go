// Package testdb opens a real PostgreSQL database for integration tests.
//
// Tests call Open to get a migrated *sql.DB and WithTx to run each case in a
// transaction that is always rolled back, so cases never see each other's
// rows. When no database URL is configured, Open skips the test locally and
// fails it in CI, where a database is expected to be provisioned.
//
// Basic usage:
//
//	func TestUserStore_Integration(t *testing.T) {
//		db := testdb.Open(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			users := postgres.NewPostgresUserStore(tx, logger)
//			// ...
//		})
//	}
package testdb
