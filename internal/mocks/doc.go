// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// Store mocks use function fields: set the fields a test needs, and unset
// methods return zero values. Directory uses testify/mock for tests that
// assert on call arguments.
//
//	users := &mocks.MockUserStore{
//	    GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
//	        return nil, store.ErrUserNotFound
//	    },
//	}
package mocks
