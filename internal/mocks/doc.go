// Package mocks provides centralized mock implementations for testing.
//
// Function-field mocks (MockUserStore, MockTodoListStore, MockDesignationStore)
// fall back to a small in-memory behaviour when a field is nil. Testify mocks
// (TestifyMockCredentialStore) are for tests that assert on calls.
//
//	users := mocks.NewMockUserStore(alice)
//	users.LookupError = errors.New("database is down")
package mocks
