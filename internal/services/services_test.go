package services_test

import (
	"context"
	"testing"

	"snapvault/pkg/database"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// fakeStorage is an in-memory ObjectStorage. Keys appear in objects only
// after a simulated PUT (direct map insert by the test).
type fakeStorage struct {
	objects      map[string]bool
	ensureCalls  int
	presignCalls int
	deleteCalls  []string
	presignErr   error
	existsErr    error
	deleteErr    error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]bool{}}
}

func (f *fakeStorage) EnsureBucket(ctx context.Context) error {
	f.ensureCalls++
	return nil
}

func (f *fakeStorage) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	f.presignCalls++
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://storage.local/snapvault-media/" + key + "?signed", nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.objects[key], nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleteCalls = append(f.deleteCalls, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) FileURL(key string) string {
	return "https://storage.local/snapvault-media/" + key
}
