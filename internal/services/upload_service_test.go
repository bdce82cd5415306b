package services_test

import (
	"context"
	"fmt"
	"testing"

	"snapvault/internal/repository"
	"snapvault/internal/services"
	apperrors "snapvault/pkg/errors"

	"github.com/stretchr/testify/require"
)

func newUploadFixture(t *testing.T) (*services.UploadService, repository.MediaRepository, *fakeStorage) {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewMediaRepository(db)
	store := newFakeStorage()
	return services.NewUploadService(repo, store), repo, store
}

func TestUploadService_CreateUploadURL(t *testing.T) {
	svc, _, store := newUploadFixture(t)
	ctx := context.Background()

	url, err := svc.CreateUploadURL(ctx, "k1", "image/png")
	require.NoError(t, err)
	require.Contains(t, url, "k1")
	require.Equal(t, 1, store.ensureCalls, "bucket must be ensured before presigning")
	require.Equal(t, 1, store.presignCalls)
}

func TestUploadService_MimeAllowList(t *testing.T) {
	svc, _, store := newUploadFixture(t)
	ctx := context.Background()

	allowed := []string{
		"image/jpeg", "image/png", "image/webp", "image/gif",
		"video/mp4", "video/mpeg", "video/quicktime",
	}
	for _, mt := range allowed {
		t.Run(mt, func(t *testing.T) {
			_, err := svc.CreateUploadURL(ctx, "k", mt)
			require.NoError(t, err)
		})
	}

	before := store.ensureCalls
	for _, mt := range []string{"application/zip", "text/html", "image/svg+xml", ""} {
		t.Run("rejects "+mt, func(t *testing.T) {
			_, err := svc.CreateUploadURL(ctx, "k", mt)
			require.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
	require.Equal(t, before, store.ensureCalls, "rejected mime must cause no storage calls")
}

func TestUploadService_NotifyNeverUploaded(t *testing.T) {
	svc, repo, _ := newUploadFixture(t)
	ctx := context.Background()

	_, err := svc.NotifyUpload(ctx, "ghost", "image/png", "", alice)
	require.ErrorIs(t, err, apperrors.ErrNotUploaded)

	_, total, err := repo.List(ctx, 1, 10, repository.MediaFilter{})
	require.NoError(t, err)
	require.Zero(t, total, "failed notify must not create a row")
}

func TestUploadService_NotifyMasksStorageErrors(t *testing.T) {
	svc, _, store := newUploadFixture(t)
	store.existsErr = fmt.Errorf("connection refused")

	_, err := svc.NotifyUpload(context.Background(), "k1", "image/png", "", alice)
	require.ErrorIs(t, err, apperrors.ErrNotUploaded)
}

func TestUploadService_NotifySuccess(t *testing.T) {
	svc, repo, store := newUploadFixture(t)
	ctx := context.Background()
	store.objects["k1"] = true

	item, err := svc.NotifyUpload(ctx, "k1", "image/png", "vacation.png", alice)
	require.NoError(t, err)
	require.NotZero(t, item.ID)
	require.Equal(t, "k1", item.FileName)
	require.Equal(t, "vacation.png", item.OriginalFilename)
	require.Equal(t, int64(0), item.Likes)
	require.Equal(t, "alice", item.CreatedBy)
	require.True(t, item.Deletable)
	require.False(t, item.LikedByUser)
	require.Equal(t, "https://storage.local/snapvault-media/k1", item.URL)

	m, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, "image/png", m.Mimetype)
}

func TestUploadService_NotifyWithoutOriginalFilename(t *testing.T) {
	svc, repo, store := newUploadFixture(t)
	ctx := context.Background()
	store.objects["k2"] = true

	item, err := svc.NotifyUpload(ctx, "k2", "video/mp4", "", alice)
	require.NoError(t, err)
	require.Empty(t, item.OriginalFilename)

	m, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.False(t, m.OriginalFilename.Valid)
}
