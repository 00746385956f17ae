package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talia-baeva/slotline/internal/testutil"
)

func TestStateRepo_PutGetDelete(t *testing.T) {
	repo := NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, KeyRegistrationToken, "tok-1"))

	got, err := repo.Get(ctx, KeyRegistrationToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, repo.Delete(ctx, KeyRegistrationToken))
	_, err = repo.Get(ctx, KeyRegistrationToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStateRepo_PutOverwrites(t *testing.T) {
	repo := NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, KeySelectedPlan, "v1"))
	require.NoError(t, repo.Put(ctx, KeySelectedPlan, "v2"))

	got, err := repo.Get(ctx, KeySelectedPlan)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func TestStateRepo_Get_Missing(t *testing.T) {
	repo := NewSQLiteStateRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "never_written")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStateRepo_Delete_MissingIsNoop(t *testing.T) {
	repo := NewSQLiteStateRepo(testutil.NewTestDB(t))

	assert.NoError(t, repo.Delete(context.Background(), "never_written"))
}

func TestClearAll_RemovesEveryKey(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteStateRepo(database)
	ctx := context.Background()

	for _, key := range []string{KeyRegistrationToken, KeySelectedPlan, KeyOnboardingDraft} {
		require.NoError(t, repo.Put(ctx, key, "x"))
	}

	require.NoError(t, ClearAll(ctx, testutil.NewTestUoW(database)))

	for _, key := range []string{KeyRegistrationToken, KeySelectedPlan, KeyOnboardingDraft} {
		_, err := repo.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound, key)
	}
}
