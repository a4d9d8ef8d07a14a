//go:build integration

package state

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := OpenPostgres(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestIntegration_PostgresStore_CRUD(t *testing.T) {
	store := getTestStore(t)
	ctx := context.Background()

	s := New()
	s.SelectCategory(career.JobSeeker)
	s.Answers.Set("Major", "Biology")
	s.SetResume("cv.pdf", "Resume body")
	require.NoError(t, store.Save(ctx, s))
	defer store.Delete(ctx, s.ID)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, career.JobSeeker, got.Category)
	v, _ := got.Answers.Get("Major")
	assert.Equal(t, "Biology", v)
	require.NotNil(t, got.Resume)
	assert.Equal(t, "Resume body", *got.Resume)

	report := "Report"
	got.Report = &report
	got.Submitted = true
	require.NoError(t, store.Save(ctx, got))

	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, again.Report)
	assert.True(t, again.Submitted)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIntegration_PostgresStore_RawResumeBytes(t *testing.T) {
	store := getTestStore(t)
	ctx := context.Background()

	s := New()
	s.SetResume("cv.txt", "Jane \xff\xfe Doe a\x00b")
	require.NoError(t, store.Save(ctx, s))
	defer store.Delete(ctx, s.ID)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Resume)
	assert.Equal(t, []byte("Jane \xff\xfe Doe a\x00b"), []byte(*got.Resume))

	got.ResetResume("broken.pdf")
	require.NoError(t, store.Save(ctx, got))
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, again.Resume)
	assert.Equal(t, "", *again.Resume)
}

func TestIntegration_PostgresStore_ListIdle(t *testing.T) {
	store := getTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-48 * time.Hour)
	store.now = func() time.Time { return base }
	old := New()
	require.NoError(t, store.Save(ctx, old))
	defer store.Delete(ctx, old.ID)

	idle, err := store.ListIdle(ctx, base.Add(time.Minute))
	require.NoError(t, err)

	found := false
	for _, s := range idle {
		if s.ID == old.ID {
			found = true
		}
	}
	assert.True(t, found)
}
