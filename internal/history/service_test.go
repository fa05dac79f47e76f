package history

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository is an in-memory Repository for service tests.
type memoryRepository struct {
	entries  []*Entry
	nextID   int64
	saveErr  error
	pruneErr error
	prunes   []int
}

func (r *memoryRepository) Save(entry *Entry) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.nextID++
	entry.SetID(r.nextID)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryRepository) Recent(limit int) ([]*Entry, error) {
	out := make([]*Entry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepository) CountByCommand(command string) (int, error) {
	count := 0
	for _, e := range r.entries {
		if e.Command() == command {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) Prune(keep int) error {
	r.prunes = append(r.prunes, keep)
	if r.pruneErr != nil {
		return r.pruneErr
	}
	if len(r.entries) > keep {
		r.entries = r.entries[len(r.entries)-keep:]
	}
	return nil
}

func (r *memoryRepository) Close() error { return nil }

func newTestService(repo *memoryRepository, limit int, opts ...ServiceOption) *Service {
	seq := 0
	base := []ServiceOption{WithIDFunc(func() string {
		seq++
		return fmt.Sprintf("entry-%04d", seq)
	})}
	return NewService(repo, limit, append(base, opts...)...)
}

func TestService_Record(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 200)

	entry, err := svc.Record("/tag-new Alpha", "tag-new", "true")
	require.NoError(t, err)

	require.Equal(t, int64(1), entry.ID(), "repository should assign the ID")
	assert.Equal(t, "entry-0001", entry.GUID())
	assert.Equal(t, "/tag-new Alpha", entry.Input())
	assert.Equal(t, "tag-new", entry.Command())
	assert.Equal(t, "true", entry.Result())
	require.Len(t, repo.entries, 1)
}

func TestService_Record_EmptyInput(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 200)

	_, err := svc.Record("   ", "tag-new", "false")
	require.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, repo.entries, "nothing should be stored")
}

func TestService_Record_EmptyCommand(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 200)

	_, err := svc.Record("/tag-new Alpha", "", "true")
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestService_Record_SaveError(t *testing.T) {
	repo := &memoryRepository{saveErr: errors.New("disk full")}
	svc := newTestService(repo, 200)

	_, err := svc.Record("/tag-new Alpha", "tag-new", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving history entry")
}

func TestService_Record_PrunesToLimit(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 3)

	for i := 0; i < 5; i++ {
		_, err := svc.Record(fmt.Sprintf("/tag-exists t%d", i), "tag-exists", "false")
		require.NoError(t, err)
	}

	assert.Len(t, repo.entries, 3, "retention limit should hold")
	assert.Equal(t, []int{3, 3, 3, 3, 3}, repo.prunes, "every record should prune")
}

func TestService_Record_PruneFailureDoesNotFailRecord(t *testing.T) {
	repo := &memoryRepository{pruneErr: errors.New("locked")}
	svc := newTestService(repo, 3)

	entry, err := svc.Record("/tag-list", "tag-list", "")
	require.NoError(t, err, "a failed prune should not fail the record")
	require.NotNil(t, entry)
}

func TestService_Record_ZeroLimitSkipsPrune(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 0)

	_, err := svc.Record("/tag-list", "tag-list", "")
	require.NoError(t, err)
	assert.Empty(t, repo.prunes, "limit 0 disables pruning")
}

func TestService_Record_TruncatesLongResult(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 200)

	long := strings.Repeat("é", 2000)
	entry, err := svc.Record("/tag-list", "tag-list", long)
	require.NoError(t, err)

	assert.Less(t, len(entry.Result()), len(long))
	assert.True(t, strings.HasSuffix(entry.Result(), "…"), "truncation should be marked")
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(entry.Result(), "…")),
		"truncation should cut at a rune boundary")
}

func TestService_Record_OnEvent(t *testing.T) {
	repo := &memoryRepository{}
	var seen []*Entry
	svc := newTestService(repo, 200, WithOnEvent(func(e *Entry) {
		seen = append(seen, e)
	}))

	_, err := svc.Record("/tag-new Alpha", "tag-new", "true")
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "tag-new", seen[0].Command())
}

func TestService_Recent_ClampsToRetentionLimit(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 3)

	for i := 0; i < 3; i++ {
		_, err := svc.Record(fmt.Sprintf("/tag-exists t%d", i), "tag-exists", "false")
		require.NoError(t, err)
	}

	got, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Len(t, got, 3, "limit 0 falls back to the retention limit")

	got, err = svc.Recent(100)
	require.NoError(t, err)
	assert.Len(t, got, 3, "requests beyond retention clamp down")

	got, err = svc.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/tag-exists t2", got[0].Input(), "newest first")
}

func TestService_CountByCommand(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo, 200)

	_, err := svc.Record("/tag-new Alpha", "tag-new", "true")
	require.NoError(t, err)
	_, err = svc.Record("/tag-new Beta", "tag-new", "true")
	require.NoError(t, err)
	_, err = svc.Record("/tag-list", "tag-list", "Alpha, Beta")
	require.NoError(t, err)

	count, err := svc.CountByCommand("tag-new")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
