package list

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/store"
	"github.com/todoflow/backend/repository/memory"
)

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, method, path string, body interface{}) error {
	return nil
}

func newTestUseCase(seed ...domain.List) (*UseCase, store.Store) {
	state := store.NewMemory()
	uc := New(memory.NewListRepository(seed...), state, nopRecorder{}, nil)
	return uc, state
}

func ownedList(id, owner string) domain.List {
	return domain.List{ID: id, Name: id, Color: "#3498db", Owner: owner}
}

func persistedShares(t *testing.T, state store.Store) map[string]sharedListRecord {
	t.Helper()
	raw, ok, err := state.Get(context.Background(), sharedListsKey)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	records := map[string]sharedListRecord{}
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	return records
}

func TestCreateList_DerivesID(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()

	created, err := uc.CreateList(context.Background(), "Weekend  Plans", "#9b59b6", "alice")
	require.NoError(t, err)
	assert.Equal(t, "weekend-plans", created.ID)
	assert.Equal(t, "Weekend  Plans", created.Name)
	assert.Equal(t, "alice", created.Owner)
}

func TestCreateList_EmptyNameRejected(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	_, err := uc.CreateList(context.Background(), "  ", "#fff", "alice")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestCreateList_DuplicateRejected(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(ownedList("work", "alice"))
	_, err := uc.CreateList(context.Background(), "Work", "#fff", "alice")
	assert.ErrorIs(t, err, domain.ErrDuplicateList)
}

func TestShareList_GrantsAccessAndPersists(t *testing.T) {
	t.Parallel()

	uc, state := newTestUseCase(ownedList("work", "alice"))

	shared, err := uc.ShareList(context.Background(), "work", "alice", "bob", domain.PermissionView)
	require.NoError(t, err)
	require.Len(t, shared.Shares, 1)
	assert.Equal(t, "bob", shared.Shares[0].Username)
	assert.Equal(t, domain.PermissionView, shared.Shares[0].Permission)
	assert.False(t, shared.Shares[0].SharedAt.IsZero())

	records := persistedShares(t, state)
	require.Contains(t, records, "work")
	assert.Equal(t, "alice", records["work"].Owner)
	require.Len(t, records["work"].SharedWith, 1)
	assert.Equal(t, "bob", records["work"].SharedWith[0].Username)
}

func TestShareList_OnlyOwnerMayShare(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(ownedList("work", "alice"))
	_, err := uc.ShareList(context.Background(), "work", "mallory", "bob", domain.PermissionView)
	assert.ErrorIs(t, err, domain.ErrNotListOwner)
}

func TestShareList_OwnerCannotBeGrantee(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(ownedList("work", "alice"))
	_, err := uc.ShareList(context.Background(), "work", "alice", "alice", domain.PermissionEdit)
	assert.ErrorIs(t, err, domain.ErrShareWithOwner)
}

func TestShareList_DuplicateShareRejected(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(ownedList("work", "alice"))

	_, err := uc.ShareList(context.Background(), "work", "alice", "bob", domain.PermissionView)
	require.NoError(t, err)

	_, err = uc.ShareList(context.Background(), "work", "alice", "bob", domain.PermissionEdit)
	assert.ErrorIs(t, err, domain.ErrDuplicateShare)
}

func TestShareList_InvalidPermission(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(ownedList("work", "alice"))
	_, err := uc.ShareList(context.Background(), "work", "alice", "bob", "admin")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUnshareList_RemovesShareAndClearsState(t *testing.T) {
	t.Parallel()

	uc, state := newTestUseCase(ownedList("work", "alice"))

	_, err := uc.ShareList(context.Background(), "work", "alice", "bob", domain.PermissionView)
	require.NoError(t, err)

	updated, err := uc.UnshareList(context.Background(), "work", "alice", "bob")
	require.NoError(t, err)
	assert.Empty(t, updated.Shares)

	// Last share gone: the persisted record disappears entirely.
	assert.Nil(t, persistedShares(t, state))
}

func TestUnshareList_UnknownShare(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(ownedList("work", "alice"))
	_, err := uc.UnshareList(context.Background(), "work", "alice", "bob")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestDeleteList_OwnerOnlyAndDropsShares(t *testing.T) {
	t.Parallel()

	uc, state := newTestUseCase(ownedList("work", "alice"), ownedList("home", "alice"))

	_, err := uc.ShareList(context.Background(), "work", "alice", "bob", domain.PermissionEdit)
	require.NoError(t, err)
	_, err = uc.ShareList(context.Background(), "home", "alice", "carol", domain.PermissionView)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteList(context.Background(), "work", "mallory"), domain.ErrNotListOwner)

	require.NoError(t, uc.DeleteList(context.Background(), "work", "alice"))

	_, err = uc.GetList(context.Background(), "work")
	assert.ErrorIs(t, err, domain.ErrListNotFound)

	records := persistedShares(t, state)
	assert.NotContains(t, records, "work")
	assert.Contains(t, records, "home")
}

func TestLoadShares_MalformedStateCleared(t *testing.T) {
	t.Parallel()

	uc, state := newTestUseCase(ownedList("work", "alice"))
	require.NoError(t, state.Set(context.Background(), sharedListsKey, "not-json"))

	// Sharing still works: the malformed record is dropped, not fatal.
	_, err := uc.ShareList(context.Background(), "work", "alice", "bob", domain.PermissionView)
	require.NoError(t, err)

	records := persistedShares(t, state)
	require.Contains(t, records, "work")
}
