package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowFixture(t *testing.T) (*FollowService, *fakeUserRepo, *fakeNotifier) {
	t.Helper()
	users := newFakeUserRepo()
	notifier := &fakeNotifier{}
	svc := NewFollowService(newFakeFollowRepo(), users)
	svc.SetNotifier(notifier)
	return svc, users, notifier
}

func TestFollowNotifiesFollowedUser(t *testing.T) {
	svc, users, notifier := newFollowFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	require.Len(t, notifier.follows, 1)
	assert.Equal(t, [2]string{"alice", "bob"}, notifier.follows[0])

	following, err := svc.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].FollowedID)
}

func TestFollowSelf(t *testing.T) {
	svc, users, _ := newFollowFixture(t)
	alice := users.add("alice")

	err := svc.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrCannotFollowSelf)
}

func TestFollowUnknownUser(t *testing.T) {
	svc, users, _ := newFollowFixture(t)
	alice := users.add("alice")

	err := svc.Follow(context.Background(), alice.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowTwiceIsNoop(t *testing.T) {
	svc, users, _ := newFollowFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	following, err := svc.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, following, 1)
}

func TestUnfollow(t *testing.T) {
	svc, users, _ := newFollowFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	following, err := svc.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	// Unfollowing again is harmless.
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
}
