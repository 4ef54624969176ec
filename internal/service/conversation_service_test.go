package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversationFixture(t *testing.T) (*ConversationService, *fakeUserRepo, *fakeConvRepo, *fakeNotifier) {
	t.Helper()
	users := newFakeUserRepo()
	convs := newFakeConvRepo(users)
	notifier := &fakeNotifier{}
	svc := NewConversationService(convs, users)
	svc.SetNotifier(notifier)
	return svc, users, convs, notifier
}

func TestSendMessageCreatesConversation(t *testing.T) {
	svc, users, _, notifier := newConversationFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")

	msg, err := svc.SendMessage(ctx, alice.ID, bob.ID, "hi")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, "hi", msg.Body)

	peers, err := svc.ListPeers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, peers, 1)
	assert.Equal(t, bob.ID, peers[0].PeerID)
	assert.Equal(t, "bob", peers[0].PeerUsername)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, [3]string{"alice", "bob", "hi"}, notifier.messages[0])
}

func TestSendMessageSwappedPairReusesConversation(t *testing.T) {
	svc, users, _, _ := newConversationFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")

	first, err := svc.SendMessage(ctx, alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	// Swapped argument order must land in the same conversation.
	second, err := svc.SendMessage(ctx, bob.ID, alice.ID, "yo")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	messages, err := svc.ListMessagesBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hi", messages[0].Body)
	assert.Equal(t, "yo", messages[1].Body)
}

func TestSendMessageConcurrentFreshPair(t *testing.T) {
	svc, users, convs, _ := newConversationFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			sender, receiver := alice.ID, bob.ID
			if i%2 == 1 {
				sender, receiver = receiver, sender
			}
			_, err := svc.SendMessage(ctx, sender, receiver, fmt.Sprintf("msg-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Exactly one conversation for the pair, holding every message.
	assert.Len(t, convs.byID, 1)
	messages, err := svc.ListMessagesBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, messages, n)
}

func TestSendMessageToSelf(t *testing.T) {
	svc, users, _, _ := newConversationFixture(t)
	alice := users.add("alice")

	_, err := svc.SendMessage(context.Background(), alice.ID, alice.ID, "hi me")
	assert.ErrorIs(t, err, ErrCannotMessageSelf)
}

func TestSendMessageUnknownUser(t *testing.T) {
	svc, users, _, _ := newConversationFixture(t)
	alice := users.add("alice")

	_, err := svc.SendMessage(context.Background(), alice.ID, 999, "hello?")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListMessagesBetweenNoConversation(t *testing.T) {
	svc, users, _, _ := newConversationFixture(t)
	alice := users.add("alice")
	bob := users.add("bob")

	messages, err := svc.ListMessagesBetween(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestListMessagesOrderPreserved(t *testing.T) {
	svc, users, _, _ := newConversationFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")

	for i := 0; i < 10; i++ {
		_, err := svc.SendMessage(ctx, alice.ID, bob.ID, fmt.Sprintf("msg-%d", i))
		require.NoError(t, err)
	}

	messages, err := svc.ListMessagesBetween(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 10)
	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), msg.Body)
	}
	for i := 1; i < len(messages); i++ {
		assert.Less(t, messages[i-1].ID, messages[i].ID)
	}
}

func TestListPeersOneEntryPerPeer(t *testing.T) {
	svc, users, _, _ := newConversationFixture(t)
	ctx := context.Background()

	alice := users.add("alice")
	bob := users.add("bob")
	carol := users.add("carol")

	_, err := svc.SendMessage(ctx, alice.ID, bob.ID, "hi bob")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, bob.ID, alice.ID, "hi alice")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, carol.ID, alice.ID, "hi from carol")
	require.NoError(t, err)

	peers, err := svc.ListPeers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, peers, 2)

	seen := map[int64]bool{}
	for _, p := range peers {
		seen[p.PeerID] = true
	}
	assert.True(t, seen[bob.ID])
	assert.True(t, seen[carol.ID])
}
