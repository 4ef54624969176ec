package service

import (
	"context"
	"sync"
	"time"

	"github.com/rplocha4/social-media-backend/internal/domain"
)

// In-memory repository fakes. The conversation fake mirrors the production
// upsert: find-or-create is a single operation under one lock, keyed on the
// canonicalized pair, so concurrent callers always converge on one id.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) add(username string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u := &domain.User{
		ID:        r.nextID,
		Email:     username + "@example.com",
		Username:  username,
		CreatedAt: time.Now(),
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeConvRepo struct {
	mu         sync.Mutex
	users      *fakeUserRepo
	nextConvID int64
	nextMsgID  int64
	convs      map[[2]int64]*domain.Conversation
	byID       map[int64]*domain.Conversation
	messages   map[int64][]domain.Message
}

func newFakeConvRepo(users *fakeUserRepo) *fakeConvRepo {
	return &fakeConvRepo{
		users:    users,
		convs:    make(map[[2]int64]*domain.Conversation),
		byID:     make(map[int64]*domain.Conversation),
		messages: make(map[int64][]domain.Message),
	}
}

func pairKey(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

func (r *fakeConvRepo) FindOrCreate(_ context.Context, userA, userB int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(userA, userB)
	if conv, ok := r.convs[key]; ok {
		return conv.ID, nil
	}
	r.nextConvID++
	conv := &domain.Conversation{
		ID:        r.nextConvID,
		UserA:     key[0],
		UserB:     key[1],
		CreatedAt: time.Now(),
	}
	r.convs[key] = conv
	r.byID[conv.ID] = conv
	return conv.ID, nil
}

func (r *fakeConvRepo) GetByID(_ context.Context, id int64) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conv, ok := r.byID[id]; ok {
		cp := *conv
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeConvRepo) GetByUsers(_ context.Context, userA, userB int64) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conv, ok := r.convs[pairKey(userA, userB)]; ok {
		cp := *conv
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeConvRepo) ListPeers(_ context.Context, userID int64) ([]domain.ConversationPeer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[int64]bool)
	var peers []domain.ConversationPeer
	for _, conv := range r.byID {
		var peerID int64
		switch userID {
		case conv.UserA:
			peerID = conv.UserB
		case conv.UserB:
			peerID = conv.UserA
		default:
			continue
		}
		if seen[peerID] {
			continue
		}
		seen[peerID] = true
		p := domain.ConversationPeer{ConversationID: conv.ID, PeerID: peerID}
		if u, ok := r.users.users[peerID]; ok {
			p.PeerUsername = u.Username
		}
		peers = append(peers, p)
	}
	return peers, nil
}

func (r *fakeConvRepo) AppendMessage(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextMsgID++
	msg.ID = r.nextMsgID
	msg.CreatedAt = time.Now()
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], *msg)
	return nil
}

func (r *fakeConvRepo) ListMessages(_ context.Context, conversationID int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, len(r.messages[conversationID]))
	copy(out, r.messages[conversationID])
	return out, nil
}

type fakeFollowRepo struct {
	mu    sync.Mutex
	edges map[[2]int64]time.Time // [follower, followed], ordered
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[[2]int64]time.Time)}
}

func (r *fakeFollowRepo) Create(_ context.Context, followerID, followedID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{followerID, followedID}
	if _, ok := r.edges[key]; !ok {
		r.edges[key] = time.Now()
	}
	return nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, followerID, followedID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.edges, [2]int64{followerID, followedID})
	return nil
}

func (r *fakeFollowRepo) Exists(_ context.Context, followerID, followedID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.edges[[2]int64{followerID, followedID}]
	return ok, nil
}

func (r *fakeFollowRepo) ListFollowing(_ context.Context, followerID int64) ([]domain.FollowEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FollowEdge
	for key, created := range r.edges {
		if key[0] == followerID {
			out = append(out, domain.FollowEdge{FollowerID: key[0], FollowedID: key[1], CreatedAt: created})
		}
	}
	return out, nil
}

type fakePostRepo struct {
	mu       sync.Mutex
	users    *fakeUserRepo
	follows  *fakeFollowRepo
	nextID   int64
	posts    []domain.Post
	likes    map[[2]int64]time.Time // [post, user]
	comments map[int64][]domain.Comment
}

func newFakePostRepo(users *fakeUserRepo, follows *fakeFollowRepo) *fakePostRepo {
	return &fakePostRepo{
		users:    users,
		follows:  follows,
		likes:    make(map[[2]int64]time.Time),
		comments: make(map[int64][]domain.Comment),
	}
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	r.posts = append(r.posts, *post)
	return nil
}

// annotate derives counts the way the production SQL does: live, at read
// time.
func (r *fakePostRepo) annotate(post domain.Post, viewerID int64) domain.AnnotatedPost {
	ap := domain.AnnotatedPost{Post: post}
	if u, ok := r.users.users[post.AuthorID]; ok {
		ap.AuthorUsername = u.Username
	}
	for key := range r.likes {
		if key[0] == post.ID {
			ap.LikeCount++
			if key[1] == viewerID {
				ap.LikedByViewer = true
			}
		}
	}
	ap.CommentCount = len(r.comments[post.ID])
	return ap
}

func (r *fakePostRepo) GetAnnotatedByID(_ context.Context, id, viewerID int64) (*domain.AnnotatedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			ap := r.annotate(p, viewerID)
			return &ap, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) ListFeed(_ context.Context, viewerID int64) ([]domain.AnnotatedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AnnotatedPost
	for i := len(r.posts) - 1; i >= 0; i-- {
		p := r.posts[i]
		followed, _ := r.follows.Exists(context.Background(), viewerID, p.AuthorID)
		if p.AuthorID == viewerID || followed {
			out = append(out, r.annotate(p, viewerID))
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListByAuthor(_ context.Context, authorID, viewerID int64) ([]domain.AnnotatedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AnnotatedPost
	for i := len(r.posts) - 1; i >= 0; i-- {
		if r.posts[i].AuthorID == authorID {
			out = append(out, r.annotate(r.posts[i], viewerID))
		}
	}
	return out, nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{postID, userID}
	if _, ok := r.likes[key]; !ok {
		r.likes[key] = time.Now()
	}
	return nil
}

func (r *fakePostRepo) ListLikes(_ context.Context, postID int64) ([]domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Like
	for key, created := range r.likes {
		if key[0] == postID {
			out = append(out, domain.Like{PostID: key[0], UserID: key[1], CreatedAt: created})
		}
	}
	return out, nil
}

func (r *fakePostRepo) AddComment(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	comment.CreatedAt = time.Now()
	r.comments[comment.PostID] = append(r.comments[comment.PostID], *comment)
	return nil
}

func (r *fakePostRepo) ListComments(_ context.Context, postID int64) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Comment, len(r.comments[postID]))
	copy(out, r.comments[postID])
	return out, nil
}

// fakeNotifier records every notification it receives.
type fakeNotifier struct {
	mu       sync.Mutex
	messages [][3]string // sender, receiver, body
	likes    [][2]string // actor, subjectAuthor
	comments [][2]string
	follows  [][2]string
}

func (n *fakeNotifier) NotifyMessage(sender, receiver, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, [3]string{sender, receiver, body})
}

func (n *fakeNotifier) NotifyLike(actor, subjectAuthor string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.likes = append(n.likes, [2]string{actor, subjectAuthor})
}

func (n *fakeNotifier) NotifyComment(actor, subjectAuthor string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.comments = append(n.comments, [2]string{actor, subjectAuthor})
}

func (n *fakeNotifier) NotifyFollow(actor, followed string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.follows = append(n.follows, [2]string{actor, followed})
}
