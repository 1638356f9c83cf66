package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalblog-backend/internal/domains/comment"
)

// =====================================================
// IN-MEMORY DOUBLES
// =====================================================

type memoryCommentRepository struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*comment.Comment
}

func newMemoryCommentRepository() *memoryCommentRepository {
	return &memoryCommentRepository{comments: make(map[uuid.UUID]*comment.Comment)}
}

func (r *memoryCommentRepository) Create(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *memoryCommentRepository) GetByID(_ context.Context, id uuid.UUID) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, comment.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memoryCommentRepository) ListByPost(_ context.Context, postID uuid.UUID, page, limit int) ([]*comment.Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*comment.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			clone := *c
			matched = append(matched, &clone)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	offset := (page - 1) * limit
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *memoryCommentRepository) Update(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[c.ID]; !ok {
		return comment.ErrCommentNotFound
	}
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *memoryCommentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return comment.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *memoryCommentRepository) DeleteByPost(_ context.Context, postID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

type stubPostDirectory struct {
	published map[uuid.UUID]bool
}

func (d *stubPostDirectory) IsPublished(_ context.Context, postID uuid.UUID) (bool, error) {
	return d.published[postID], nil
}

type stubAccountDirectory struct {
	accounts map[uuid.UUID]*comment.Actor
}

func (d *stubAccountDirectory) ResolveAccount(_ context.Context, id uuid.UUID) (*comment.Actor, error) {
	actor, ok := d.accounts[id]
	if !ok {
		return nil, comment.ErrForbidden
	}
	return actor, nil
}

// =====================================================
// FIXTURE
// =====================================================

type commentFixture struct {
	repo    *memoryCommentRepository
	posts   *stubPostDirectory
	service comment.Service

	publishedPost uuid.UUID
	draftPost     uuid.UUID
	reader        uuid.UUID
	otherReader   uuid.UUID
	admin         uuid.UUID
	blocked       uuid.UUID
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		repo:          newMemoryCommentRepository(),
		publishedPost: uuid.New(),
		draftPost:     uuid.New(),
		reader:        uuid.New(),
		otherReader:   uuid.New(),
		admin:         uuid.New(),
		blocked:       uuid.New(),
	}

	f.posts = &stubPostDirectory{published: map[uuid.UUID]bool{
		f.publishedPost: true,
		f.draftPost:     false,
	}}

	accounts := &stubAccountDirectory{accounts: map[uuid.UUID]*comment.Actor{
		f.reader:      {ID: f.reader},
		f.otherReader: {ID: f.otherReader},
		f.admin:       {ID: f.admin, IsAdmin: true},
		f.blocked:     {ID: f.blocked, IsBlocked: true},
	}}

	f.service = NewCommentService(f.repo, f.posts, accounts)
	return f
}

// =====================================================
// TESTS
// =====================================================

func TestCreateCommentOnPublishedPost(t *testing.T) {
	f := newCommentFixture()

	c, err := f.service.Create(context.Background(), f.publishedPost, f.reader, comment.CreateCommentRequest{Content: "great analysis"})
	require.NoError(t, err)

	assert.Equal(t, f.publishedPost, c.PostID)
	assert.Equal(t, f.reader, c.AuthorID)
}

func TestCreateCommentOnDraftLooksLikeMissingPost(t *testing.T) {
	f := newCommentFixture()

	_, err := f.service.Create(context.Background(), f.draftPost, f.reader, comment.CreateCommentRequest{Content: "sneaky"})
	assert.ErrorIs(t, err, comment.ErrPostNotFound)
}

func TestCreateCommentBlockedAccount(t *testing.T) {
	f := newCommentFixture()

	_, err := f.service.Create(context.Background(), f.publishedPost, f.blocked, comment.CreateCommentRequest{Content: "nope"})
	assert.ErrorIs(t, err, comment.ErrAccountBlocked)
}

func TestListCommentsOldestFirstWithTotal(t *testing.T) {
	f := newCommentFixture()

	for i := 0; i < 5; i++ {
		_, err := f.service.Create(context.Background(), f.publishedPost, f.reader, comment.CreateCommentRequest{Content: "comment"})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	comments, total, err := f.service.ListByPost(context.Background(), f.publishedPost, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, comments, 3)
	assert.True(t, comments[0].CreatedAt.Before(comments[2].CreatedAt))
}

func TestUpdateCommentWithinWindow(t *testing.T) {
	f := newCommentFixture()

	c, err := f.service.Create(context.Background(), f.publishedPost, f.reader, comment.CreateCommentRequest{Content: "typo"})
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), c.ID, f.reader, comment.UpdateCommentRequest{Content: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", updated.Content)
}

func TestUpdateCommentAfterWindowCloses(t *testing.T) {
	f := newCommentFixture()

	c, err := f.service.Create(context.Background(), f.publishedPost, f.reader, comment.CreateCommentRequest{Content: "old"})
	require.NoError(t, err)

	stale := f.repo.comments[c.ID]
	stale.CreatedAt = time.Now().Add(-comment.EditWindow - time.Minute)

	_, err = f.service.Update(context.Background(), c.ID, f.reader, comment.UpdateCommentRequest{Content: "too late"})
	assert.ErrorIs(t, err, comment.ErrEditWindowClosed)
}

func TestAdminCannotEditOthersComment(t *testing.T) {
	f := newCommentFixture()

	c, err := f.service.Create(context.Background(), f.publishedPost, f.reader, comment.CreateCommentRequest{Content: "mine"})
	require.NoError(t, err)

	_, err = f.service.Update(context.Background(), c.ID, f.admin, comment.UpdateCommentRequest{Content: "admin rewrite"})
	assert.ErrorIs(t, err, comment.ErrForbidden)
}

func TestDeleteCommentOwnerAndAdmin(t *testing.T) {
	f := newCommentFixture()

	mine, err := f.service.Create(context.Background(), f.publishedPost, f.reader, comment.CreateCommentRequest{Content: "a"})
	require.NoError(t, err)
	other, err := f.service.Create(context.Background(), f.publishedPost, f.otherReader, comment.CreateCommentRequest{Content: "b"})
	require.NoError(t, err)

	// Non-owner, non-admin is rejected.
	err = f.service.Delete(context.Background(), other.ID, f.reader)
	assert.ErrorIs(t, err, comment.ErrForbidden)

	// Owner may delete their own; admin may delete anyone's.
	assert.NoError(t, f.service.Delete(context.Background(), mine.ID, f.reader))
	assert.NoError(t, f.service.Delete(context.Background(), other.ID, f.admin))
}
