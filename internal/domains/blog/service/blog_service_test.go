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

	"legalblog-backend/internal/domains/blog"
)

// =====================================================
// IN-MEMORY DOUBLES
// =====================================================

// memoryRepository is a map-backed blog.Repository. Listing delegates to
// blog.MatchesFilter so the tests exercise the same predicate the real
// repository mirrors in SQL.
type memoryRepository struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*blog.Post
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{posts: make(map[uuid.UUID]*blog.Post)}
}

func (r *memoryRepository) Create(_ context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.posts {
		if existing.Slug == post.Slug {
			return blog.ErrDuplicateSlug
		}
	}

	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, blog.ErrPostNotFound
	}
	clone := *post
	return &clone, nil
}

func (r *memoryRepository) GetBySlug(_ context.Context, slug string) (*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, post := range r.posts {
		if post.Slug == slug {
			clone := *post
			return &clone, nil
		}
	}
	return nil, blog.ErrPostNotFound
}

func (r *memoryRepository) Update(_ context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return blog.ErrPostNotFound
	}
	for _, existing := range r.posts {
		if existing.ID != post.ID && existing.Slug == post.Slug {
			return blog.ErrDuplicateSlug
		}
	}

	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return blog.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryRepository) List(_ context.Context, viewer blog.Viewer, filter blog.Filter, page, limit int) ([]*blog.Post, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*blog.Post
	for _, post := range r.posts {
		if blog.MatchesFilter(post, viewer, filter) {
			clone := *post
			matched = append(matched, &clone)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
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

func (r *memoryRepository) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return blog.ErrPostNotFound
	}
	post.ViewCount++
	return nil
}

// memoryDirectory is a fixed set of accounts.
type memoryDirectory struct {
	accounts map[uuid.UUID]*blog.Actor
}

func (d *memoryDirectory) ResolveAccount(_ context.Context, id uuid.UUID) (*blog.Actor, error) {
	actor, ok := d.accounts[id]
	if !ok {
		return nil, blog.ErrForbidden
	}
	return actor, nil
}

// recordingNotifier captures every notification.
type recordingNotifier struct {
	mu     sync.Mutex
	events []blog.Status
}

func (n *recordingNotifier) NotifyStatusChanged(_ context.Context, _ *blog.Post, newStatus blog.Status, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, newStatus)
	return nil
}

type recordingCleaner struct {
	prefixes []string
}

func (c *recordingCleaner) DeleteByPrefix(_ context.Context, prefix string) error {
	c.prefixes = append(c.prefixes, prefix)
	return nil
}

// =====================================================
// FIXTURE
// =====================================================

type fixture struct {
	repo     *memoryRepository
	notifier *recordingNotifier
	cleaner  *recordingCleaner
	service  blog.Service

	reader  uuid.UUID
	author  uuid.UUID
	author2 uuid.UUID
	admin   uuid.UUID
	blocked uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newMemoryRepository(),
		notifier: &recordingNotifier{},
		cleaner:  &recordingCleaner{},
		reader:   uuid.New(),
		author:   uuid.New(),
		author2:  uuid.New(),
		admin:    uuid.New(),
		blocked:  uuid.New(),
	}

	directory := &memoryDirectory{accounts: map[uuid.UUID]*blog.Actor{
		f.reader:  {ID: f.reader, Role: blog.RoleReader},
		f.author:  {ID: f.author, Role: blog.RoleAuthor},
		f.author2: {ID: f.author2, Role: blog.RoleAuthor},
		f.admin:   {ID: f.admin, Role: blog.RoleAdmin},
		f.blocked: {ID: f.blocked, Role: blog.RoleAuthor, IsBlocked: true},
	}}

	f.service = NewBlogService(f.repo, directory, f.notifier, f.cleaner)
	return f
}

func (f *fixture) createDraft(t *testing.T, title string) *blog.Post {
	t.Helper()
	post, err := f.service.Create(context.Background(), f.author, blog.CreatePostRequest{
		Title:   title,
		Content: "content of " + title,
	})
	require.NoError(t, err)
	return post
}

// =====================================================
// CREATE
// =====================================================

func TestCreateStartsInDraft(t *testing.T) {
	f := newFixture()

	post, err := f.service.Create(context.Background(), f.author, blog.CreatePostRequest{
		Title:   "Contract Law Basics",
		Content: "body",
		Status:  "published", // ignored for non-admins
	})
	require.NoError(t, err)

	assert.Equal(t, blog.StatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "contract-law-basics", post.Slug)
}

func TestCreateByReaderForbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), f.reader, blog.CreatePostRequest{
		Title:   "Not Allowed",
		Content: "body",
	})
	assert.ErrorIs(t, err, blog.ErrForbidden)
}

func TestCreateByBlockedAuthorFails(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), f.blocked, blog.CreatePostRequest{
		Title:   "Blocked",
		Content: "body",
	})
	assert.ErrorIs(t, err, blog.ErrAccountBlocked)
}

func TestAdminCreateWithInitialStatus(t *testing.T) {
	f := newFixture()

	post, err := f.service.Create(context.Background(), f.admin, blog.CreatePostRequest{
		Title:   "Announcement",
		Content: "body",
		Status:  "published",
	})
	require.NoError(t, err)

	assert.Equal(t, blog.StatusPublished, post.Status)
	require.NotNil(t, post.PublishedAt)
}

func TestCreateDuplicateSlugGetsSuffix(t *testing.T) {
	f := newFixture()

	first := f.createDraft(t, "Same Title")
	second := f.createDraft(t, "Same Title")

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-"+second.ID.String()[:8], second.Slug)
}

// =====================================================
// TRANSITIONS
// =====================================================

func TestAuthorPublishRequestDowngradedToPending(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Submit Me")

	updated, err := f.service.RequestTransition(context.Background(), post.ID, f.author, blog.TransitionRequest{Status: "published"})
	require.NoError(t, err)

	assert.Equal(t, blog.StatusPending, updated.Status)
	assert.Nil(t, updated.PublishedAt)
	assert.Equal(t, []blog.Status{blog.StatusPending}, f.notifier.events)
}

func TestAdminRejectRequiresReason(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Needs Review")

	_, err := f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "rejected"})
	assert.ErrorIs(t, err, blog.ErrReasonRequired)

	_, err = f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "rejected", Reason: "   "})
	assert.ErrorIs(t, err, blog.ErrReasonRequired)

	// Nothing changed, nothing notified.
	stored, err := f.repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.StatusDraft, stored.Status)
	assert.Empty(t, f.notifier.events)
}

func TestAdminRejectThenAuthorResubmitClearsReason(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Round Trip")

	_, err := f.service.RequestTransition(context.Background(), post.ID, f.author, blog.TransitionRequest{Status: "pending"})
	require.NoError(t, err)

	rejected, err := f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "rejected", Reason: "too thin"})
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "too thin", *rejected.RejectionReason)

	resubmitted, err := f.service.RequestTransition(context.Background(), post.ID, f.author, blog.TransitionRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, blog.StatusPending, resubmitted.Status)
	assert.Nil(t, resubmitted.RejectionReason)
}

func TestAdminPublishSetsPublishedAtOnce(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Publish Twice")

	published, err := f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "published"})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublish := *published.PublishedAt

	_, err = f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "draft"})
	require.NoError(t, err)

	again, err := f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "published"})
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.Equal(t, firstPublish, *again.PublishedAt)
}

func TestTransitionByNonOwnerForbidden(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Someone Elses")

	_, err := f.service.RequestTransition(context.Background(), post.ID, f.author2, blog.TransitionRequest{Status: "pending"})
	assert.ErrorIs(t, err, blog.ErrForbidden)
}

func TestTransitionByBlockedOwnerFails(t *testing.T) {
	f := newFixture()

	post := blog.NewPost(f.blocked, "Blocked Owner", "body", nil, nil, "")
	require.NoError(t, f.repo.Create(context.Background(), post))

	// Blocked beats ownership: the guard reports the block, not forbidden.
	_, err := f.service.RequestTransition(context.Background(), post.ID, f.blocked, blog.TransitionRequest{Status: "pending"})
	assert.ErrorIs(t, err, blog.ErrAccountBlocked)

	stored, err := f.repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.StatusDraft, stored.Status)
}

func TestTransitionInvalidStatus(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Bad Status")

	_, err := f.service.RequestTransition(context.Background(), post.ID, f.author, blog.TransitionRequest{Status: "archived"})
	assert.ErrorIs(t, err, blog.ErrInvalidStatus)
}

// =====================================================
// CONTENT EDIT
// =====================================================

func TestUpdateContentKeepsStatus(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Old Title")

	_, err := f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "published"})
	require.NoError(t, err)

	updated, err := f.service.UpdateContent(context.Background(), post.ID, f.author, blog.UpdatePostRequest{
		Title:   "New Title",
		Content: "new body",
	})
	require.NoError(t, err)

	assert.Equal(t, blog.StatusPublished, updated.Status)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, "new body", updated.Content)
}

func TestUpdateContentPreservesRejectionReason(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Rejected Edit")

	_, err := f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "rejected", Reason: "cites no sources"})
	require.NoError(t, err)

	updated, err := f.service.UpdateContent(context.Background(), post.ID, f.author, blog.UpdatePostRequest{
		Title:   "Rejected Edit v2",
		Content: "now with sources",
	})
	require.NoError(t, err)

	assert.Equal(t, blog.StatusRejected, updated.Status)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "cites no sources", *updated.RejectionReason)
}

// =====================================================
// DELETE
// =====================================================

func TestDeleteCleansUpMedia(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Delete Me")

	require.NoError(t, f.service.Delete(context.Background(), post.ID, f.author))

	_, err := f.repo.GetByID(context.Background(), post.ID)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
	assert.Equal(t, []string{"posts/" + post.ID.String() + "/"}, f.cleaner.prefixes)
}

func TestDeleteByAdminOfForeignPost(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Admin Deletes")

	assert.NoError(t, f.service.Delete(context.Background(), post.ID, f.admin))
}

func TestDeleteByOtherAuthorForbidden(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Hands Off")

	err := f.service.Delete(context.Background(), post.ID, f.author2)
	assert.ErrorIs(t, err, blog.ErrForbidden)
}

// =====================================================
// READS
// =====================================================

func TestGetByIDHidesDraftsFromReaders(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "Invisible Draft")

	// Reader and anonymous see not-found, not forbidden.
	_, err := f.service.GetByID(context.Background(), blog.Viewer{ID: f.reader, Role: blog.RoleReader}, post.ID)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)

	_, err = f.service.GetByID(context.Background(), blog.Viewer{}, post.ID)
	assert.ErrorIs(t, err, blog.ErrPostNotFound)

	// Owner and admin see it.
	_, err = f.service.GetByID(context.Background(), blog.Viewer{ID: f.author, Role: blog.RoleAuthor}, post.ID)
	assert.NoError(t, err)
	_, err = f.service.GetByID(context.Background(), blog.Viewer{ID: f.admin, Role: blog.RoleAdmin}, post.ID)
	assert.NoError(t, err)
}

func TestGetBySlugCountsViewsOnPublishedOnly(t *testing.T) {
	f := newFixture()
	post := f.createDraft(t, "View Counted")

	_, err := f.service.RequestTransition(context.Background(), post.ID, f.admin, blog.TransitionRequest{Status: "published"})
	require.NoError(t, err)

	got, err := f.service.GetBySlug(context.Background(), blog.Viewer{}, "view-counted")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	got, err = f.service.GetBySlug(context.Background(), blog.Viewer{}, "view-counted")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)

	// Drafts viewed by their owner do not count.
	draft := f.createDraft(t, "Uncounted Draft")
	got, err = f.service.GetBySlug(context.Background(), blog.Viewer{ID: f.author, Role: blog.RoleAuthor}, draft.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.ViewCount)
}

// =====================================================
// LISTING
// =====================================================

func seedListingFixture(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)

	// 18 published by author, plus a draft, a pending and a rejected post
	// that readers must never see.
	for i := 0; i < 18; i++ {
		post := blog.NewPost(f.author, "Published Post", "body", nil, nil, "")
		post.Slug = post.Slug + "-" + post.ID.String()[:8]
		post.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		post.ApplyTransition(blog.StatusPublished, "")
		require.NoError(t, f.repo.Create(ctx, post))
	}

	hidden := []blog.Status{blog.StatusDraft, blog.StatusPending, blog.StatusRejected}
	for _, status := range hidden {
		post := blog.NewPost(f.author, "Hidden "+string(status), "body", nil, nil, "")
		if status != blog.StatusDraft {
			post.ApplyTransition(status, "reason")
		}
		require.NoError(t, f.repo.Create(ctx, post))
	}
}

func TestListTotalCountIndependentOfPage(t *testing.T) {
	f := newFixture()
	seedListingFixture(t, f)

	reader := blog.Viewer{ID: f.reader, Role: blog.RoleReader}

	page1, total, err := f.service.List(context.Background(), reader, blog.Filter{}, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, 18, total)
	assert.Len(t, page1, 9)

	page2, total, err := f.service.List(context.Background(), reader, blog.Filter{}, 2, 9)
	require.NoError(t, err)
	assert.Equal(t, 18, total)
	assert.Len(t, page2, 9)

	page3, total, err := f.service.List(context.Background(), reader, blog.Filter{}, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, 18, total)
	assert.Empty(t, page3)

	// No overlap between pages, newest first.
	seen := make(map[uuid.UUID]bool)
	for _, p := range append(page1, page2...) {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
		assert.Equal(t, blog.StatusPublished, p.Status)
	}
}

func TestListReaderNeverSeesUnpublished(t *testing.T) {
	f := newFixture()
	seedListingFixture(t, f)

	reader := blog.Viewer{ID: f.reader, Role: blog.RoleReader}
	draft := blog.StatusDraft

	filters := []blog.Filter{
		{},
		{Status: &draft},
		{AuthorID: &f.author},
		{SearchText: "hidden"},
		{MineOnly: true},
	}

	for _, filter := range filters {
		posts, _, err := f.service.List(context.Background(), reader, filter, 1, 100)
		require.NoError(t, err)
		for _, p := range posts {
			assert.Equal(t, blog.StatusPublished, p.Status)
		}
	}
}

func TestListAuthorSeesOwnDrafts(t *testing.T) {
	f := newFixture()
	seedListingFixture(t, f)

	author := blog.Viewer{ID: f.author, Role: blog.RoleAuthor}

	_, total, err := f.service.List(context.Background(), author, blog.Filter{}, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 21, total)

	// Another author only sees the published ones.
	other := blog.Viewer{ID: f.author2, Role: blog.RoleAuthor}
	_, total, err = f.service.List(context.Background(), other, blog.Filter{}, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 18, total)
}

func TestListAdminSeesEverything(t *testing.T) {
	f := newFixture()
	seedListingFixture(t, f)

	admin := blog.Viewer{ID: f.admin, Role: blog.RoleAdmin}
	pending := blog.StatusPending

	_, total, err := f.service.List(context.Background(), admin, blog.Filter{}, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 21, total)

	posts, total, err := f.service.List(context.Background(), admin, blog.Filter{Status: &pending}, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, blog.StatusPending, posts[0].Status)
}

func TestListNormalizesPagination(t *testing.T) {
	f := newFixture()
	seedListingFixture(t, f)

	reader := blog.Viewer{ID: f.reader, Role: blog.RoleReader}

	// Page 0 and limit 0 fall back to defaults.
	posts, total, err := f.service.List(context.Background(), reader, blog.Filter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 18, total)
	assert.Len(t, posts, 10)
}
