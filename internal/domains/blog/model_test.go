package blog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveStatus(t *testing.T) {
	tests := []struct {
		name      string
		role      Role
		isOwner   bool
		requested Status
		reason    string
		want      Status
		wantErr   error
	}{
		// Admin sets anything directly.
		{"admin draft", RoleAdmin, false, StatusDraft, "", StatusDraft, nil},
		{"admin pending", RoleAdmin, false, StatusPending, "", StatusPending, nil},
		{"admin publish", RoleAdmin, false, StatusPublished, "", StatusPublished, nil},
		{"admin reject with reason", RoleAdmin, false, StatusRejected, "needs citations", StatusRejected, nil},
		{"admin reject without reason", RoleAdmin, false, StatusRejected, "", "", ErrReasonRequired},
		{"admin reject blank reason", RoleAdmin, false, StatusRejected, "   ", "", ErrReasonRequired},

		// Owning author: draft/pending honored, publish/reject downgraded.
		{"author draft", RoleAuthor, true, StatusDraft, "", StatusDraft, nil},
		{"author pending", RoleAuthor, true, StatusPending, "", StatusPending, nil},
		{"author publish downgraded", RoleAuthor, true, StatusPublished, "", StatusPending, nil},
		{"author reject downgraded", RoleAuthor, true, StatusRejected, "spite", StatusPending, nil},

		// Non-owner, non-admin never passes.
		{"author not owner", RoleAuthor, false, StatusPending, "", "", ErrForbidden},
		{"reader not owner", RoleReader, false, StatusPublished, "", "", ErrForbidden},

		// Garbage status.
		{"invalid status", RoleAdmin, false, Status("archived"), "", "", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveStatus(tt.role, tt.isOwner, tt.requested, tt.reason)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyTransitionReasonInvariant(t *testing.T) {
	p := NewPost(uuid.New(), "Some Title", "body", nil, nil, "")

	// Entering rejected stores the reason.
	p.ApplyTransition(StatusRejected, "needs citations")
	require.NotNil(t, p.RejectionReason)
	assert.Equal(t, "needs citations", *p.RejectionReason)
	assert.Equal(t, StatusRejected, p.Status)

	// Leaving rejected clears it.
	p.ApplyTransition(StatusPending, "")
	assert.Nil(t, p.RejectionReason)
	assert.Equal(t, StatusPending, p.Status)
}

func TestApplyTransitionRefreshesUpdatedAt(t *testing.T) {
	p := NewPost(uuid.New(), "Some Title", "body", nil, nil, "")
	before := p.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	p.ApplyTransition(StatusPending, "")

	assert.True(t, p.UpdatedAt.After(before))
}

func TestApplyTransitionSetsPublishedAtOnce(t *testing.T) {
	p := NewPost(uuid.New(), "Some Title", "body", nil, nil, "")
	require.Nil(t, p.PublishedAt)

	p.ApplyTransition(StatusPublished, "")
	require.NotNil(t, p.PublishedAt)
	first := *p.PublishedAt

	p.ApplyTransition(StatusDraft, "")
	p.ApplyTransition(StatusPublished, "")
	assert.Equal(t, first, *p.PublishedAt)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Published ")
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, s)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewPostStartsInDraft(t *testing.T) {
	author := uuid.New()
	p := NewPost(author, "Contract Law: An Overview", "body", nil, []string{"contracts"}, "")

	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, author, p.AuthorID)
	assert.Equal(t, "contract-law-an-overview", p.Slug)
	assert.Nil(t, p.RejectionReason)
	assert.True(t, p.IsOwnedBy(author))
	assert.False(t, p.IsOwnedBy(uuid.New()))
}
