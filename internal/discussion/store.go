package discussion

import (
	"petlink/internal/models"
)

// ScopeKind selects which discussion area a flat post list belongs to.
type ScopeKind int

const (
	// ScopeReview: comment thread under a product review, nested up to
	// MaxCommentDepth.
	ScopeReview ScopeKind = iota
	// ScopeLog: comment thread under a pet log entry, same nesting rules.
	ScopeLog
	// ScopeThread: Q&A thread; question, answers, comments-on-answers.
	ScopeThread
)

// Scope identifies the owning content item a flat post list is keyed by.
type Scope struct {
	Kind ScopeKind
	ID   uint
}

// DeleteResult reports which delete branch was taken.
type DeleteResult int

const (
	// DeleteSoft: the post had children, so the row is retained with
	// is_deleted set; the view shows a tombstone in place of content.
	DeleteSoft DeleteResult = iota
	// DeleteHard: no children referenced the post, so the row is gone.
	DeleteHard
)

// Store is the persistence contract the lifecycle manager drives. Each
// mutating call is independently atomic; a failed call must leave the
// backing rows untouched. Posts are listed createdAt-ascending.
type Store interface {
	ListPosts(scope Scope) ([]models.Post, error)
	GetPost(id uint) (models.Post, error)
	GetThread(id uint) (models.Thread, error)
	ListThreads(logID uint) ([]models.Thread, error)

	CreatePost(post *models.Post) error
	// CreateThread persists the thread and its root question post together
	// or not at all.
	CreateThread(thread *models.Thread, question *models.Post) error
	UpdateContent(id uint, content string) error
	MarkDeleted(id uint) error
	DeletePost(id uint) error
	// DeleteThread removes the thread and every post that belongs to it.
	DeleteThread(id uint) error
	CountChildren(id uint) (int64, error)
	// SetAccepted clears is_accepted on every answer in the thread and sets
	// it on postID, as one atomic flip.
	SetAccepted(threadID, postID uint) error
	// AddVote records an upvote and bumps the post counter. Returns false
	// without error when the user already voted on this post.
	AddVote(postID, userID uint) (bool, error)
}

// CounterSink receives one increment per successful create, keyed by the
// owning content item. The displayed counter itself lives outside the
// discussion core.
type CounterSink interface {
	IncrementComments(scope Scope)
}

// AuthorLookup resolves display info for rendering only; authorization
// always compares raw user ids.
type AuthorLookup interface {
	DisplayName(userID uint) (name string, avatar string)
}
