package discussion

import (
	"time"

	"petlink/internal/models"
)

// DeletedPlaceholder is shown in place of a soft-deleted post's content.
// The stored content is never altered; substitution happens here, at
// render time.
const DeletedPlaceholder = "This post has been deleted."

// PostView is the shape the discussion panel consumes: one post with its
// author display info, render flags, and ordered children.
type PostView struct {
	ID         uint            `json:"id"`
	Pid        string          `json:"pid"`
	Kind       models.PostKind `json:"kind"`
	AuthorID   uint            `json:"author_id"`
	Author     string          `json:"author"`
	Avatar     string          `json:"avatar"`
	Content    string          `json:"content"`
	IsDeleted  bool            `json:"is_deleted"`
	IsAccepted bool            `json:"is_accepted"`
	Upvotes    int             `json:"upvotes"`
	CreatedAt  time.Time       `json:"created_at"`
	Depth      int             `json:"depth"`
	CanReply   bool            `json:"can_reply"`
	Children   []*PostView     `json:"children"`
}

// RenderTree turns the flat post list into the view tree: tombstones for
// deleted posts, reply affordances gated by depth (or by kind in Q&A
// threads), and the accepted answer surfaced first among its siblings.
// Posts deeper than the depth limit still render; only the affordance is
// disabled.
func RenderTree(posts []models.Post, scope ScopeKind, lookup AuthorLookup) []*PostView {
	roots := Build(posts)
	views := make([]*PostView, 0, len(roots))
	for _, r := range roots {
		views = append(views, renderNode(r, scope, lookup))
	}
	return views
}

func renderNode(n *Node, scope ScopeKind, lookup AuthorLookup) *PostView {
	v := &PostView{
		ID:         n.Post.ID,
		Pid:        n.Post.Pid,
		Kind:       n.Post.Kind,
		AuthorID:   n.Post.UserID,
		Content:    n.Post.Content,
		IsDeleted:  n.Post.IsDeleted,
		IsAccepted: n.Post.IsAccepted,
		Upvotes:    n.Post.Upvotes,
		CreatedAt:  n.Post.CreatedAt,
		Depth:      n.Depth,
		CanReply:   canReply(n, scope),
	}
	if lookup != nil {
		v.Author, v.Avatar = lookup.DisplayName(n.Post.UserID)
	} else {
		v.Author, v.Avatar = n.Post.User.Username, n.Post.User.Avatar
	}
	if v.IsDeleted {
		v.Content = DeletedPlaceholder
	}

	children := n.Children
	if n.Post.Kind == models.KindQuestion {
		children = acceptedFirst(children)
	}
	for _, c := range children {
		v.Children = append(v.Children, renderNode(c, scope, lookup))
	}
	return v
}

func canReply(n *Node, scope ScopeKind) bool {
	if scope == ScopeThread {
		// question takes answers, answers take comments, comments are leaves
		return n.Post.Kind != models.KindComment
	}
	return n.Depth+1 < MaxCommentDepth
}

// acceptedFirst reorders the question's answers so the accepted one leads;
// the rest keep chronological order. The input slice is left alone.
func acceptedFirst(answers []*Node) []*Node {
	idx := -1
	for i, a := range answers {
		if a.Post.IsAccepted {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return answers
	}
	out := make([]*Node, 0, len(answers))
	out = append(out, answers[idx])
	out = append(out, answers[:idx]...)
	out = append(out, answers[idx+1:]...)
	return out
}
