package discussion

import (
	"strings"

	"petlink/internal/models"
	"petlink/internal/utils"
)

// Service is the lifecycle manager: the single place where discussion
// invariants are enforced. Every operation takes the acting user id
// explicitly; an actor id of zero means "not logged in" and short-circuits
// with ErrAuthRequired before any store call.
type Service struct {
	store    Store
	counters CounterSink
}

func NewService(store Store, counters CounterSink) *Service {
	return &Service{store: store, counters: counters}
}

// CreateInput carries a comment creation: the owning scope, the raw
// content, the acting user, and an optional parent post.
type CreateInput struct {
	Scope    Scope
	Content  string
	AuthorID uint
	ParentID *uint
}

// Posts returns the flat, createdAt-ascending post list for a scope.
func (s *Service) Posts(scope Scope) ([]models.Post, error) {
	posts, err := s.store.ListPosts(scope)
	if err != nil {
		return nil, storeErr("list posts", err)
	}
	return posts, nil
}

// Threads returns the Q&A threads attached to a pet log.
func (s *Service) Threads(logID uint) ([]models.Thread, error) {
	threads, err := s.store.ListThreads(logID)
	if err != nil {
		return nil, storeErr("list threads", err)
	}
	return threads, nil
}

func (s *Service) Thread(id uint) (models.Thread, error) {
	thread, err := s.store.GetThread(id)
	if err != nil {
		return models.Thread{}, ErrNotFound
	}
	return thread, nil
}

// CreateComment adds a comment to a review/log comment thread, or a
// comment-on-answer in a Q&A thread.
func (s *Service) CreateComment(in CreateInput) (models.Post, error) {
	if in.AuthorID == 0 {
		return models.Post{}, ErrAuthRequired
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return models.Post{}, ErrValidation
	}

	post := models.Post{
		Pid:     utils.RandStringBytesMaskImpr(8),
		UserID:  in.AuthorID,
		Kind:    models.KindComment,
		Content: content,
	}
	if in.ParentID != nil {
		// Copy the value; the stored row must not alias caller memory.
		parentID := *in.ParentID
		post.ParentID = &parentID
	}
	switch in.Scope.Kind {
	case ScopeReview:
		post.ReviewID = &in.Scope.ID
	case ScopeLog:
		post.LogID = &in.Scope.ID
	case ScopeThread:
		post.ThreadID = &in.Scope.ID
	}

	if err := s.checkParent(in, &post); err != nil {
		return models.Post{}, err
	}

	if err := s.store.CreatePost(&post); err != nil {
		return models.Post{}, storeErr("create post", err)
	}
	if s.counters != nil {
		s.counters.IncrementComments(in.Scope)
	}
	return post, nil
}

// checkParent validates the parent reference against the scope's rules:
// Q&A comments attach to answers only; generic comments nest up to
// MaxCommentDepth.
func (s *Service) checkParent(in CreateInput, post *models.Post) error {
	if in.Scope.Kind == ScopeThread {
		// Comments in a Q&A thread always attach to an answer.
		if in.ParentID == nil {
			return ErrInvalidState
		}
		parent, err := s.store.GetPost(*in.ParentID)
		if err != nil {
			return ErrNotFound
		}
		if parent.ThreadID == nil || *parent.ThreadID != in.Scope.ID {
			return ErrInvalidState
		}
		if parent.Kind != models.KindAnswer {
			return ErrInvalidState
		}
		return nil
	}

	if in.ParentID == nil {
		return nil // top-level comment
	}
	posts, err := s.store.ListPosts(in.Scope)
	if err != nil {
		return storeErr("list posts", err)
	}
	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	parent, ok := byID[*in.ParentID]
	if !ok {
		return ErrNotFound
	}
	// Depth of the parent within the scope. A broken or cyclic ancestor
	// chain terminates where it breaks; the post there counts as a root.
	depth := 0
	seen := map[uint]bool{parent.ID: true}
	for parent.ParentID != nil {
		next, ok := byID[*parent.ParentID]
		if !ok || seen[next.ID] {
			break
		}
		seen[next.ID] = true
		parent = next
		depth++
	}
	if depth+1 >= MaxCommentDepth {
		return ErrInvalidState
	}
	return nil
}

// CreateQuestion opens a new Q&A thread on a pet log. The thread and its
// root question post are created atomically.
func (s *Service) CreateQuestion(logID uint, title, content string, authorID uint) (models.Thread, models.Post, error) {
	if authorID == 0 {
		return models.Thread{}, models.Post{}, ErrAuthRequired
	}
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return models.Thread{}, models.Post{}, ErrValidation
	}

	thread := models.Thread{LogID: logID, Title: title, UserID: authorID}
	question := models.Post{
		Pid:     utils.RandStringBytesMaskImpr(8),
		UserID:  authorID,
		Kind:    models.KindQuestion,
		Content: content,
	}
	if err := s.store.CreateThread(&thread, &question); err != nil {
		return models.Thread{}, models.Post{}, storeErr("create thread", err)
	}
	if s.counters != nil {
		s.counters.IncrementComments(Scope{Kind: ScopeLog, ID: logID})
	}
	return thread, question, nil
}

// CreateAnswer posts an answer under the thread's root question.
func (s *Service) CreateAnswer(threadID uint, content string, authorID uint) (models.Post, error) {
	if authorID == 0 {
		return models.Post{}, ErrAuthRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Post{}, ErrValidation
	}

	thread, err := s.store.GetThread(threadID)
	if err != nil {
		return models.Post{}, ErrNotFound
	}
	question, err := s.rootQuestion(threadID)
	if err != nil {
		return models.Post{}, err
	}
	if question.IsDeleted {
		// The asker removed the question; the thread stays for existing
		// answers but takes no new ones.
		return models.Post{}, ErrInvalidState
	}

	post := models.Post{
		Pid:      utils.RandStringBytesMaskImpr(8),
		ThreadID: &thread.ID,
		UserID:   authorID,
		Kind:     models.KindAnswer,
		Content:  content,
		ParentID: &question.ID,
	}
	if err := s.store.CreatePost(&post); err != nil {
		return models.Post{}, storeErr("create post", err)
	}
	if s.counters != nil {
		s.counters.IncrementComments(Scope{Kind: ScopeLog, ID: thread.LogID})
	}
	return post, nil
}

func (s *Service) rootQuestion(threadID uint) (models.Post, error) {
	posts, err := s.store.ListPosts(Scope{Kind: ScopeThread, ID: threadID})
	if err != nil {
		return models.Post{}, storeErr("list posts", err)
	}
	for _, p := range posts {
		if p.Kind == models.KindQuestion && p.ParentID == nil {
			return p, nil
		}
	}
	return models.Post{}, ErrNotFound
}

// Edit replaces a post's content in place. Author-only; deleted posts
// cannot be edited; createdAt is untouched and no history is kept.
func (s *Service) Edit(postID uint, newContent string, actorID uint) (models.Post, error) {
	if actorID == 0 {
		return models.Post{}, ErrAuthRequired
	}
	content := strings.TrimSpace(newContent)
	if content == "" {
		return models.Post{}, ErrValidation
	}
	post, err := s.store.GetPost(postID)
	if err != nil {
		return models.Post{}, ErrNotFound
	}
	if post.UserID != actorID {
		return models.Post{}, ErrUnauthorized
	}
	if post.IsDeleted {
		return models.Post{}, ErrInvalidState
	}
	if err := s.store.UpdateContent(post.ID, content); err != nil {
		return models.Post{}, storeErr("update content", err)
	}
	post.Content = content
	return post, nil
}

// Delete removes a post. The soft/hard decision is made against the
// current children set at the moment of deletion: children present means
// the row is kept as a tombstone, none means it is removed outright. A
// root question with no answers takes its thread down with it.
func (s *Service) Delete(postID uint, actorID uint) (DeleteResult, error) {
	if actorID == 0 {
		return DeleteSoft, ErrAuthRequired
	}
	post, err := s.store.GetPost(postID)
	if err != nil {
		return DeleteSoft, ErrNotFound
	}
	if post.UserID != actorID {
		return DeleteSoft, ErrUnauthorized
	}
	if post.IsDeleted {
		return DeleteSoft, ErrInvalidState
	}

	children, err := s.store.CountChildren(post.ID)
	if err != nil {
		return DeleteSoft, storeErr("count children", err)
	}
	if children > 0 {
		if err := s.store.MarkDeleted(post.ID); err != nil {
			return DeleteSoft, storeErr("mark deleted", err)
		}
		return DeleteSoft, nil
	}
	if post.Kind == models.KindQuestion && post.ThreadID != nil {
		// No answers: the question and its thread go together.
		if err := s.store.DeleteThread(*post.ThreadID); err != nil {
			return DeleteHard, storeErr("delete thread", err)
		}
		return DeleteHard, nil
	}
	if err := s.store.DeletePost(post.ID); err != nil {
		return DeleteHard, storeErr("delete post", err)
	}
	return DeleteHard, nil
}

// AcceptAnswer marks an answer as the thread's resolving response. Only
// the asker may accept, never the answer's own author. Accepting a second
// answer silently revokes the first; repeating the call is a no-op.
func (s *Service) AcceptAnswer(postID uint, actorID uint) (models.Post, error) {
	if actorID == 0 {
		return models.Post{}, ErrAuthRequired
	}
	post, err := s.store.GetPost(postID)
	if err != nil {
		return models.Post{}, ErrNotFound
	}
	if post.Kind != models.KindAnswer || post.ThreadID == nil {
		return models.Post{}, ErrInvalidState
	}
	if post.IsDeleted {
		return models.Post{}, ErrInvalidState
	}
	if post.UserID == actorID {
		return models.Post{}, ErrUnauthorized // cannot accept own answer
	}
	thread, err := s.store.GetThread(*post.ThreadID)
	if err != nil {
		return models.Post{}, ErrNotFound
	}
	if thread.UserID != actorID {
		return models.Post{}, ErrUnauthorized
	}
	if err := s.store.SetAccepted(thread.ID, post.ID); err != nil {
		return models.Post{}, storeErr("set accepted", err)
	}
	post.IsAccepted = true
	return post, nil
}

// Upvote counts one vote per user per post; a repeat vote is accepted as
// a no-op and the current counter is returned either way.
func (s *Service) Upvote(postID uint, actorID uint) (models.Post, error) {
	if actorID == 0 {
		return models.Post{}, ErrAuthRequired
	}
	if _, err := s.store.GetPost(postID); err != nil {
		return models.Post{}, ErrNotFound
	}
	if _, err := s.store.AddVote(postID, actorID); err != nil {
		return models.Post{}, storeErr("add vote", err)
	}
	post, err := s.store.GetPost(postID)
	if err != nil {
		return models.Post{}, storeErr("get post", err)
	}
	return post, nil
}
