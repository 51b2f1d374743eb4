package discussion

import (
	"errors"
	"testing"
	"time"

	"petlink/internal/models"
)

// memStore is an in-memory Store. Posts keep insertion order, which
// doubles as chronological order. failOn makes a named op fail, for
// store-failure paths.
type memStore struct {
	posts   []models.Post
	threads []models.Thread
	votes   map[[2]uint]bool
	nextID  uint
	clock   time.Time
	failOn  string
	calls   []string
}

func newMemStore() *memStore {
	return &memStore{
		votes: make(map[[2]uint]bool),
		clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) op(name string) error {
	m.calls = append(m.calls, name)
	if m.failOn == name {
		return errors.New("backend down")
	}
	return nil
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) inScope(p models.Post, scope Scope) bool {
	switch scope.Kind {
	case ScopeReview:
		return p.ReviewID != nil && *p.ReviewID == scope.ID
	case ScopeLog:
		return p.LogID != nil && *p.LogID == scope.ID
	case ScopeThread:
		return p.ThreadID != nil && *p.ThreadID == scope.ID
	}
	return false
}

func (m *memStore) ListPosts(scope Scope) ([]models.Post, error) {
	if err := m.op("list"); err != nil {
		return nil, err
	}
	var out []models.Post
	for _, p := range m.posts {
		if m.inScope(p, scope) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetPost(id uint) (models.Post, error) {
	if err := m.op("get"); err != nil {
		return models.Post{}, err
	}
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, errors.New("record not found")
}

func (m *memStore) GetThread(id uint) (models.Thread, error) {
	if err := m.op("get thread"); err != nil {
		return models.Thread{}, err
	}
	for _, t := range m.threads {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Thread{}, errors.New("record not found")
}

func (m *memStore) ListThreads(logID uint) ([]models.Thread, error) {
	if err := m.op("list threads"); err != nil {
		return nil, err
	}
	var out []models.Thread
	for _, t := range m.threads {
		if t.LogID == logID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) CreatePost(post *models.Post) error {
	if err := m.op("create"); err != nil {
		return err
	}
	m.nextID++
	post.ID = m.nextID
	post.CreatedAt = m.tick()
	m.posts = append(m.posts, *post)
	return nil
}

func (m *memStore) CreateThread(thread *models.Thread, question *models.Post) error {
	if err := m.op("create thread"); err != nil {
		return err
	}
	m.nextID++
	thread.ID = m.nextID
	thread.CreatedAt = m.tick()
	m.threads = append(m.threads, *thread)

	m.nextID++
	question.ID = m.nextID
	question.ThreadID = &thread.ID
	question.CreatedAt = m.tick()
	m.posts = append(m.posts, *question)
	return nil
}

func (m *memStore) UpdateContent(id uint, content string) error {
	if err := m.op("update"); err != nil {
		return err
	}
	for i := range m.posts {
		if m.posts[i].ID == id {
			m.posts[i].Content = content
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *memStore) MarkDeleted(id uint) error {
	if err := m.op("mark deleted"); err != nil {
		return err
	}
	for i := range m.posts {
		if m.posts[i].ID == id {
			m.posts[i].IsDeleted = true
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *memStore) DeletePost(id uint) error {
	if err := m.op("delete"); err != nil {
		return err
	}
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *memStore) DeleteThread(id uint) error {
	if err := m.op("delete thread"); err != nil {
		return err
	}
	var kept []models.Post
	for _, p := range m.posts {
		if p.ThreadID == nil || *p.ThreadID != id {
			kept = append(kept, p)
		}
	}
	m.posts = kept
	for i, t := range m.threads {
		if t.ID == id {
			m.threads = append(m.threads[:i], m.threads[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) CountChildren(id uint) (int64, error) {
	if err := m.op("count"); err != nil {
		return 0, err
	}
	var count int64
	for _, p := range m.posts {
		if p.ParentID != nil && *p.ParentID == id {
			count++
		}
	}
	return count, nil
}

func (m *memStore) SetAccepted(threadID, postID uint) error {
	if err := m.op("accept"); err != nil {
		return err
	}
	for i := range m.posts {
		p := &m.posts[i]
		if p.ThreadID != nil && *p.ThreadID == threadID && p.Kind == models.KindAnswer {
			p.IsAccepted = p.ID == postID
		}
	}
	return nil
}

func (m *memStore) AddVote(postID, userID uint) (bool, error) {
	if err := m.op("vote"); err != nil {
		return false, err
	}
	key := [2]uint{userID, postID}
	if m.votes[key] {
		return false, nil
	}
	m.votes[key] = true
	for i := range m.posts {
		if m.posts[i].ID == postID {
			m.posts[i].Upvotes++
		}
	}
	return true, nil
}

// counterRec records counter side-channel hits.
type counterRec struct {
	scopes []Scope
}

func (r *counterRec) IncrementComments(scope Scope) {
	r.scopes = append(r.scopes, scope)
}

const (
	u1 = uint(1)
	u2 = uint(2)
	u3 = uint(3)
)

func newTestService() (*Service, *memStore, *counterRec) {
	store := newMemStore()
	counters := &counterRec{}
	return NewService(store, counters), store, counters
}

// askAndAnswer sets up a thread on log 1 with one answer from u2.
func askAndAnswer(t *testing.T, svc *Service) (models.Thread, models.Post, models.Post) {
	t.Helper()
	thread, question, err := svc.CreateQuestion(1, "limping on the left leg", "My dog started limping after our walk yesterday.", u1)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	answer, err := svc.CreateAnswer(thread.ID, "I would see a vet, it could be a sprain.", u2)
	if err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}
	return thread, question, answer
}

func TestCreateQuestionFreshThread(t *testing.T) {
	svc, _, _ := newTestService()

	thread, question, err := svc.CreateQuestion(1, "limping", "My dog started limping after our walk yesterday.", u1)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	threads, err := svc.Threads(1)
	if err != nil {
		t.Fatalf("Threads: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("expected 1 thread on log, got %d", len(threads))
	}
	if question.Kind != models.KindQuestion || question.IsDeleted {
		t.Errorf("root post wrong: kind=%s deleted=%v", question.Kind, question.IsDeleted)
	}
	if question.ThreadID == nil || *question.ThreadID != thread.ID {
		t.Error("question not attached to its thread")
	}
}

func TestAnswerIsChildOfQuestion(t *testing.T) {
	svc, _, _ := newTestService()
	thread, question, answer := askAndAnswer(t, svc)

	posts, err := svc.Posts(Scope{Kind: ScopeThread, ID: thread.ID})
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	children := ChildrenOf(posts, question.ID)
	if len(children) != 1 || children[0].ID != answer.ID {
		t.Fatalf("expected exactly the answer under the question, got %d posts", len(children))
	}
	if children[0].Kind != models.KindAnswer {
		t.Errorf("expected answer kind, got %s", children[0].Kind)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, store, _ := newTestService()
	scope := Scope{Kind: ScopeLog, ID: 1}

	for _, content := range []string{"", "   "} {
		_, err := svc.CreateComment(CreateInput{Scope: scope, Content: content, AuthorID: u1})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("content %q: expected ErrValidation, got %v", content, err)
		}
	}
	if len(store.posts) != 0 {
		t.Errorf("no posts should exist after failed validation, got %d", len(store.posts))
	}

	if _, err := svc.CreateComment(CreateInput{Scope: scope, Content: "x", AuthorID: u1}); err != nil {
		t.Errorf("single-char content should succeed, got %v", err)
	}
}

func TestAnonymousCreateShortCircuits(t *testing.T) {
	svc, store, counters := newTestService()

	_, err := svc.CreateComment(CreateInput{
		Scope:    Scope{Kind: ScopeLog, ID: 1},
		Content:  "hello",
		AuthorID: 0,
	})
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("no store call may happen for an anonymous actor, saw %v", store.calls)
	}
	if len(counters.scopes) != 0 {
		t.Error("counter must not fire for a rejected create")
	}
}

func TestCounterFiresOncePerCreate(t *testing.T) {
	svc, _, counters := newTestService()
	scope := Scope{Kind: ScopeReview, ID: 7}

	if _, err := svc.CreateComment(CreateInput{Scope: scope, Content: "nice food", AuthorID: u1}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if len(counters.scopes) != 1 || counters.scopes[0] != scope {
		t.Errorf("expected one counter hit for %v, got %v", scope, counters.scopes)
	}
}

func TestAcceptAnswerExclusive(t *testing.T) {
	svc, _, _ := newTestService()
	thread, _, first := askAndAnswer(t, svc)

	second, err := svc.CreateAnswer(thread.ID, "Try shortening the walks for a few days.", u3)
	if err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}

	if _, err := svc.AcceptAnswer(first.ID, u1); err != nil {
		t.Fatalf("AcceptAnswer(first): %v", err)
	}
	assertAccepted(t, svc, thread.ID, first.ID)

	// Accepting the second silently revokes the first.
	if _, err := svc.AcceptAnswer(second.ID, u1); err != nil {
		t.Fatalf("AcceptAnswer(second): %v", err)
	}
	assertAccepted(t, svc, thread.ID, second.ID)
}

func TestAcceptAnswerIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	thread, _, answer := askAndAnswer(t, svc)

	if _, err := svc.AcceptAnswer(answer.ID, u1); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if _, err := svc.AcceptAnswer(answer.ID, u1); err != nil {
		t.Fatalf("second accept: %v", err)
	}
	assertAccepted(t, svc, thread.ID, answer.ID)
}

// assertAccepted checks that exactly one answer is accepted and it is
// wantID.
func assertAccepted(t *testing.T, svc *Service, threadID, wantID uint) {
	t.Helper()
	posts, err := svc.Posts(Scope{Kind: ScopeThread, ID: threadID})
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	var accepted []uint
	for _, p := range posts {
		if p.IsAccepted {
			if p.Kind != models.KindAnswer {
				t.Errorf("non-answer post %d is accepted", p.ID)
			}
			accepted = append(accepted, p.ID)
		}
	}
	if len(accepted) != 1 || accepted[0] != wantID {
		t.Fatalf("expected exactly post %d accepted, got %v", wantID, accepted)
	}
}

func TestAcceptRules(t *testing.T) {
	svc, _, _ := newTestService()
	_, question, answer := askAndAnswer(t, svc)

	// The answer's own author cannot accept it.
	if _, err := svc.AcceptAnswer(answer.ID, u2); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("self-accept: expected ErrUnauthorized, got %v", err)
	}
	// A bystander cannot accept either.
	if _, err := svc.AcceptAnswer(answer.ID, u3); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("bystander accept: expected ErrUnauthorized, got %v", err)
	}
	// Only answers can be accepted.
	if _, err := svc.AcceptAnswer(question.ID, u1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("accept question: expected ErrInvalidState, got %v", err)
	}
}

func TestDeleteAnswerWithCommentIsSoft(t *testing.T) {
	svc, _, _ := newTestService()
	thread, _, answer := askAndAnswer(t, svc)

	comment, err := svc.CreateComment(CreateInput{
		Scope:    Scope{Kind: ScopeThread, ID: thread.ID},
		Content:  "thanks, will do",
		AuthorID: u1,
		ParentID: &answer.ID,
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	result, err := svc.Delete(answer.ID, u2)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if result != DeleteSoft {
		t.Fatal("expected soft delete while a comment references the answer")
	}

	posts, _ := svc.Posts(Scope{Kind: ScopeThread, ID: thread.ID})
	var found *models.Post
	for i := range posts {
		if posts[i].ID == answer.ID {
			found = &posts[i]
		}
	}
	if found == nil {
		t.Fatal("soft-deleted answer must stay in the list")
	}
	if !found.IsDeleted {
		t.Error("answer should be flagged deleted")
	}
	if children := ChildrenOf(posts, answer.ID); len(children) != 1 || children[0].ID != comment.ID {
		t.Error("comment must still hang off the tombstoned answer")
	}
}

func TestDeleteChildlessCommentIsHard(t *testing.T) {
	svc, _, _ := newTestService()
	scope := Scope{Kind: ScopeLog, ID: 1}

	root, err := svc.CreateComment(CreateInput{Scope: scope, Content: "first", AuthorID: u1})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	leaf, err := svc.CreateComment(CreateInput{Scope: scope, Content: "second", AuthorID: u3, ParentID: &root.ID})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	result, err := svc.Delete(leaf.ID, u3)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if result != DeleteHard {
		t.Fatal("expected hard delete for a childless comment")
	}

	posts, _ := svc.Posts(scope)
	for _, p := range posts {
		if p.ID == leaf.ID {
			t.Fatal("hard-deleted comment still present")
		}
	}
	if children := ChildrenOf(posts, root.ID); len(children) != 0 {
		t.Errorf("no children expected after hard delete, got %d", len(children))
	}
}

func TestDeleteQuestion(t *testing.T) {
	svc, _, _ := newTestService()

	// With an answer: the question tombstones, the thread survives.
	thread, question, _ := askAndAnswer(t, svc)
	result, err := svc.Delete(question.ID, u1)
	if err != nil {
		t.Fatalf("Delete(question): %v", err)
	}
	if result != DeleteSoft {
		t.Error("question with answers must soft-delete")
	}
	if _, err := svc.Thread(thread.ID); err != nil {
		t.Error("thread must survive while answers exist")
	}

	// Without answers: question and thread go together.
	bare, bareQ, err := svc.CreateQuestion(2, "eating less", "She has barely touched her food this week.", u1)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	result, err = svc.Delete(bareQ.ID, u1)
	if err != nil {
		t.Fatalf("Delete(bare question): %v", err)
	}
	if result != DeleteHard {
		t.Error("question without answers must hard-delete")
	}
	if _, err := svc.Thread(bare.ID); !errors.Is(err, ErrNotFound) {
		t.Error("thread must be gone with its only question")
	}
}

func TestEditRules(t *testing.T) {
	svc, store, _ := newTestService()
	scope := Scope{Kind: ScopeLog, ID: 1}

	post, err := svc.CreateComment(CreateInput{Scope: scope, Content: "typo here", AuthorID: u1})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	created := post.CreatedAt

	if _, err := svc.Edit(post.ID, "fixed", u2); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("foreign edit: expected ErrUnauthorized, got %v", err)
	}

	edited, err := svc.Edit(post.ID, "fixed", u1)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.Content != "fixed" {
		t.Errorf("content not replaced: %q", edited.Content)
	}
	if got, _ := store.GetPost(post.ID); !got.CreatedAt.Equal(created) {
		t.Error("edit must not touch createdAt")
	}

	// A soft-deleted post can never be edited again.
	other, _ := svc.CreateComment(CreateInput{Scope: scope, Content: "parent", AuthorID: u1})
	if _, err := svc.CreateComment(CreateInput{Scope: scope, Content: "child", AuthorID: u2, ParentID: &other.ID}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if _, err := svc.Delete(other.ID, u1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Edit(other.ID, "resurrect", u1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("edit after delete: expected ErrInvalidState, got %v", err)
	}
}

func TestUpvoteDedup(t *testing.T) {
	svc, _, _ := newTestService()
	post, err := svc.CreateComment(CreateInput{
		Scope: Scope{Kind: ScopeLog, ID: 1}, Content: "useful", AuthorID: u1,
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if got, _ := svc.Upvote(post.ID, u2); got.Upvotes != 1 {
		t.Errorf("first vote: expected 1, got %d", got.Upvotes)
	}
	if got, _ := svc.Upvote(post.ID, u2); got.Upvotes != 1 {
		t.Errorf("repeat vote must not count: got %d", got.Upvotes)
	}
	if got, _ := svc.Upvote(post.ID, u3); got.Upvotes != 2 {
		t.Errorf("second user: expected 2, got %d", got.Upvotes)
	}

	if _, err := svc.Upvote(post.ID, 0); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("anonymous vote: expected ErrAuthRequired, got %v", err)
	}
}

func TestQACommentAttachesToAnswersOnly(t *testing.T) {
	svc, _, _ := newTestService()
	thread, question, answer := askAndAnswer(t, svc)
	scope := Scope{Kind: ScopeThread, ID: thread.ID}

	if _, err := svc.CreateComment(CreateInput{Scope: scope, Content: "?", AuthorID: u1, ParentID: &question.ID}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("comment on question: expected ErrInvalidState, got %v", err)
	}

	comment, err := svc.CreateComment(CreateInput{Scope: scope, Content: "thanks", AuthorID: u1, ParentID: &answer.ID})
	if err != nil {
		t.Fatalf("comment on answer: %v", err)
	}

	if _, err := svc.CreateComment(CreateInput{Scope: scope, Content: "nested", AuthorID: u2, ParentID: &comment.ID}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("comment on comment: expected ErrInvalidState, got %v", err)
	}
}

func TestCommentDepthLimit(t *testing.T) {
	svc, _, _ := newTestService()
	scope := Scope{Kind: ScopeLog, ID: 1}

	parent, err := svc.CreateComment(CreateInput{Scope: scope, Content: "root", AuthorID: u1})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	// Chain down to the depth limit, each reply under the previous one.
	for i := 1; i < MaxCommentDepth; i++ {
		parentID := parent.ID
		next, err := svc.CreateComment(CreateInput{Scope: scope, Content: "reply", AuthorID: u1, ParentID: &parentID})
		if err != nil {
			t.Fatalf("depth %d: %v", i, err)
		}
		parent = next
	}
	// One past the limit is refused.
	parentID := parent.ID
	if _, err := svc.CreateComment(CreateInput{Scope: scope, Content: "too deep", AuthorID: u1, ParentID: &parentID}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState past the depth limit, got %v", err)
	}
}

func TestCreateCommentCopiesParentReference(t *testing.T) {
	svc, store, _ := newTestService()
	scope := Scope{Kind: ScopeLog, ID: 1}

	root, err := svc.CreateComment(CreateInput{Scope: scope, Content: "root", AuthorID: u1})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	parentID := root.ID
	child, err := svc.CreateComment(CreateInput{Scope: scope, Content: "reply", AuthorID: u2, ParentID: &parentID})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	// Mutating the caller's variable must not rewrite the stored parent.
	parentID = 999
	got, err := store.GetPost(child.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.ParentID == nil || *got.ParentID != root.ID {
		t.Error("stored parent reference aliases caller memory")
	}
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Error("returned parent reference aliases caller memory")
	}
}

func TestCreateCommentCyclicParentChain(t *testing.T) {
	svc, store, _ := newTestService()
	logID := uint(1)

	// Two rows whose parent references point at each other, the kind of
	// corruption the depth walk must survive. It degrades like an orphan
	// chain: the walk stops where it loops and the reply is taken.
	store.posts = append(store.posts,
		models.Post{ID: 1, Kind: models.KindComment, Content: "a", UserID: u1, LogID: &logID, ParentID: pid(2)},
		models.Post{ID: 2, Kind: models.KindComment, Content: "b", UserID: u2, LogID: &logID, ParentID: pid(1)},
	)
	store.nextID = 2

	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateComment(CreateInput{
			Scope: Scope{Kind: ScopeLog, ID: logID}, Content: "reply", AuthorID: u3, ParentID: pid(1),
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("CreateComment did not return on a cyclic parent chain")
	}
}

func TestStoreFailureLeavesStateUnchanged(t *testing.T) {
	svc, store, counters := newTestService()
	scope := Scope{Kind: ScopeLog, ID: 1}

	if _, err := svc.CreateComment(CreateInput{Scope: scope, Content: "ok", AuthorID: u1}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	store.failOn = "create"
	_, err := svc.CreateComment(CreateInput{Scope: scope, Content: "will fail", AuthorID: u1})
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}

	if len(store.posts) != 1 {
		t.Errorf("failed create must leave the list unchanged, got %d posts", len(store.posts))
	}
	if len(counters.scopes) != 1 {
		t.Error("counter must not fire on store failure")
	}
}
