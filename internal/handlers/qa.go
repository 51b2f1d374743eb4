package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/discussion"
	"petlink/internal/models"
	"petlink/internal/services"
	"petlink/internal/utils"
)

// DiscussionHandler dispatches every discussion action (reply, edit,
// delete, accept, upvote) to the lifecycle manager. The acting user id is
// passed explicitly; an anonymous request reaches the service as actor 0
// and comes back as a login prompt, never as a silent drop.
type DiscussionHandler struct {
	svc    *discussion.Service
	notify *services.NotifyService
}

func NewDiscussionHandler(svc *discussion.Service, notify *services.NotifyService) *DiscussionHandler {
	return &DiscussionHandler{svc: svc, notify: notify}
}

type commentRequest struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// CreateReviewComment adds a comment under a product review.
func (h *DiscussionHandler) CreateReviewComment(c *gin.Context) {
	rid := c.Param("rid")

	var review models.Review
	if err := db.DB.Where("rid = ?", rid).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.CreateComment(discussion.CreateInput{
		Scope:    discussion.Scope{Kind: discussion.ScopeReview, ID: review.ID},
		Content:  utils.SanitizePlain(req.Content),
		AuthorID: ActorID(c),
		ParentID: req.ParentID,
	})
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("review:detail:%s", rid))
	go h.notifyComment(post, func(actor *models.User) {
		h.notify.CommentOnReview(review, actor)
	})

	c.JSON(http.StatusCreated, post)
}

// CreateLogComment adds a comment under a pet log entry.
func (h *DiscussionHandler) CreateLogComment(c *gin.Context) {
	lid := c.Param("lid")

	var petLog models.PetLog
	if err := db.DB.Where("lid = ?", lid).First(&petLog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.CreateComment(discussion.CreateInput{
		Scope:    discussion.Scope{Kind: discussion.ScopeLog, ID: petLog.ID},
		Content:  utils.SanitizePlain(req.Content),
		AuthorID: ActorID(c),
		ParentID: req.ParentID,
	})
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("petlog:detail:%s", lid))
	go h.notifyComment(post, func(actor *models.User) {
		h.notify.CommentOnLog(petLog, actor)
	})

	c.JSON(http.StatusCreated, post)
}

// notifyComment routes the notification: replies go to the parent post's
// author, top-level comments to the content owner via onRoot.
func (h *DiscussionHandler) notifyComment(post models.Post, onRoot func(actor *models.User)) {
	var actor models.User
	if err := db.DB.First(&actor, post.UserID).Error; err != nil {
		return
	}
	if post.ParentID != nil {
		var parent models.Post
		if err := db.DB.First(&parent, *post.ParentID).Error; err == nil {
			h.notify.Reply(parent, &actor)
		}
		return
	}
	onRoot(&actor)
}

type questionRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateQuestion opens a Q&A thread on a log; thread and root question
// are created together or not at all.
func (h *DiscussionHandler) CreateQuestion(c *gin.Context) {
	lid := c.Param("lid")

	var petLog models.PetLog
	if err := db.DB.Where("lid = ?", lid).First(&petLog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, question, err := h.svc.CreateQuestion(petLog.ID, req.Title,
		utils.SanitizePlain(req.Content), ActorID(c))
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("petlog:detail:%s", lid))
	c.JSON(http.StatusCreated, gin.H{"thread": thread, "question": question})
}

// ListThreads returns the Q&A threads on a log.
func (h *DiscussionHandler) ListThreads(c *gin.Context) {
	lid := c.Param("lid")

	var petLog models.PetLog
	if err := db.DB.Where("lid = ?", lid).First(&petLog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}

	threads, err := h.svc.Threads(petLog.ID)
	if err != nil {
		FailDiscussion(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

// ThreadDetail returns the thread with its full post tree.
func (h *DiscussionHandler) ThreadDetail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	thread, err := h.svc.Thread(id)
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	posts, err := h.svc.Posts(discussion.Scope{Kind: discussion.ScopeThread, ID: thread.ID})
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"thread": thread,
		"posts":  discussion.RenderTree(posts, discussion.ScopeThread, nil),
	})
}

type answerRequest struct {
	Content string `json:"content"`
}

// CreateAnswer posts an answer to the thread's question.
func (h *DiscussionHandler) CreateAnswer(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.svc.CreateAnswer(id, utils.SanitizePlain(req.Content), ActorID(c))
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	h.invalidateForPost(answer)
	go func() {
		thread, terr := h.svc.Thread(id)
		if terr != nil {
			return
		}
		var actor models.User
		if err := db.DB.First(&actor, answer.UserID).Error; err == nil {
			h.notify.NewAnswer(thread, &actor)
		}
	}()

	c.JSON(http.StatusCreated, answer)
}

// CreateThreadComment attaches a comment to an answer.
func (h *DiscussionHandler) CreateThreadComment(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.CreateComment(discussion.CreateInput{
		Scope:    discussion.Scope{Kind: discussion.ScopeThread, ID: id},
		Content:  utils.SanitizePlain(req.Content),
		AuthorID: ActorID(c),
		ParentID: req.ParentID,
	})
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	h.invalidateForPost(post)
	go h.notifyComment(post, func(*models.User) {})

	c.JSON(http.StatusCreated, post)
}

type editRequest struct {
	Content string `json:"content"`
}

// EditPost replaces a post's content; author-only.
func (h *DiscussionHandler) EditPost(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.Edit(id, utils.SanitizePlain(req.Content), ActorID(c))
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	h.invalidateForPost(post)
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post; soft when replies reference it, hard
// otherwise.
func (h *DiscussionHandler) DeletePost(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	// Snapshot scope before the row can disappear.
	scoped, scopeKnown := h.postScope(id)

	result, err := h.svc.Delete(id, ActorID(c))
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	if scopeKnown {
		h.invalidateForPost(scoped)
	}
	kind := "hard"
	if result == discussion.DeleteSoft {
		kind = "soft"
	}
	c.JSON(http.StatusOK, gin.H{"deleted": kind})
}

// AcceptAnswer marks an answer as the thread's resolving response.
func (h *DiscussionHandler) AcceptAnswer(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	actorID := ActorID(c)

	post, err := h.svc.AcceptAnswer(id, actorID)
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	h.invalidateForPost(post)
	go func() {
		var actor models.User
		if err := db.DB.First(&actor, actorID).Error; err == nil {
			h.notify.AnswerAccepted(post, &actor)
		}
	}()

	c.JSON(http.StatusOK, post)
}

// Upvote counts one vote per user; repeat votes return the current count.
func (h *DiscussionHandler) Upvote(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	post, err := h.svc.Upvote(id, ActorID(c))
	if err != nil {
		FailDiscussion(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upvotes": post.Upvotes})
}

func (h *DiscussionHandler) postScope(id uint) (models.Post, bool) {
	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		return models.Post{}, false
	}
	return post, true
}

// invalidateForPost drops the detail cache of the content item the post
// belongs to.
func (h *DiscussionHandler) invalidateForPost(post models.Post) {
	switch {
	case post.ReviewID != nil:
		var review models.Review
		if err := db.DB.Select("rid").First(&review, *post.ReviewID).Error; err == nil {
			utils.GetCache().Delete(fmt.Sprintf("review:detail:%s", review.Rid))
		}
	case post.LogID != nil:
		var petLog models.PetLog
		if err := db.DB.Select("lid").First(&petLog, *post.LogID).Error; err == nil {
			utils.GetCache().Delete(fmt.Sprintf("petlog:detail:%s", petLog.Lid))
		}
	case post.ThreadID != nil:
		var thread models.Thread
		if err := db.DB.First(&thread, *post.ThreadID).Error; err == nil {
			var petLog models.PetLog
			if err := db.DB.Select("lid").First(&petLog, thread.LogID).Error; err == nil {
				utils.GetCache().Delete(fmt.Sprintf("petlog:detail:%s", petLog.Lid))
			}
		}
	}
}
