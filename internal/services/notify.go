package services

import (
	"fmt"

	"petlink/internal/db"
	"petlink/internal/models"
)

// NotifyService creates in-app notifications after successful discussion
// mutations. Handlers call it from goroutines; failures only lose the
// notification, never the mutation. Delivery (email, push) is out of
// scope.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (s *NotifyService) notify(receiverID uint, actor *models.User, typ models.NotificationType, reason string) {
	// Never notify yourself
	if receiverID == 0 || receiverID == actor.ID {
		return
	}
	n := models.Notification{
		UserID:  receiverID,
		ActorID: &actor.ID,
		Type:    typ,
		Reason:  reason,
	}
	db.DB.Create(&n)
}

// CommentOnReview tells the review author about a new top-level comment.
func (s *NotifyService) CommentOnReview(review models.Review, actor *models.User) {
	s.notify(review.UserID, actor, models.NotificationTypeCommentReview,
		fmt.Sprintf("%s commented on your review /reviews/%s", actor.Username, review.Rid))
}

// CommentOnLog tells the log author about a new top-level comment.
func (s *NotifyService) CommentOnLog(petLog models.PetLog, actor *models.User) {
	s.notify(petLog.UserID, actor, models.NotificationTypeCommentLog,
		fmt.Sprintf("%s commented on your log /logs/%s", actor.Username, petLog.Lid))
}

// Reply tells the parent post's author about a reply.
func (s *NotifyService) Reply(parent models.Post, actor *models.User) {
	s.notify(parent.UserID, actor, models.NotificationTypeReply,
		fmt.Sprintf("%s replied to your post #%s", actor.Username, parent.Pid))
}

// NewAnswer tells the asker their question got an answer.
func (s *NotifyService) NewAnswer(thread models.Thread, actor *models.User) {
	s.notify(thread.UserID, actor, models.NotificationTypeAnswer,
		fmt.Sprintf("%s answered your question \"%s\"", actor.Username, thread.Title))
}

// AnswerAccepted tells the answer author their answer was accepted.
func (s *NotifyService) AnswerAccepted(answer models.Post, actor *models.User) {
	s.notify(answer.UserID, actor, models.NotificationTypeAccepted,
		fmt.Sprintf("%s accepted your answer #%s", actor.Username, answer.Pid))
}
