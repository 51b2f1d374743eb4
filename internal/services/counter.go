package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"petlink/internal/db"
	"petlink/internal/discussion"
	"petlink/internal/models"
	"petlink/internal/utils"
)

// CounterService is the counter side channel: one increment per
// successful post creation lands on the owning content item's
// denormalized comment_count, and the item's detail cache is invalidated.
type CounterService struct{}

func NewCounterService() *CounterService {
	return &CounterService{}
}

func (s *CounterService) IncrementComments(scope discussion.Scope) {
	switch scope.Kind {
	case discussion.ScopeReview:
		s.bumpReview(scope.ID)
	case discussion.ScopeLog:
		s.bumpLog(scope.ID)
	case discussion.ScopeThread:
		// Q&A posts count against the thread's owning log.
		var thread models.Thread
		if err := db.DB.First(&thread, scope.ID).Error; err != nil {
			log.Printf("counter: thread %d lookup failed: %v", scope.ID, err)
			return
		}
		s.bumpLog(thread.LogID)
	}
}

func (s *CounterService) bumpReview(id uint) {
	if err := db.DB.Model(&models.Review{}).Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error; err != nil {
		log.Printf("counter: review %d increment failed: %v", id, err)
		return
	}
	var review models.Review
	if err := db.DB.Select("rid").First(&review, id).Error; err == nil {
		utils.GetCache().Delete(fmt.Sprintf("review:detail:%s", review.Rid))
	}
}

func (s *CounterService) bumpLog(id uint) {
	if err := db.DB.Model(&models.PetLog{}).Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error; err != nil {
		log.Printf("counter: log %d increment failed: %v", id, err)
		return
	}
	var petLog models.PetLog
	if err := db.DB.Select("lid").First(&petLog, id).Error; err == nil {
		utils.GetCache().Delete(fmt.Sprintf("petlog:detail:%s", petLog.Lid))
	}
}
