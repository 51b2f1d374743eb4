package discussion

import (
	"gorm.io/gorm"

	"petlink/internal/models"
)

// GormStore backs the lifecycle manager with the application database.
// Multi-row mutations run in transactions so a failed call leaves no
// partial state.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListPosts(scope Scope) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.Preload("User").Order("created_at ASC, id ASC")
	switch scope.Kind {
	case ScopeReview:
		q = q.Where("review_id = ?", scope.ID)
	case ScopeLog:
		q = q.Where("log_id = ?", scope.ID)
	case ScopeThread:
		q = q.Where("thread_id = ?", scope.ID)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *GormStore) GetPost(id uint) (models.Post, error) {
	var post models.Post
	if err := s.db.Preload("User").First(&post, id).Error; err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *GormStore) GetThread(id uint) (models.Thread, error) {
	var thread models.Thread
	if err := s.db.Preload("User").First(&thread, id).Error; err != nil {
		return models.Thread{}, err
	}
	return thread, nil
}

func (s *GormStore) ListThreads(logID uint) ([]models.Thread, error) {
	var threads []models.Thread
	err := s.db.Preload("User").
		Where("log_id = ?", logID).
		Order("created_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, err
	}
	return threads, nil
}

func (s *GormStore) CreatePost(post *models.Post) error {
	return s.db.Create(post).Error
}

func (s *GormStore) CreateThread(thread *models.Thread, question *models.Post) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		question.ThreadID = &thread.ID
		return tx.Create(question).Error
	})
}

func (s *GormStore) UpdateContent(id uint, content string) error {
	return s.db.Model(&models.Post{}).Where("id = ?", id).
		Update("content", content).Error
}

func (s *GormStore) MarkDeleted(id uint) error {
	return s.db.Model(&models.Post{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (s *GormStore) DeletePost(id uint) error {
	return s.db.Unscoped().Delete(&models.Post{}, id).Error
}

func (s *GormStore) DeleteThread(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("thread_id = ?", id).
			Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Thread{}, id).Error
	})
}

func (s *GormStore) CountChildren(id uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (s *GormStore) SetAccepted(threadID, postID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("thread_id = ? AND kind = ? AND id <> ?", threadID, models.KindAnswer, postID).
			Update("is_accepted", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("is_accepted", true).Error
	})
}

func (s *GormStore) AddVote(postID, userID uint) (bool, error) {
	counted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error; err == nil {
			return nil // already voted
		}
		if err := tx.Create(&models.Vote{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("upvotes", gorm.Expr("upvotes + ?", 1)).Error; err != nil {
			return err
		}
		counted = true
		return nil
	})
	return counted, err
}
