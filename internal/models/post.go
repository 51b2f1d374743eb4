package models

import (
	"time"
)

type PostKind string

const (
	KindQuestion PostKind = "question"
	KindAnswer   PostKind = "answer"
	KindComment  PostKind = "comment"
)

// Post is one unit of discussion content: a comment on a review or log,
// or a question/answer/comment in a Q&A thread. Exactly one of ThreadID,
// ReviewID, LogID is set and identifies the owning scope.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Pid      string   `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	ThreadID *uint    `gorm:"index" json:"thread_id"`
	Thread   *Thread  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ReviewID *uint    `gorm:"index" json:"review_id"`
	Review   *Review  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	LogID    *uint    `gorm:"index" json:"log_id"`
	Log      *PetLog  `gorm:"foreignKey:LogID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID   uint     `gorm:"not null;index" json:"user_id"` // Author, immutable
	User     User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Kind     PostKind `gorm:"type:varchar(10);not null;default:'comment'" json:"kind"`
	ParentID *uint    `gorm:"index" json:"parent_id"` // Nullable for root posts
	Content  string   `gorm:"type:text;not null" json:"content"`
	// Meaningful only for Kind == answer; at most one true per thread.
	IsAccepted bool      `gorm:"default:false" json:"is_accepted"`
	IsDeleted  bool      `gorm:"default:false" json:"is_deleted"`
	Upvotes    int       `gorm:"default:0" json:"upvotes"`
	CreatedAt  time.Time `json:"created_at"`
	// No UpdatedAt: edits replace content in place without an audit trail.
}
