package models

import "time"

// PollOption is one selectable answer of a post's poll.
type PollOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PostID     uint   `gorm:"index;not null" json:"post_id"`
	OptionText string `gorm:"size:200;not null" json:"option_text"`
	VoteCount  int    `gorm:"default:0" json:"vote_count"`
}

// PollVote records a cast vote. PostID is denormalized from the option so the
// unique index over (user_id, post_id) can bound voting to one option per poll,
// not one vote per option.
type PollVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_vote_user_post;not null" json:"user_id"`
	PostID    uint      `gorm:"uniqueIndex:idx_vote_user_post;not null" json:"post_id"`
	OptionID  uint      `gorm:"index;not null" json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}
