package state

import (
	"context"
	"fmt"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
)

// Stage is the position of a conversation in the redemption workflow.
type Stage string

const (
	StageBrowsing        Stage = "browsing"
	StageSelected        Stage = "selected"
	StageConfirming      Stage = "confirming"
	StageAwaitingComment Stage = "awaiting_comment"
	StagePersisted       Stage = "persisted"
)

// Key addresses the scratch state of one user in one chat.
type Key struct {
	ChatID int64
	UserID int64
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.ChatID, k.UserID)
}

// Conversation is the scratch state kept between updates.
type Conversation struct {
	Stage           Stage      `json:"stage,omitempty"`
	AwardID         int64      `json:"award_id,omitempty"`
	PromptMessageID int        `json:"prompt_message_id,omitempty"`
	RoleOverride    model.Role `json:"role_override,omitempty"`
	AwaitingSearch  bool       `json:"awaiting_search,omitempty"`
}

// Select records the award the user opened.
func (c *Conversation) Select(awardID int64) {
	c.Stage = StageSelected
	c.AwardID = awardID
	c.PromptMessageID = 0
}

// Confirm moves a selected award to the confirmation step.
func (c *Conversation) Confirm(awardID int64) {
	c.Stage = StageConfirming
	c.AwardID = awardID
}

// AwaitComment remembers which award the next text message comments on.
func (c *Conversation) AwaitComment(awardID int64, promptMessageID int) {
	c.Stage = StageAwaitingComment
	c.AwardID = awardID
	c.PromptMessageID = promptMessageID
	c.AwaitingSearch = false
}

// AwaitingComment reports whether a free text message should be taken as a comment.
func (c Conversation) AwaitingComment() bool {
	return c.Stage == StageAwaitingComment && c.AwardID != 0
}

// FinishRedemption drops the offer in progress and keeps the role override.
func (c *Conversation) FinishRedemption() {
	c.Stage = StageBrowsing
	c.AwardID = 0
	c.PromptMessageID = 0
}

// Overridden reports whether an administrator is browsing with another role.
func (c Conversation) Overridden() bool {
	return c.RoleOverride != model.RoleUnauthorized
}

// EffectiveRole is the role menus are built for.
func (c Conversation) EffectiveRole(user *model.User) model.Role {
	if user == nil {
		return model.RoleUnauthorized
	}
	if c.Overridden() {
		return c.RoleOverride
	}
	return user.Role
}

// Store keeps conversations between updates.
type Store interface {
	// Get returns the zero Conversation when nothing is stored.
	Get(ctx context.Context, key Key) (Conversation, error)
	Save(ctx context.Context, key Key, c Conversation) error
	Clear(ctx context.Context, key Key) error
}
