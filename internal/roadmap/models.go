package roadmap

import (
	"time"

	"github.com/goliatone/go-blog/internal/localization"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Topic groups roadmap items. Topics double as the home of per-slug policy
// pages (privacy_policy).
type Topic struct {
	bun.BaseModel `bun:"table:roadmap_topics,alias:rt"`

	ID            uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	Slug          string             `bun:"slug,notnull" json:"slug"`
	Title         localization.Field `bun:"title,type:jsonb" json:"title"`
	Description   localization.Field `bun:"description,type:jsonb" json:"description"`
	PrivacyPolicy localization.Field `bun:"privacy_policy,type:jsonb" json:"privacy_policy"`
	SortOrder     int                `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt     time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Items         []*Item            `bun:"rel:has-many,join:id=topic_id" json:"items,omitempty"`
}

// Item is a single roadmap entry.
type Item struct {
	bun.BaseModel `bun:"table:roadmap_items,alias:ri"`

	ID        uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	TopicID   uuid.UUID          `bun:"topic_id,notnull,type:uuid" json:"topic_id"`
	Title     localization.Field `bun:"title,type:jsonb" json:"title"`
	Status    Status             `bun:"status,notnull,default:'todo'" json:"status"`
	SortOrder int                `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// TopicSummary is the locale-resolved projection rendered by the roadmap view.
type TopicSummary struct {
	ID          uuid.UUID     `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Percent     int           `json:"percent"`
	Status      Status        `json:"status"`
	Current     *ItemSummary  `json:"current,omitempty"`
	Items       []ItemSummary `json:"items"`
}

// ItemSummary is the locale-resolved projection of an Item.
type ItemSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Status Status    `json:"status"`
}

func cloneTopic(topic *Topic) *Topic {
	if topic == nil {
		return nil
	}
	cloned := *topic
	cloned.Items = nil
	if topic.Items != nil {
		cloned.Items = make([]*Item, len(topic.Items))
		for i, item := range topic.Items {
			cloned.Items[i] = cloneItem(item)
		}
	}
	return &cloned
}

func cloneItem(item *Item) *Item {
	if item == nil {
		return nil
	}
	cloned := *item
	return &cloned
}
