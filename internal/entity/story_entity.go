package entity

import (
	"time"
)

const (
	StoryStatusActive   = "active"
	StoryStatusInactive = "inactive"
)

// StorySummary is the main story record. The slug is the document identity
// and never changes after creation.
type StorySummary struct {
	Slug          string
	Title         string
	Department    string
	Company       string
	Role          string
	BatchYear     string
	PlacementType string
	Tags          []string
	Status        string
	AuthorId      string
	Content       string
	AssetId       *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// StoryDetail holds the long-form sections. It shares the summary's slug and
// has no identity of its own.
type StoryDetail struct {
	Slug        string
	Journey     string
	Experiences string
	Strategy    string
	Advice      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// StoryAggregate merges one summary with its detail. A nil Detail is a valid,
// degraded aggregate: the detail write may have failed after the summary
// committed, since the store has no cross-collection transactions.
type StoryAggregate struct {
	Summary *StorySummary
	Detail  *StoryDetail
}

func (a *StoryAggregate) Slug() string {
	if a.Summary == nil {
		return ""
	}
	return a.Summary.Slug
}

func (a *StoryAggregate) HasDetail() bool {
	return a.Detail != nil
}
