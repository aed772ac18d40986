package quest

import (
	"crypto/sha256"
	"encoding/hex"

	json "github.com/goccy/go-json"
)

// GenericCategory is the category of quests without a trader.
const GenericCategory = "generic"

// Quest is a single quest record.
type Quest struct {
	ID                string   `json:"id" yaml:"id" bson:"id"`
	Name              string   `json:"name" yaml:"name" bson:"name"`
	Group             string   `json:"group" yaml:"group" bson:"group"`
	Trader            string   `json:"trader,omitempty" yaml:"trader,omitempty" bson:"trader,omitempty"`
	UnlockMilestone   bool     `json:"unlockMilestone,omitempty" yaml:"unlockMilestone,omitempty" bson:"unlock_milestone,omitempty"`
	Prerequisites     []string `json:"prerequisites" yaml:"prerequisites" bson:"prerequisites"`
	Objectives        []string `json:"objectives,omitempty" yaml:"objectives,omitempty" bson:"objectives,omitempty"`
	Rewards           []Reward `json:"rewards,omitempty" yaml:"rewards,omitempty" bson:"rewards,omitempty"`
	RequiredLocations []string `json:"requiredLocations,omitempty" yaml:"requiredLocations,omitempty" bson:"required_locations,omitempty"`
	InOneRound        bool     `json:"inOneRound,omitempty" yaml:"inOneRound,omitempty" bson:"in_one_round,omitempty"`
}

// Reward is an item granted on quest completion.
type Reward struct {
	Name     string `json:"name" yaml:"name" bson:"name"`
	Quantity int    `json:"quantity" yaml:"quantity" bson:"quantity"`
}

// Category returns the trader, or [GenericCategory] when the quest has none.
func (q Quest) Category() string {
	if q.Trader == "" {
		return GenericCategory
	}
	return q.Trader
}

// DisplayName returns the name if set, otherwise the ID.
func (q Quest) DisplayName() string {
	if q.Name != "" {
		return q.Name
	}
	return q.ID
}

// IsRootCandidate reports whether the quest seeds level 0 of the layout:
// a milestone with no prerequisites.
func (q Quest) IsRootCandidate() bool {
	return q.UnlockMilestone && len(q.Prerequisites) == 0
}

// Document is the dataset as delivered by the data source.
type Document struct {
	Quests []Quest `json:"quests" yaml:"quests" bson:"quests"`
}

// Hash returns a SHA-256 content hash of the document's canonical JSON form.
// Two documents with the same records in the same order hash identically
// regardless of the format they were read from.
func (d Document) Hash() string {
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
