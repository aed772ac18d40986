package graph

import (
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// =============================================================================
// Graph - Quest Graph Serialization
// =============================================================================

// Graph is the node-link serialization of a quest graph.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// =============================================================================
// Node - Unified Node Type
// =============================================================================

// Node is the node type shared by [Graph] and [Layout]. Position fields are
// only set inside a Layout.
type Node struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name,omitempty" bson:"name,omitempty"`
	Group     string  `json:"group,omitempty" bson:"group,omitempty"`
	Trader    string  `json:"trader,omitempty" bson:"trader,omitempty"`
	Milestone bool    `json:"milestone,omitempty" bson:"milestone,omitempty"`
	Level     int     `json:"level,omitempty" bson:"level,omitempty"`
	X         float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y         float64 `json:"y,omitempty" bson:"y,omitempty"`
	Phase     string  `json:"phase,omitempty" bson:"phase,omitempty"` // rooted, swept or forced
}

// DisplayLabel returns the name if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Edge is a prerequisite relation: From must be completed before To.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// =============================================================================
// Model ↔ Graph Conversion
// =============================================================================

// FromModel converts a quest graph to its serialization format.
// Nodes keep dataset order; edges keep prerequisite order.
func FromModel(g *model.Graph) Graph {
	out := Graph{
		Nodes: make([]Node, 0, g.Len()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, id := range g.IDs() {
		q, _ := g.Quest(id)
		out.Nodes = append(out.Nodes, nodeFromQuest(q))
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}
	return out
}

// ToModel rebuilds a quest graph from its serialization. Each edge becomes a
// prerequisite of its target; edges naming unknown nodes are kept as dangling
// prerequisites, as they would be in a dataset.
func ToModel(gj Graph) *model.Graph {
	prereqs := make(map[string][]string, len(gj.Nodes))
	for _, e := range gj.Edges {
		prereqs[e.To] = append(prereqs[e.To], e.From)
	}
	quests := make([]quest.Quest, 0, len(gj.Nodes))
	for _, n := range gj.Nodes {
		quests = append(quests, quest.Quest{
			ID:              n.ID,
			Name:            n.Name,
			Group:           n.Group,
			Trader:          n.Trader,
			UnlockMilestone: n.Milestone,
			Prerequisites:   prereqs[n.ID],
		})
	}
	return model.New(quests)
}

// nodeFromQuest is the single point of conversion for quest → Node.
func nodeFromQuest(q *quest.Quest) Node {
	return Node{
		ID:        q.ID,
		Name:      q.Name,
		Group:     q.Group,
		Trader:    q.Trader,
		Milestone: q.UnlockMilestone,
	}
}
