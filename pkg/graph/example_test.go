package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

func ExampleWriteGraph() {
	g := model.New([]quest.Quest{
		{ID: "intro", UnlockMilestone: true},
		{ID: "next", Prerequisites: []string{"intro"}},
	})

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "intro",
	//       "milestone": true
	//     },
	//     {
	//       "id": "next"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "intro",
	//       "to": "next"
	//     }
	//   ]
	// }
}

func ExampleReadGraph() {
	input := `{
		"nodes": [{"id": "intro", "milestone": true}, {"id": "next"}],
		"edges": [{"from": "intro", "to": "next"}]
	}`
	g, err := graph.ReadGraph(strings.NewReader(input))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Quests:", g.Len())
	fmt.Println("Prerequisites of next:", g.Prerequisites("next"))
	// Output:
	// Quests: 2
	// Prerequisites of next: [intro]
}

func ExampleFromResult() {
	g := model.New([]quest.Quest{
		{ID: "R", UnlockMilestone: true},
		{ID: "M1", Prerequisites: []string{"R"}},
		{ID: "M2", Prerequisites: []string{"R"}},
		{ID: "F", Prerequisites: []string{"M1", "M2"}},
	})
	l := graph.FromResult(g, layout.Compute(g), "")

	for _, n := range l.Nodes {
		fmt.Printf("%s level=%d x=%v y=%v\n", n.ID, n.Level, n.X, n.Y)
	}
	fmt.Printf("bounds %vx%v\n", l.Width, l.Height)
	// Output:
	// R level=0 x=0 y=0
	// M1 level=1 x=-100 y=150
	// M2 level=1 x=100 y=150
	// F level=2 x=0 y=300
	// bounds 200x300
}
