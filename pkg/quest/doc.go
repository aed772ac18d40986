// Package quest defines the quest record and the dataset document that the
// graph model and layout engine consume.
//
// A dataset is a document of the shape
//
//	{ "quests": [ { "id": "...", "prerequisites": ["..."], ... }, ... ] }
//
// encoded as JSON or YAML. Records are immutable once decoded. The loader
// checks only that the document parses; dangling prerequisite ids, cycles and
// duplicate ids are data-quality issues tolerated downstream by
// [github.com/matzehuels/questgraph/pkg/model].
package quest
