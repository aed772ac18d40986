// Package svg draws a computed quest layout as a standalone SVG document.
//
// Quests are rounded boxes centred on their layout positions, filled with a
// colour per quest group. Edges run as cubic curves from the bottom of a
// prerequisite to the top of its dependent. Milestones get a heavier outline;
// quests placed by the residue policy get a dashed one.
//
// When a quest is selected, it and its direct neighbourhood are highlighted
// and everything else is dimmed:
//
//	data := svg.Render(g, res, svg.WithSelected("intro"))
//
// Edges whose endpoints have no position are not drawn.
package svg
