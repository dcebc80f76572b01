// Package render paints a computed [layout.Geometry] onto a [canvas.Canvas].
//
// # Overview
//
// Rendering is the last stage of the diagram pipeline:
//
//	stmts, _ := parse.Parse(src)
//	d, _ := model.Build(stmts)
//	g, _ := layout.Compute(d, layout.DefaultConfig())
//	c, _ := render.Render(g)
//	fmt.Println(c.String())
//
// The renderer makes no layout decisions of its own. Every coordinate comes
// from the geometry, so two renders of the same geometry are identical.
//
// # Paint Order
//
// Elements are painted in a fixed order, each layer overwriting the last:
//
//  1. Participant boxes at the top and bottom of every column.
//  2. Lifelines between the boxes, joined to them with tee glyphs.
//  3. Message arrows, crossing intermediate lifelines.
//  4. Message labels.
//
// # Glyph Sets
//
// [Unicode] draws with box-drawing characters and is the default. [ASCII]
// produces output that contains only printable ASCII, for terminals and
// files where box-drawing characters are not available. Select one with
// [WithGlyphs] or [WithASCII].
package render
