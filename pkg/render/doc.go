// Package render turns a [ladder.Ladder] into visual artifacts.
//
// Rendering is split into a geometry step and format sinks, so every output
// format draws from identical coordinates:
//
//   - [Compute] derives a [Layout]: column x-positions, row y-positions and
//     label bands for a given frame size
//   - [SVG] draws the ladder as a scalable vector image, optionally with
//     one participant's path highlighted
//   - [Text] draws a box-drawing version for the terminal
//   - [ToDOT] plus [DOTSVG] render the resulting participant→result
//     mapping as a bipartite node-link diagram via Graphviz
//   - [ToPNG] and [ToPDF] rasterize SVG output via rsvg-convert
//
// [Layout.HitTest] inverts the geometry: given a screen coordinate it
// identifies the column a user pointed at from the layout alone, with no
// hidden renderer state involved in hit resolution.
package render
