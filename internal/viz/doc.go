// Package viz draws the memory tree in the terminal.
//
// A [Canvas] packs 2x4 dots into each braille cell and remembers one colour
// per cell. [Preview] projects a live scene onto a canvas through the
// scene camera, so the terminal shows the same view the window would.
package viz
