// Package scene is the headless core of the memory tree view.
//
// A Context holds everything one mount builds: camera, orbit controls, the
// static decoration set from package geom, the interactive nodes and the
// hover state. Tick advances it by one frame; the Manager owns when a
// Context is built, driven and torn down, talking to the outside world only
// through the Renderer, EventSource, Scheduler and TextureLoader interfaces.
//
// Nothing here touches a GPU or a window, so every invariant can be checked
// in plain tests; package gui supplies the raylib implementations.
package scene
