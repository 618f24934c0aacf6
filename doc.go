// Package tilekit loads tile maps & animated entities for 2D games.
//
// Maps (Tiled JSON or TMX) are built once into rendered layers, a list of
// blocking rectangles and an optional player start. Entities are sliced
// from a frame sheet and moved each tick with axis separated collision
// against a map's blocks, picking their animation frame as they go.
//
// Nothing here is safe for concurrent use; a single frame driver owns
// every map & entity.
package tilekit
