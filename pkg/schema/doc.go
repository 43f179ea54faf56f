// Package schema provides the serialization format for computed gallery
// layouts.
//
// A [Layout] is the wire form of one layout pass: the container frame, the
// options that produced it, and one positioned [Tile] per image. It is used
// for JSON export, the layout cache and re-rendering without recomputation.
//
// # Converting Between Types
//
//	// Engine result → serialized (for JSON/cache)
//	l := schema.FromResult(res, images, opts)
//
//	// Serialized → engine placements (for rendering)
//	res := l.Result()
//
// # Layout Serialization
//
//	data, _ := schema.Marshal(l)
//	l, _ := schema.Unmarshal(data)
//
//	schema.WriteLayoutFile(l, "gallery.layout.json")
//	l, _ := schema.ReadLayoutFile("gallery.layout.json")
//
// # Tile Metadata
//
// Tiles carry the image metadata keys the renderers understand:
//
//	path      Image file, relative to the manifest directory
//	caption   Label drawn under the tile
//	alt       Accessible description
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package schema
