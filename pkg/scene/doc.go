// Package scene provides the retained-mode scene tree used by the element
// catalogue and the pass runtime.
//
// A scene is an immutable tree of Nodes. Each Node pairs the state of one
// Element with its ordered children. Children are reached through the Child
// interface, so traversal code never needs to know which concrete kinds it is
// walking.
//
// # Core Types
//
// Element is the per-kind contract: attribute assignment, layout derivation,
// optional paint derivation and the closed set of accepted children. Node is
// the immutable instance of an Element. Text is the raw text leaf.
//
// # Building
//
// Nodes are only produced by a Builder:
//
//	label := scene.New[elements.Span](pass).
//	    Attr("size", "14").
//	    Content("Hello").
//	    MustBuild()
//
//	root := scene.New[elements.View](pass).
//	    Child(label).
//	    MustBuild()
//
// When a Pass is supplied, Build consults the positional slot the call maps to
// in the surrounding Cache. If the element state and children are structurally
// equal to what the same position built on the previous pass, the previous
// Node is returned unchanged.
//
// # Traversal
//
// Layout propagates LayoutOptions top-down and returns a LayoutNode tree with
// the same shape as the scene. Paint collects the optional PaintDetails of
// every node in pre-order. Collect pairs both into a flat Entry stream.
package scene
