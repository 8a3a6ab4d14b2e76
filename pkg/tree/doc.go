// Package tree renders labeled hierarchies as directory-style ASCII trees.
//
// # Overview
//
// The package turns ordered collections of arbitrary items into a flat,
// pre-ordered sequence of text lines whose left margin reproduces the familiar
// output of the tree(1) command:
//
//	Subnets:
//	├──subnet-01 : eu-west-2a : 10.0.1.0/24
//	│  └──Instances:
//	│     └──i-01 : t3.micro : running : 10.0.1.5
//	└──subnet-02 : eu-west-2b : 10.0.2.0/24
//
// There is no tree data structure. A tree is the composition of [Render]
// calls: an item renderer may call [Render] again for the item's own children,
// passing the [Path] it was given one level further down.
//
// # Ancestry Paths
//
// A [Path] records, for every level from the root's children down to the
// current node, whether the node at that level is the last of its siblings.
// [Prefix] maps a path to the connector string for one line. Every unit is
// [UnitWidth] cells wide so that columns line up at any depth.
//
// # Grafting
//
// Independently rendered subtrees, each produced as if it were a root, can be
// attached as branches of a larger tree with [Graft], [GraftBranch] or
// [Assemble]. Grafting only rewrites the outermost connector and the
// continuation column; prefixes computed inside the subtree are preserved.
//
// # Errors
//
// Item renderers return errors. [Render] stops at the first failing item and
// returns the error with no lines: a truncated tree would read as a complete
// one. The package never logs or substitutes content.
//
// All functions are pure. Distinct renders may run concurrently; the returned
// slices are owned by the caller.
package tree
