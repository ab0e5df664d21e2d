// Package blueprint is an in-memory visual-scripting graph that implements the
// [host] contract.
//
// # Model
//
// A [Graph] owns an ordered list of [Node] values. Each node is instantiated
// from a [Kind] and owns its [Pin] values exclusively. Pins carry a direction,
// a type and an optional default literal, and are linked symmetrically: an
// output pin links to input pins and vice versa, never to itself or to a pin
// on the same node, and execution pins only link to execution pins.
//
// Node kinds come in flavors. Generic kinds declare their pins up front;
// function-call, variable and event kinds derive their pins from the symbol
// bound to the node, which is why binding happens before pin allocation.
//
// # Library
//
// A [Library] is both the type registry (type tag to [Kind]) and the symbol
// library (functions, variables, classes with events). Libraries are written
// in TOML:
//
//	[[kind]]
//	name = "K2Node_CallFunction"
//	flavor = "function_call"
//
//	[[function]]
//	name = "PrintString"
//	display_name = "Print String"
//	  [[function.param]]
//	  name = "InString"
//	  category = "string"
//
//	[[class]]
//	name = "Actor"
//	path = "/Script/Engine.Actor"
//	  [[class.event]]
//	  name = "ReceiveBeginPlay"
//
// [DefaultLibrary] returns the built-in library; [LoadLibrary] reads a file
// and [Library.Merge] layers one library over another.
//
// # Undo
//
// Every mutation is a discrete edit. While a transaction opened with
// [Graph.Begin] is active the edits are journaled; committing pushes the
// transaction onto the undo history and [Graph.Undo] reverts it edit by edit.
//
// # Concurrency
//
// Graphs are not safe for concurrent use.
//
// [host]: github.com/matzehuels/graphclip/pkg/host
package blueprint
