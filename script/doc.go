// Package script implements the intermediate representation for engine
// configuration scripts, together with the schema model and validator
// that decide whether a parsed script is legal.
//
// A script describes textures, materials, GUI themes, scenes and other
// assets in a small declarative object/property/argument syntax:
//
//	engine {
//	  settings {
//	    basic {
//	      resolution(1280, 720)
//	      fullscreen(false)
//	    }
//	  }
//	}
//
// The tokenizer and grammar live outside this package; a compiler hands
// the core a *Tree, which is a forest of object nodes. This package
// provides:
//
//   - The value model: eight value kinds (boolean, color, enumerable,
//     floating point, integer, string, 2D/3D vector) plus an optional
//     unit suffix such as "px" or "sec".
//   - Tree nodes and tree operations: Find, Search, Property, Argument,
//     merge (Append) with three duplicate policies, fully-qualified
//     names, and debug printing.
//   - The schema model: ClassDefinition / PropertyDefinition and their
//     declaration wrappers, built once through a fluent builder and
//     shared read-only across any number of validation runs.
//   - The Validator: resolves multiple inheritance and cross-scope name
//     references, aggregates declarations with memoization, checks a
//     tree against a schema root and collects every violation instead
//     of stopping at the first.
//
// Lookup misses never panic and never allocate errors: they return
// sentinel nodes whose Valid() reports false, so chained lookups like
// tree.Find("engine").Property("renderer").Argument(0) are always safe.
//
// Serialization of trees lives in the sibling codec package.
package script
