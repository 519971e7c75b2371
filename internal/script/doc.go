// Package script decodes edit scripts: an initial text and a list of
// moves to apply to it.
//
// Five formats are understood, chosen by file extension:
//
//	.txt (or none)  judge format: the text, a count n, then n lines "i j k"
//	.toml           text = "..." and [[ops]] tables with i, j, k
//	.yaml, .yml     text: ... and ops: [{i: .., j: .., k: ..}]
//	.json           {"text": "...", "ops": [[i, j, k], ...]}; ops may also be objects
//	.lua            sets the global text and calls move(i, j, k)
//
// Lua scripts run in a sandbox with only the base, table, string and math
// libraries, and are cancelled when their context is done.
package script
