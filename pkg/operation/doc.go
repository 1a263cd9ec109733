/*
Package operation wires the walk, decide, read, and write stages into the
single unit of work the command layer executes.

	+----------+     +----------+     +----------+     +----------+
	|  remote  | --> |  walker  | --> |  policy  | --> |  bundle  |
	| (fetch)  |     | (yield)  |     | (decide) |     | (write)  |
	+----------+     +----------+     +----------+     +----------+
	                                       |
	                                       v
	                                 +----------+
	                                 |  status  |
	                                 | (report) |
	                                 +----------+

🎯 Purpose:
- Resolves the input to a walkable directory, fetching remotes first
- Applies the rule set to every candidate the walker yields
- Streams accepted contents into the artifact, failures into the error log
- Reports per-file progress and the final summary

🔄 Flow:
1. Remote inputs are materialized into a staging directory
2. The walker yields regular files in lexical order
3. Each path gets exactly one verdict from the rule set
4. Included files are read, checked for UTF-8, and appended to the artifact
5. Unreadable files are reported and logged, never fatal

⚡ Concurrency:
- The synchronous path processes files inline in walk order
- The async path reads contents on a bounded worker pool while a single
  writer drains results in walk order, so both modes produce
  byte-identical artifacts

📝 Design Philosophy:
- One operation per run: no shared state between invocations
- Per-file problems degrade the run, they do not abort it
- The walk order is the only ordering authority
*/
package operation
