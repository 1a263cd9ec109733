/*
Package status renders the human-facing side of a run.

	            +-------------+
	            |  Reporter   |
	            | (UI/totals) |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	| Formatter |           | Spinner |
	| (lines)   |           | (fetch) |
	+-----------+           +---------+

🎯 Purpose:
- Per-file console lines through a pluggable FileFormatter
- A spinner while a remote source is being fetched
- A final summary with file counts, byte totals, and elapsed time

🔄 Flow:
1. The combine operation reports each file as added, skipped, or failed
2. The Reporter prints (respecting quiet/verbose) and tallies counts
3. Summary closes the run on the console

🤝 Interfaces:
- FileFormatter: formats per-file events

📝 Design Philosophy:
Console output is presentation, structured logging is diagnostics. The
Reporter owns the first and leaves the second to zerolog on the context,
so redirecting stderr never loses the machine-readable trail. Reporter
methods are mutex-guarded because the async read pipeline reports from
several goroutines.
*/
package status
