/*
Package policy decides which files belong in the aggregated output.

	             +---------------+
	             | DefaultPolicy |
	             | (built-in)    |
	             +-------+-------+
	                     |
	     Overrides ------+------ Resolve()
	                     |
	             +-------v-------+
	             |    RuleSet    |
	             |  (immutable)  |
	             +-------+-------+
	                     |
	     path -----------+------ Decide() ----> Verdict

🎯 Purpose:
- Merges built-in default ignore rules with per-run overrides
- Evaluates one candidate path at a time to Include or Exclude
- Keeps the decision logic pure: no filesystem access, no globals

🔄 Flow:
1. Resolve(DefaultIgnore(), overrides) builds a RuleSet once per run
2. Malformed glob patterns and include/ignore conflicts fail here, fast
3. The walker feeds candidate paths; Decide returns a Verdict per path
4. The RuleSet is read-only after Resolve and safe to share across goroutines

⚡ Matching semantics:
- IncludeOnly mode: a path is included iff it ends with one of the
  include entries, on whole-component boundaries ("main.go" matches
  "src/main.go", never "xmain.go"). Ignore rules, defaults included,
  have no effect in this mode.
- IgnoreBased mode, strict precedence: file rules first (glob against
  the full path text and its final component, plus literal component
  suffix), then directory names (any component, exact and
  case-sensitive), then Include.

📝 Design Philosophy:
Every configured file entry acts as both a glob and a literal suffix,
expanded at resolve time into tagged FileRule values. Callers never
pre-classify "Cargo.lock" vs "*.lock"; both just work. All matching is
case-sensitive on every platform.
*/
package policy
