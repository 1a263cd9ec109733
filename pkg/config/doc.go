/*
Package config manages run configuration loading and validation for repo2file.

	            +-------------+
	            |   Config    |
	            | (one run)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+----+
	|   YAML    | |  JSON   | |   HCL    |
	|  loader   | | loader  | |  loader  |
	+-----------+ +---------+ +----------+

🎯 Purpose:
- Loads run configuration from .repo2file files
- Validates configuration values before any traversal
- Keeps file values and flag overrides in one merged struct
- Supports YAML, JSON, and HCL formats

🔄 Flow:
1. Discover probes the working directory for a candidate file
2. Load parses it strictly (unknown fields are errors)
3. Flag overrides are applied by the command layer
4. Validate enforces cross-field rules once, fail-fast

⚡ Formats:
- Extension picks the parser (.yaml/.yml, .json, .hcl)
- Extensionless .repo2file is tried as YAML, then HCL
- HCL configs can reference env.VAR values

📝 Design Philosophy:
- Config describes a run, not the tool: no global state
- Strict decoding so typos fail loudly instead of being ignored
- Validation lives with the struct, not with each parser
*/
package config
