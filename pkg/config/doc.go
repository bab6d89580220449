/*
Package config manages ruleset manifest parsing and validation for patchrc.

	            +-------------+
	            |   Config    |
	            |  (Ruleset)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+-----+ +---+----+ +----+----+
	|   YAML    | |  JSON  | |   HCL   |
	+-----------+ +--------+ +---------+

🎯 Purpose:
- Loads patch rulesets from manifest files
- Validates rule definitions before they reach the engine
- Supports YAML, JSON and HCL formats

🔄 Flow:
1. Reads the manifest from disk
2. Picks the decoder from the file extension (.patchrc tries YAML then HCL)
3. Validates targets and rule definitions
4. Hands validated rules to the operation layer

📝 Design Philosophy:
The manifest is the source of truth for an apply run. The built-in migration
does not go through this package at all; its rules are compiled-in constants.
*/
package config
