/*
Package operation implements the core business logic for manifest-driven patch runs.

	+-------------+
	|  Operation  |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|   Engine    |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Orchestrates applying a ruleset manifest to its target files
- Expands target globs into concrete file lists
- Coordinates between the patch engine and the status package

🔄 Flow:
1. Expands the manifest's target globs
2. Runs every rule over each file through the engine
3. Delegates file storage to the status package
4. Reports outcomes via the reporter

⚡ Key Responsibilities:
- Target glob expansion
- Sequential or parallel file processing
- Optional pre-edit backups
- Error handling for batch runs

📝 Design Philosophy:
The operation package stays focused on orchestration. It never touches the
file system directly; all I/O goes through the status manager, and all text
transformation goes through the patch engine.
*/
package operation
