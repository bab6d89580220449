/*
Package status manages target-file storage and patch status tracking.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Logs   |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads target files and writes patched content back safely
- Tracks per-file status (patched, unchanged, failed)
- Provides user-friendly reporting of rule outcomes
- Handles optional pre-edit backups

🔄 Flow:
1. Receives patched content from the operation layer
2. Writes it back with a single atomic rename
3. Tracks status changes and checksums
4. Reports changes in a user-friendly format

⚡ Key Responsibilities:
- File system operations
- Atomic overwrite (write temp, rename)
- Backup and restore of the pre-edit file
- Progress reporting

📝 Design Philosophy:
All file I/O for a patch run goes through this package. The overwrite is a
single atomic write attempt: if it fails, the original file was never
touched, so there is no partial-corruption state.
*/
package status
