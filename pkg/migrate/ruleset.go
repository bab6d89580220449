// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package migrate

import (
	"github.com/walteh/patchrc/pkg/patch"
)

// 🎯 TargetFile is the single file the builtin migration edits. It is not
// configurable at runtime; the anchors below are written against its
// expected content.
const TargetFile = "tfprovidertest.go"

// shouldExcludeFunc is the helper inserted immediately after isBaseClassFile.
// The leading and trailing newlines are part of the insertion.
const shouldExcludeFunc = `
// shouldExcludeFile checks if a file path matches any of the exclude patterns
func shouldExcludeFile(filePath string, excludePaths []string) bool {
	for _, pattern := range excludePaths {
		// Try matching the full path
		if matched, _ := filepath.Match(pattern, filePath); matched {
			return true
		}
		// Try matching just the base name
		if matched, _ := filepath.Match(pattern, filepath.Base(filePath)); matched {
			return true
		}
		// Try matching with Contains for patterns like "vendor/"
		if strings.Contains(filePath, strings.TrimSuffix(pattern, "/")) {
			return true
		}
	}
	return false
}
`

// isBaseClassFileAnchor matches the full isBaseClassFile function so the
// helper can be inserted right after its closing brace.
const isBaseClassFileAnchor = `(// isBaseClassFile checks if a file is a base class file that should be excluded\nfunc isBaseClassFile\(filePath string\) bool \{\n\tbase := filepath\.Base\(filePath\)\n\treturn strings\.HasPrefix\(base, "base_"\) \|\| strings\.HasPrefix\(base, "base\."\)\n\})`

// parseTestFileOldSignature is the signature block being extended.
const parseTestFileOldSignature = `// T016: Test file parser - now supports multiple naming conventions
func parseTestFile(file *ast.File, fset *token.FileSet, filePath string) *TestFileInfo {`

// parseTestFileNewSignature adds the customPatterns parameter.
const parseTestFileNewSignature = `// T016: Test file parser - now supports multiple naming conventions
func parseTestFile(file *ast.File, fset *token.FileSet, filePath string, customPatterns []string) *TestFileInfo {`

// isTestFunctionCallAnchor locates the one call site inside parseTestFile
// that passes nil instead of the new parameter.
const isTestFunctionCallAnchor = `(\t\t// Check if this is a test function using flexible matching\n\t\tif !isTestFunction\(name, )nil(\) \{)`

// 🔧 Rules returns the builtin migration's ordered rule list
func Rules() []patch.Rule {
	return []patch.Rule{
		{
			Name:    "add-should-exclude-file",
			Pattern: isBaseClassFileAnchor,
			Replace: "${1}" + shouldExcludeFunc,
		},
		{
			Name:    "extend-parse-test-file-signature",
			Literal: parseTestFileOldSignature,
			Replace: parseTestFileNewSignature,
		},
		{
			Name:    "pass-custom-patterns",
			Pattern: isTestFunctionCallAnchor,
			Replace: "${1}customPatterns${2}",
		},
	}
}
