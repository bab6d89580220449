/*
Package patch implements ordered find/replace transformation of file content.

	+-------------+
	|    Rules    |
	|  (Ordered)  |
	+------+------+
	       |
	+------+------+
	|   Engine    |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Applies an ordered list of patch rules to text content
- Supports literal substring and RE2 regex matching
- Supports capture-group replacement templates
- Reports per-rule outcomes (matched or silently skipped)

🔄 Flow:
1. Rules are validated (exactly one of pattern/literal, regex compiles)
2. Each rule is applied to the output of the previous rule, in order
3. The result carries the patched content plus one outcome per rule
4. A non-matching rule is a no-op unless strict mode is enabled

⚡ Key Responsibilities:
- Sequential rule application
- Match counting per rule
- Optional per-rule file filtering via glob
- Strict-mode anchor verification

📝 Design Philosophy:
The engine is deliberately dumb: it treats content as raw text and never
parses it. That keeps the package small and predictable, at the cost of the
classic regex-patcher fragility: an anchor that no longer matches is skipped
without complaint. Callers that cannot tolerate that use strict mode.
*/
package patch
