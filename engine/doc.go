// Package engine runs transformation rules over unified documents.
//
// A Pipeline is an ordered list of stages sharing one Context. The
// dispatch stage walks the tree in pre-order and applies every
// matching rule per node, priority-ordered, in three category passes
// per element (element rules, property rules, extension rules). The
// restructuring stage walks in strict post-order and runs two passes,
// first synthesizing replacement siblings, then cleaning converted
// nodes up, so a synthesized copy always exists before its source is
// deleted. Each stage runs under a strategy mode that decides how the
// resolved type layer is required, consulted, or ignored. After the
// last stage the pipeline audits tree integrity: link cycles are
// errors, parent or owner mismatches are warnings.
//
// Key capabilities:
//   - Stable priority ordering with registration order as tiebreak
//   - Register-time capability probing of rule categories
//   - Snapshot walks with patch queues, so rules may mutate the tree
//     they are being dispatched over
//   - Per-rule, per-kind conversion statistics
package engine
