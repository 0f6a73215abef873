// Package dom holds the unified document model shared by every
// transformation stage: a parsed markup document as a flat arena of
// elements addressed by NodeID, with properties, markup-extension
// expressions, per-element diagnostics, and an optional resolved type
// layer on top of the raw structural tree.
//
// Parent and child links are arena indices rather than pointers, so a
// parent lookup is O(1) and the tree carries no pointer cycles. The
// arena never shrinks: removing an element from its parent detaches it,
// and the slot simply becomes unreachable for the remainder of the
// document's (single-conversion) lifetime.
package dom
