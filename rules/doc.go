// Package rules evaluates the collision and clearance rule set over a
// fully-resolved scene.
//
// Check is a pure function from a Scene to issues and warnings. The rules
// are independent of one another: evaluation order only affects report
// ordering, never which findings exist, so re-running on an unmodified
// scene yields the identical result. No rule ever aborts a scan; a pair a
// rule cannot judge (degenerate segment, missing font metadata) simply
// does not trigger it.
package rules
