// Package model defines the geometric primitives and entity types shared by
// the readers and the rule engine: axis-aligned boxes, line segments, marker
// templates and their rendered footprints, the per-file Scene aggregate, and
// the Issue/Warning report values.
//
// All types are plain values. A Scene is built once per input file by a
// reader, consumed by the rule engine, and discarded; nothing in this
// package mutates an entity after construction.
package model
