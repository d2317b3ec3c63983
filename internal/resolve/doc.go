// SPDX-License-Identifier: MPL-2.0

// Package resolve turns a dotted command reference into a tagged Target.
//
// A reference is ambiguous between "module.function" and
// "module.Class.method". The function reading is tried first; the class
// reading is tried only when the leading path is not a registered module.
// A missing attribute in an existing module is reported immediately.
package resolve
