// SPDX-License-Identifier: MPL-2.0

// Package invoke drives one resolve, bind, construct and invoke cycle.
//
// The direct form binds a function's parameters and calls it once. The
// constructed form binds the constructor, builds one instance, looks the
// method up on it, binds the method and calls it once. Every failure is
// reported as a *PhaseError naming the step that failed.
package invoke
