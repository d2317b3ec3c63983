// SPDX-License-Identifier: MPL-2.0

// Package session holds the mutable state threaded through one invocation.
//
// An Env is created from the input configuration, handed to the invoked
// target, and snapshotted into a Result once the target returns. User code
// never touches the backing containers directly: state, exports and
// sub-task declarations go through SetState, Export, ExportChildren and
// AddSubtask.
package session
