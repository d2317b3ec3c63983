// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the runner packages:
// process exit codes and filesystem paths. Each type carries its own
// validation and is a leaf dependency importing only the standard library.
package types
