// SPDX-License-Identifier: MPL-2.0

// Package document reads the runner's input document and writes its
// Result Document.
package document
