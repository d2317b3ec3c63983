// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates documents against embedded CUE schemas.
//
// Both the runner's configuration file (CUE) and its input document (JSON,
// which CUE accepts as-is) follow the same flow:
//
//  1. Check the document size
//  2. Compile the embedded schema and the document, then unify them
//  3. Validate, and optionally decode to a Go struct
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[Config](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Config",
//	    cueutil.WithFilename("config.cue"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes the CUE path of the offending field
//	}
//	return result.Value, nil
package cueutil
