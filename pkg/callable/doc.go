// SPDX-License-Identifier: MPL-2.0

// Package callable is the registration API for targets the runner can invoke.
//
// Go has no run-time import by name, so every invokable target is compiled
// into the binary and registered under a dotted module path together with an
// explicit parameter schema:
//
//	reg := callable.NewRegistry()
//	reg.MustModule("acme.etl").MustAdd(
//		callable.Must(callable.NewFunction("load", load,
//			callable.Required("table"),
//			callable.Optional("limit", 100),
//		)),
//	)
//
// A Class pairs a constructor with named methods. Constructors and methods
// declare an implicit leading receiver parameter ("self") that the binder
// skips. A Kwargs parameter marks a catch-all keyword receiver: the whole
// configuration is passed through unfiltered.
package callable
