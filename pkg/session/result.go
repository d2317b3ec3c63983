// SPDX-License-Identifier: MPL-2.0

package session

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Result is the Result Document: the three mutable Session Environment
// fields in their output order.
type Result struct {
	SubtaskConfig *orderedmap.OrderedMap[string, map[string]any] `json:"subtask_config"`
	ExportParams  *orderedmap.OrderedMap[string, any]            `json:"export_params"`
	StateParams   *orderedmap.OrderedMap[string, any]            `json:"state_params"`
}

// Result snapshots the session state. The returned maps are copies; the
// sub-task configurations themselves are shared with the Env.
func (e *Env) Result() *Result {
	return &Result{
		SubtaskConfig: copyOrdered(e.subtasks),
		ExportParams:  copyOrdered(e.exports),
		StateParams:   copyOrdered(e.state),
	}
}

func copyOrdered[V any](src *orderedmap.OrderedMap[string, V]) *orderedmap.OrderedMap[string, V] {
	dst := orderedmap.New[string, V]()
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
	return dst
}
