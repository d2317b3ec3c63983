// SPDX-License-Identifier: MPL-2.0

package session

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// CallKey is the reserved sub-task configuration key recording the
	// dotted command reference the sub-task invokes.
	CallKey = "call>"

	// ExportKey is the sub-task configuration key holding parameters
	// exported to that sub-task's children.
	ExportKey = "export"

	// SubtaskKeyPrefix prefixes the generated sub-task keys ("+subtask0", ...).
	SubtaskKeyPrefix = "+subtask"
)

type (
	// Call is a dotted command reference used as a sub-task target.
	Call string

	// Named is implemented by registered targets that know their own dotted
	// reference (functions and classes from package callable).
	Named interface {
		QualifiedName() string
	}

	// Env is the Session Environment of one invocation. It is not safe for
	// concurrent use; the runner is single-threaded and user code may call
	// into it only synchronously.
	Env struct {
		config   map[string]any
		keys     []string
		state    *orderedmap.OrderedMap[string, any]
		exports  *orderedmap.OrderedMap[string, any]
		subtasks *orderedmap.OrderedMap[string, map[string]any]
		index    int
		children *ChildExports
	}

	// Option configures an Env.
	Option func(*Env)

	// ChildExports collects parameters exported to the children of the next
	// declared sub-task. The handle stays bound to that sub-task: writes made
	// after AddSubtask still land in its "export" mapping.
	ChildExports struct {
		index  int
		values map[string]any
	}
)

// WithKeyOrder records the source order of the configuration keys, as
// reported by ConfigKeys.
func WithKeyOrder(keys []string) Option {
	return func(e *Env) {
		e.keys = slices.Clone(keys)
	}
}

// New creates an Env seeded with the given configuration. The configuration
// map is copied; later changes to the caller's map are not observed.
func New(config map[string]any, opts ...Option) *Env {
	if config == nil {
		config = map[string]any{}
	}
	e := &Env{
		config:   maps.Clone(config),
		state:    orderedmap.New[string, any](),
		exports:  orderedmap.New[string, any](),
		subtasks: orderedmap.New[string, map[string]any](),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns a shallow copy of the configuration.
func (e *Env) Config() map[string]any {
	return maps.Clone(e.config)
}

// ConfigKeys returns the configuration keys in source order. Keys without a
// recorded position follow in sorted order.
func (e *Env) ConfigKeys() []string {
	keys := make([]string, 0, len(e.config))
	seen := make(map[string]bool, len(e.config))
	for _, k := range e.keys {
		if _, ok := e.config[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(e.config)-len(keys))
	for k := range e.config {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

// Param returns one configuration value.
func (e *Env) Param(key string) (any, bool) {
	v, ok := e.config[key]
	return v, ok
}

// SetState upserts a persisted state parameter.
func (e *Env) SetState(key string, value any) {
	e.state.Set(key, value)
}

// Export upserts an exported parameter.
func (e *Env) Export(key string, value any) {
	e.exports.Set(key, value)
}

// ExportChildren returns the export handle of the next sub-task to be
// declared. Repeated calls before that declaration return the same handle.
func (e *Env) ExportChildren() *ChildExports {
	if e.children == nil || e.children.index != e.index {
		e.children = &ChildExports{index: e.index, values: map[string]any{}}
	}
	return e.children
}

// AddSubtask declares a sub-task under the next generated key.
//
// target may be a Named registered target or a Call reference (recorded
// under CallKey alongside extra), a configuration map (merged with extra,
// extra winning on collisions), or nil (extra alone). The merged
// configuration must encode as JSON; otherwise a *SerializationError is
// returned and nothing is recorded.
func (e *Env) AddSubtask(target any, extra map[string]any) error {
	var cfg map[string]any
	switch t := target.(type) {
	case nil:
		cfg = cloneOrEmpty(extra)
	case map[string]any:
		cfg = cloneOrEmpty(t)
		maps.Copy(cfg, extra)
	case Call:
		if t == "" {
			return fmt.Errorf("%w: empty command reference", ErrInvalidSubtaskTarget)
		}
		cfg = cloneOrEmpty(extra)
		cfg[CallKey] = string(t)
	case Named:
		name := t.QualifiedName()
		if name == "" {
			return fmt.Errorf("%w: target has no qualified name", ErrInvalidSubtaskTarget)
		}
		cfg = cloneOrEmpty(extra)
		cfg[CallKey] = name
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidSubtaskTarget, target)
	}

	if e.children != nil && e.children.index == e.index {
		switch explicit := cfg[ExportKey].(type) {
		case nil:
			cfg[ExportKey] = e.children.values
		case map[string]any:
			// Explicit keys win; the handle adopts the merged map so later
			// writes still land in this sub-task.
			merged := maps.Clone(e.children.values)
			maps.Copy(merged, explicit)
			e.children.values = merged
			cfg[ExportKey] = merged
		}
	}

	key := SubtaskKeyPrefix + strconv.Itoa(e.index)
	if _, err := json.Marshal(cfg); err != nil {
		return &SerializationError{Field: key, Err: err}
	}

	e.subtasks.Set(key, cfg)
	e.index++
	return nil
}

// SubtaskCount returns the number of sub-tasks declared so far.
func (e *Env) SubtaskCount() int {
	return e.index
}

// Set upserts an exported child parameter.
func (c *ChildExports) Set(key string, value any) {
	c.values[key] = value
}

// Get returns an exported child parameter.
func (c *ChildExports) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of exported child parameters.
func (c *ChildExports) Len() int {
	return len(c.values)
}

// SubtaskKey returns the generated key of the sub-task this handle is bound to.
func (c *ChildExports) SubtaskKey() string {
	return SubtaskKeyPrefix + strconv.Itoa(c.index)
}

func cloneOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return maps.Clone(m)
}
