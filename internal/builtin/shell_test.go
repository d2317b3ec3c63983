// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/invowk/callrun/internal/invoke"
	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/session"
)

func TestScript_RunCapture(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env, err := run(t, "builtin.shell.Script", map[string]any{
		"dir":     dir,
		"env":     map[string]any{"GREETING": "hi", "N": 3},
		"script":  `echo "$GREETING $N"; pwd`,
		"capture": true,
	})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := env.Result().ExportParams.Get(StdoutExportKey)
	if got != "hi 3\n"+dir {
		t.Errorf("stdout = %q, want %q", got, "hi 3\n"+dir)
	}
}

func TestScript_RunExitStatus(t *testing.T) {
	t.Parallel()

	_, err := run(t, "builtin.shell.Script.run", map[string]any{"script": "exit 3", "capture": true})
	var exitErr *ScriptExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 3 {
		t.Fatalf("error = %v, want exit status 3", err)
	}
	var phaseErr *invoke.PhaseError
	if !errors.As(err, &phaseErr) || phaseErr.Phase != invoke.PhaseInvoke {
		t.Errorf("phase = %v, want %v", phaseErr, invoke.PhaseInvoke)
	}
}

func TestScript_RunParseError(t *testing.T) {
	t.Parallel()

	_, err := run(t, "builtin.shell.Script.run", map[string]any{"script": "if then fi"})
	if !errors.Is(err, invoke.ErrInvocation) {
		t.Errorf("error = %v, want ErrInvocation", err)
	}
}

func TestScript_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		script    string
		wantValid bool
	}{
		{script: "echo ok | tr a-z A-Z", wantValid: true},
		{script: "if true; then", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			t.Parallel()

			env, err := run(t, "builtin.shell.Script.check", map[string]any{"script": tt.script})
			if err != nil {
				t.Fatal(err)
			}
			state := env.Result().StateParams
			if v, _ := state.Get(ScriptValidStateKey); v != tt.wantValid {
				t.Errorf("%s = %v, want %v", ScriptValidStateKey, v, tt.wantValid)
			}
			if _, hasErr := state.Get(ScriptErrorStateKey); hasErr == tt.wantValid {
				t.Errorf("%s present = %v, want %v", ScriptErrorStateKey, hasErr, !tt.wantValid)
			}
		})
	}
}

func TestScript_InvalidConstructorArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  map[string]any
	}{
		{name: "env is a list", cfg: map[string]any{"env": []any{"A=1"}, "script": "true"}},
		{name: "env value is an object", cfg: map[string]any{"env": map[string]any{"A": map[string]any{}}, "script": "true"}},
		{name: "dir is a number", cfg: map[string]any{"dir": 5, "script": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, "builtin.shell.Script", tt.cfg)
			var phaseErr *invoke.PhaseError
			if !errors.As(err, &phaseErr) || phaseErr.Phase != invoke.PhaseConstruct {
				t.Errorf("error = %v, want construct failure", err)
			}
		})
	}
}

func TestNewScript_DecodesOptions(t *testing.T) {
	t.Parallel()

	s, err := newScript(context.Background(), session.New(nil), callable.Args{
		"env": map[string]any{"B": json.Number("2"), "A": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.dir != "." {
		t.Errorf("dir = %q, want default %q", s.dir, ".")
	}
	extra := s.env[len(s.env)-2:]
	if !slices.Equal(extra, []string{"A=true", "B=2"}) {
		t.Errorf("env tail = %v, want [A=true B=2]", extra)
	}
}
