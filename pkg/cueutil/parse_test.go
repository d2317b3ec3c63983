// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Settings: {
	name:     string
	count:    int & >=0
	enabled?: bool
}

#Doc: {
	config!: {...}
	...
}
`

type settings struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Enabled bool   `json:"enabled,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantErr  string
		wantName string
	}{
		{name: "cue document", data: "name: \"job\"\ncount: 3\n", wantName: "job"},
		{name: "json document", data: `{"name": "job", "count": 0, "enabled": true}`, wantName: "job"},
		{name: "type mismatch", data: `name: 1, count: 1`, wantErr: "name"},
		{name: "constraint violation", data: `name: "x", count: -1`, wantErr: "count"},
		{name: "closed definition", data: `name: "x", count: 1, extra: true`, wantErr: "extra"},
		{name: "missing field", data: `name: "x"`, wantErr: "count"},
		{name: "syntax error", data: `name: `, wantErr: "settings.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := ParseAndDecode[settings]([]byte(testSchema), []byte(tt.data), "#Settings", WithFilename("settings.cue"))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAndDecode() error = %v", err)
			}
			if res.Value.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", res.Value.Name, tt.wantName)
			}
			if !res.Unified.Exists() {
				t.Error("Unified value should exist")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "object config", data: `{"config": {"x": 1}}`},
		{name: "extra top-level keys allowed", data: `{"config": {}, "meta": [1, 2]}`},
		{name: "config not an object", data: `{"config": [1]}`, wantErr: true},
		{name: "config missing", data: `{"other": {}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Validate([]byte(testSchema), []byte(tt.data), "#Doc", WithFilename("input.json"))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_SizeLimit(t *testing.T) {
	t.Parallel()

	_, err := Validate([]byte(testSchema), []byte(`{"config": {}}`), "#Doc", WithMaxFileSize(4))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Validate() error = %v, want ErrFileTooLarge", err)
	}
	if !strings.Contains(err.Error(), "<input>") {
		t.Errorf("default filename missing from %q", err)
	}
}

func TestValidate_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := Validate([]byte(testSchema), []byte(`{}`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Errorf("Validate() error = %v, want missing definition", err)
	}
}
