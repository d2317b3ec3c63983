// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

func TestNewOptions(t *testing.T) {
	t.Parallel()

	o := newOptions(nil)
	if o.maxFileSize != DefaultMaxFileSize || !o.concrete || o.displayName() != unnamedDocument {
		t.Errorf("defaults = %+v, display %q", o, o.displayName())
	}

	o = newOptions([]Option{WithMaxFileSize(10), WithConcrete(false), WithFilename("callrun.cue")})
	if o.maxFileSize != 10 || o.concrete || o.displayName() != "callrun.cue" {
		t.Errorf("options = %+v, display %q", o, o.displayName())
	}
}

func TestValidate_UnnamedDocument(t *testing.T) {
	t.Parallel()

	_, err := Validate([]byte(testSchema), []byte(`{"name": 1, "count": 0}`), "#Settings")
	if err == nil {
		t.Fatal("expected type error")
	}
	if !strings.Contains(err.Error(), unnamedDocument) {
		t.Errorf("error %q should name %s", err, unnamedDocument)
	}
}
