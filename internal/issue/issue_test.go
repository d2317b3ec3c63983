// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalog_Complete(t *testing.T) {
	t.Parallel()

	ids := []Id{
		ResolutionFailedId,
		BindingFailedId,
		SerializationFailedId,
		InvocationFailedId,
		InputInvalidId,
		OutputWriteFailedId,
		ConfigLoadFailedId,
	}

	values := Values()
	if len(values) != len(ids) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(ids))
	}
	for i, id := range ids {
		got := Get(id)
		if got == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if got.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, got.Id())
		}
		if strings.TrimSpace(string(got.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
		if values[i] != got {
			t.Errorf("Values()[%d] = issue %d, want %d", i, values[i].Id(), id)
		}
	}
	if Get(0) != nil {
		t.Error("Get(0) should return nil")
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	t.Parallel()

	i := &Issue{id: 99, docLinks: []HttpLink{"https://example.com/docs"}}
	links := i.DocLinks()
	links[0] = "changed"
	if i.docLinks[0] != "https://example.com/docs" {
		t.Error("DocLinks() exposed the backing slice")
	}
	if len(i.ExtLinks()) != 0 {
		t.Error("ExtLinks() should be empty")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(BindingFailedId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Missing required parameter") {
		t.Errorf("Render() output missing title:\n%s", out)
	}

	linked := &Issue{id: 100, mdMsg: "# Title", docLinks: []HttpLink{"https://example.com/a"}}
	out, err = linked.Render("notty")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "https://example.com/a") {
		t.Errorf("Render() output missing link:\n%s", out)
	}
}
