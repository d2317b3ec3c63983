// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ResolutionFailedId Id = iota + 1
	BindingFailedId
	SerializationFailedId
	InvocationFailedId
	InputInvalidId
	OutputWriteFailedId
	ConfigLoadFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation link.
	HttpLink string

	// Issue is a catalog entry rendered below a failed run's diagnostic.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the named glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	resolutionFailedIssue = &Issue{
		id: ResolutionFailedId,
		mdMsg: `
# Command reference not found

The command reference did not resolve to a registered function or class.
References are tried as ` + "`module.function`" + ` (or ` + "`module.Class`" + `, which runs
the class's ` + "`run`" + ` method) first, and as ` + "`module.Class.method`" + ` only when the
leading path is not a registered module.

## Things you can try:
- List every registered reference:
~~~
$ callrun list
~~~
- Check the spelling of the module path and of the last segment
- Make sure the package registering the target is linked into the binary`,
	}

	bindingFailedIssue = &Issue{
		id: BindingFailedId,
		mdMsg: `
# Missing required parameter

The target declares a parameter without a default, and the ` + "`config`" + ` object of
the input document has no key of that name.

## Things you can try:
- Show the parameters the target binds:
~~~
$ callrun describe pkg.mod.function
~~~
- Add the missing key to ` + "`config`" + ` in the input document`,
	}

	serializationFailedIssue = &Issue{
		id: SerializationFailedId,
		mdMsg: `
# Session state is not serializable

A sub-task configuration, exported parameter or state parameter holds a value
that cannot be encoded as JSON (a function, a channel or a cyclic structure).

## Things you can try:
- Store plain strings, numbers, booleans, lists and objects only
- Pass command references to sub-tasks as dotted strings`,
	}

	invocationFailedIssue = &Issue{
		id: InvocationFailedId,
		mdMsg: `
# The target failed

The constructor, method or function returned an error or panicked. No output
document was written.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see the full error chain
- Re-run with ` + "`--log-level debug`" + ` to trace each phase`,
	}

	inputInvalidIssue = &Issue{
		id: InputInvalidId,
		mdMsg: `
# Invalid input document

The input must be a JSON object with a ` + "`config`" + ` object:

~~~json
{"config": {"table": "users", "limit": 10}}
~~~

## Things you can try:
- Validate the file with a JSON linter
- Raise ` + "`input.max_file_size`" + ` in the configuration for large documents`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Cannot write the output document

The result document is written to a temporary file next to the output path
and then renamed into place.

## Things you can try:
- Check that the output directory exists and is writable
- Check for free disk space`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ callrun config show
~~~
- Check the file for CUE syntax errors
- Remove unknown fields; the schema is closed`,
	}

	issues = map[Id]*Issue{
		resolutionFailedIssue.Id():    resolutionFailedIssue,
		bindingFailedIssue.Id():       bindingFailedIssue,
		serializationFailedIssue.Id(): serializationFailedIssue,
		invocationFailedIssue.Id():    invocationFailedIssue,
		inputInvalidIssue.Id():        inputInvalidIssue,
		outputWriteFailedIssue.Id():   outputWriteFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
