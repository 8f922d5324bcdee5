// Package output provides response types and formatters for treeflect CLI output.
package output

import (
	"fmt"
	"strings"
)

// Texter is implemented by responses that have a human readable form.
type Texter interface {
	Text(s Styles) string
}

// CommandResult is the outcome of running one command against the tree.
// Result is empty when the command succeeded without output.
type CommandResult struct {
	Command string `json:"command"`
	Result  string `json:"result"`
}

// ExecResponse is the output of exec.
type ExecResponse struct {
	State   string          `json:"state,omitempty"`
	Results []CommandResult `json:"results"`
	Saved   bool            `json:"saved,omitempty"`
}

func (r ExecResponse) Text(s Styles) string {
	var b strings.Builder
	for _, res := range r.Results {
		if res.Result == "" {
			continue
		}
		if len(r.Results) > 1 {
			b.WriteString(s.Command.Render(res.Command))
			b.WriteByte('\n')
		}
		b.WriteString(res.Result)
		b.WriteByte('\n')
	}
	if r.Saved {
		b.WriteString(s.Muted.Render("saved " + r.State))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseResponse is the output of parse.
type ParseResponse struct {
	Command string   `json:"command"`
	Tokens  []string `json:"tokens"`
}

func (r ParseResponse) Text(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Heading.Render(r.Command))
	b.WriteByte('\n')
	for i, tok := range r.Tokens {
		fmt.Fprintf(&b, "%s %s\n", s.Muted.Render(fmt.Sprintf("%2d", i)), tok)
	}
	return b.String()
}

// PathsResponse is the output of paths.
type PathsResponse struct {
	Query string   `json:"query,omitempty"`
	Paths []string `json:"paths"`
	Count int      `json:"count"`
}

func (r PathsResponse) Text(s Styles) string {
	var b strings.Builder
	for _, p := range r.Paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// GenerateResponse is the output of gen.
type GenerateResponse struct {
	Patterns []string `json:"patterns"`
	Files    []string `json:"files"`
	Types    []string `json:"types"`
}

func (r GenerateResponse) Text(s Styles) string {
	var b strings.Builder
	for _, f := range r.Files {
		fmt.Fprintf(&b, "%s %s\n", s.Muted.Render("wrote"), f)
	}
	fmt.Fprintf(&b, "%d types\n", len(r.Types))
	return b.String()
}

// ErrorResponse wraps an error for output.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

func (r ErrorResponse) Text(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Error.Render("error: " + r.Error.Message))
	b.WriteByte('\n')
	if len(r.Error.Suggestions) > 0 {
		b.WriteString("did you mean:\n")
		for _, sug := range r.Error.Suggestions {
			fmt.Fprintf(&b, "  %s\n", sug)
		}
	}
	return b.String()
}
