// Package errors provides structured error types for the treeflect CLI.
package errors

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Code represents an error code.
type Code string

const (
	CodeParseError    Code = "parse_error"
	CodeStateError    Code = "state_error"
	CodeConfigError   Code = "config_error"
	CodePathNotFound  Code = "path_not_found"
	CodeGenerateError Code = "generate_error"
)

// TreeflectError is a structured error with suggestions for self-correction.
type TreeflectError struct {
	Code        Code           `json:"code"`
	Message     string         `json:"message"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *TreeflectError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("%s (did you mean: %s?)", e.Message, strings.Join(e.Suggestions, ", "))
	}
	return e.Message
}

// ToJSON returns the error as JSON bytes.
func (e *TreeflectError) ToJSON() ([]byte, error) {
	wrapper := struct {
		Error *TreeflectError `json:"error"`
	}{Error: e}
	return json.MarshalIndent(wrapper, "", "  ")
}

// NewParseError creates an error for a command that failed to parse.
func NewParseError(command string, err error) *TreeflectError {
	return &TreeflectError{
		Code:    CodeParseError,
		Message: fmt.Sprintf("Cannot parse '%s': %v", command, err),
		Context: map[string]any{"command": command},
	}
}

// NewStateError creates an error for a state file that could not be
// loaded or saved.
func NewStateError(path string, err error) *TreeflectError {
	return &TreeflectError{
		Code:    CodeStateError,
		Message: fmt.Sprintf("State file %s: %v", path, err),
		Context: map[string]any{"path": path},
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(path string, err error) *TreeflectError {
	return &TreeflectError{
		Code:    CodeConfigError,
		Message: fmt.Sprintf("Config file %s: %v", path, err),
		Context: map[string]any{"path": path},
	}
}

// NewPathNotFound creates an error for a path query with no matches,
// suggesting the closest known paths.
func NewPathNotFound(query string, suggestions []string) *TreeflectError {
	return &TreeflectError{
		Code:        CodePathNotFound,
		Message:     fmt.Sprintf("No path matches '%s'", query),
		Suggestions: suggestions,
		Context:     map[string]any{"query": query},
	}
}

// NewGenerateError creates a code generation error.
func NewGenerateError(patterns []string, err error) *TreeflectError {
	return &TreeflectError{
		Code:    CodeGenerateError,
		Message: fmt.Sprintf("Failed to generate dispatch code: %v", err),
		Context: map[string]any{"patterns": patterns},
	}
}

// SuggestSimilar finds strings similar to the target from a list of candidates.
// Uses Levenshtein distance, returns up to limit suggestions.
func SuggestSimilar(target string, candidates []string, limit int) []string {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	type scored struct {
		s        string
		distance int
	}
	var scoredList []scored

	targetLower := strings.ToLower(target)
	for _, c := range candidates {
		d := levenshtein(targetLower, strings.ToLower(c))
		// Only include if reasonably similar (distance less than half the target length)
		if d <= len(target)/2+2 {
			scoredList = append(scoredList, scored{c, d})
		}
	}

	sort.SliceStable(scoredList, func(i, j int) bool {
		return scoredList[i].distance < scoredList[j].distance
	})

	result := make([]string, 0, limit)
	for i := 0; i < len(scoredList) && i < limit; i++ {
		result = append(result, scoredList[i].s)
	}

	return result
}

// levenshtein calculates the Levenshtein distance between two strings.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
