// Package query provides JQ-based querying over the users document.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Engine executes JQ queries against JSON data.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the outcome of a JQ query.
type Result struct {
	Values   []any    `json:"values"`           // Extracted values
	Errors   []string `json:"errors,omitempty"` // Per-value errors (e.g., type mismatch)
	RawCount int      `json:"raw_count"`        // Count before deduplication and limit
}

// Query executes a JQ expression against JSON data. A bad expression or
// unparsable input is an error; per-value evaluation failures are collected
// in Result.Errors and do not abort the query.
func (e *Engine) Query(data []byte, expression string, deduplicate bool, maxResults int) (*Result, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}

	result := &Result{
		Values: make([]any, 0),
		Errors: make([]string, 0),
	}

	seen := make(map[string]bool)
	iter := code.Run(input)

	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if evalErr, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, evalErr.Error())
			continue
		}
		if v == nil {
			continue
		}

		result.RawCount++

		if deduplicate {
			key := valueKey(v)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		if maxResults > 0 && len(result.Values) >= maxResults {
			continue
		}
		result.Values = append(result.Values, v)
	}

	return result, nil
}

// valueKey produces a stable identity for deduplication.
func valueKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
