// Package fetch turns content locators (web URLs, YouTube URLs, local PDF
// paths) into flat extracted text. Each fetcher makes exactly one attempt;
// failures come back as fixed user-presentable messages, never raw errors.
package fetch

import (
	"context"
	"strings"
)

// Result is the terminal outcome of one fetch. Exactly one of Content and
// Err is set; callers treat a Result with neither as a failure, never as
// success.
type Result struct {
	Content string
	Err     string
}

// OK reports whether the fetch produced usable content.
func (r Result) OK() bool {
	return r.Content != "" && r.Err == ""
}

// Ok builds a success Result.
func Ok(content string) Result {
	return Result{Content: content}
}

// Fail builds a failure Result carrying a user-presentable message.
func Fail(message string) Result {
	return Result{Err: message}
}

// Fetcher retrieves extracted text for a locator value (URL or file path).
// Implementations are blocking and honor ctx for timeouts.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) Result
}

// flatten collapses all whitespace runs to single spaces and trims the ends.
// Page and paragraph boundaries are deliberately not preserved; downstream
// prompting treats content as flat text.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
