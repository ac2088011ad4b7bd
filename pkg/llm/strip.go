package llm

import (
	"regexp"
	"strings"
)

var (
	thinkBlock    = regexp.MustCompile(`(?is)<think>.*?</think>`)
	thinkingBlock = regexp.MustCompile(`(?is)<thinking>.*?</thinking>`)
	strayClose    = regexp.MustCompile(`(?is)^.*</think(?:ing)?>`)
	danglingOpen  = regexp.MustCompile(`(?is)<think(?:ing)?>.*$`)
)

// StripThinking removes model reasoning from a reply:
// complete <think>/<thinking> blocks, everything up to a stray closing tag,
// and everything from an unterminated opening tag onwards.
func StripThinking(s string) string {
	s = thinkBlock.ReplaceAllString(s, "")
	s = thinkingBlock.ReplaceAllString(s, "")
	s = strayClose.ReplaceAllString(s, "")
	s = danglingOpen.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
