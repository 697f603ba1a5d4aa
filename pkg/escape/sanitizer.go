package escape

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy

	ugcOnce   sync.Once
	ugcPolicy *bluemonday.Policy
)

// Sanitizer escapes by running input through a bluemonday policy. Markup the
// policy allows survives; everything else is dropped and remaining text is
// entity encoded.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer wraps policy. A nil policy falls back to the strict policy.
func NewSanitizer(policy *bluemonday.Policy) *Sanitizer {
	if policy == nil {
		policy = strict()
	}
	return &Sanitizer{policy: policy}
}

// Strict returns a sanitizer that strips every element and attribute.
func Strict() *Sanitizer {
	return NewSanitizer(strict())
}

// UGC returns a sanitizer for user generated content: formatting markup is
// kept while script and style content, event handler attributes and
// javascript: URIs are removed.
func UGC() *Sanitizer {
	return NewSanitizer(ugc())
}

// Escape implements Escaper.
func (s *Sanitizer) Escape(raw string) string {
	if raw == "" {
		return ""
	}
	return s.policy.Sanitize(raw)
}

func strict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

func ugc() *bluemonday.Policy {
	ugcOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(false)
		policy.AllowAttrs("class").Globally()
		ugcPolicy = policy
	})
	return ugcPolicy
}
