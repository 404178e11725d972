// Package sanitize 清理用户输入的自由文本（简介、技能描述、评价内容）
package sanitize

import "github.com/microcosm-cc/bluemonday"

type Sanitizer interface {
	Text(s string) string
}

// Passthrough 保持原文
type Passthrough struct{}

func (Passthrough) Text(s string) string { return s }

// StripHTML 去掉全部标签，只保留文本
type StripHTML struct {
	policy *bluemonday.Policy
}

func NewStripHTML() *StripHTML {
	return &StripHTML{policy: bluemonday.StrictPolicy()}
}

func (s *StripHTML) Text(in string) string {
	if in == "" {
		return in
	}
	return s.policy.Sanitize(in)
}
