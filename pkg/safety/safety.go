// Package safety scans generated content for profanity, blocked words, and
// compliance problems before it reaches a reviewer.
package safety

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	goaway "github.com/TwiN/go-away"
)

// Result holds the verdict of a content scan.
type Result struct {
	Safe   bool
	Issues []string
}

func (r Result) Summary() string {
	if r.Safe {
		return "Content passed safety checks"
	}
	return "Content flagged: " + strings.Join(r.Issues, "; ")
}

var financialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(invest|buy|sell)\s+(now|today|immediately)\b`),
	regexp.MustCompile(`\bguaranteed\s+(returns?|profit)\b`),
	// The disclaimer itself usually signals advice.
	regexp.MustCompile(`\bnot\s+financial\s+advice\b`),
}

var medicalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(cure[sd]?|treat[sd]?|heal[sd]?)\s+(disease|illness|cancer|covid)\b`),
}

// Checker runs three independent scans and unions the findings: a generic
// profanity lexicon, a configured blocked-word list, and compliance heuristics
// for financial-advice and medical-claim phrasing.
type Checker struct {
	blockedWords   []string
	complianceNote string
	logger         *slog.Logger
}

func NewChecker(blockedWords []string, complianceNote string, logger *slog.Logger) *Checker {
	lowered := make([]string, 0, len(blockedWords))
	for _, w := range blockedWords {
		lowered = append(lowered, strings.ToLower(w))
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{
		blockedWords:   lowered,
		complianceNote: complianceNote,
		logger:         logger,
	}
}

// Check scans content and returns the verdict. It never fails for clean input.
func (c *Checker) Check(content string) Result {
	var issues []string

	if goaway.IsProfane(content) {
		issues = append(issues, "Contains profanity or vulgar language")
	}

	contentLower := strings.ToLower(content)
	for _, word := range c.blockedWords {
		if strings.Contains(contentLower, word) {
			issues = append(issues, fmt.Sprintf("Contains blocked word: %q", word))
		}
	}

	issues = append(issues, checkCompliance(contentLower)...)

	result := Result{Safe: len(issues) == 0, Issues: issues}
	if !result.Safe {
		c.logger.Warn("safety check failed", "summary", result.Summary())
	}
	return result
}

func checkCompliance(contentLower string) []string {
	var issues []string

	for _, pattern := range financialPatterns {
		if pattern.MatchString(contentLower) {
			issues = append(issues, "May contain financial advice language")
			break
		}
	}

	for _, pattern := range medicalPatterns {
		if pattern.MatchString(contentLower) {
			issues = append(issues, "May contain medical claims")
			break
		}
	}

	return issues
}

// Censor masks profane tokens for display. Persisted content is never
// silently substituted with the censored form.
func (c *Checker) Censor(content string) string {
	return goaway.Censor(content)
}
