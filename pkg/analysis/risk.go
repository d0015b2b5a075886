package analysis

import (
	"regexp"
	"strings"
)

var (
	apiPatterns  = regexp.MustCompile(`(?i)api\.|/api/|/v1/|/v2/|graphql`)
	authPatterns = regexp.MustCompile(`(?i)auth|login|signin|sso|vpn|admin|dashboard|portal|jenkins|jira`)
	devPatterns  = regexp.MustCompile(`(?i)dev|stg|stage|test|uat|beta|internal`)
)

// Score computes the deterministic risk score and its reasons for a single
// finding. It is a pure function of its inputs: the same (domain,
// httpStatus, title, isPrivate, takeoverService) always yields the same
// (score, reasons).
func Score(domain string, httpStatus int, title string, isPrivate bool, takeoverService string) (int, []string) {
	score := 0
	var reasons []string

	if isPrivate {
		score -= 5
		reasons = append(reasons, "Private IP")
	}
	if httpStatus == 404 {
		score -= 3
		reasons = append(reasons, "404 Not Found")
	}
	if takeoverService != "" {
		score += 10
		reasons = append(reasons, "TAKEOVER ("+takeoverService+")")
	}

	lowerDomain := strings.ToLower(domain)
	if apiPatterns.MatchString(lowerDomain) {
		score += 5
		reasons = append(reasons, "API Endpoint")
	}
	if authPatterns.MatchString(lowerDomain) {
		score += 6
		reasons = append(reasons, "Auth/Admin")
	}
	if devPatterns.MatchString(lowerDomain) {
		score += 3
		reasons = append(reasons, "Dev/Pre-Prod environment")
	}

	return score, reasons
}
