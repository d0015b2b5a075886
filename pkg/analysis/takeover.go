package analysis

import (
	"regexp"
	"strings"
)

// takeoverSignature is one hijackable-service fingerprint: a CNAME target
// substring and a body fingerprint, once compiled to a regexp. Both must
// match for a candidate to be flagged.
type takeoverSignature struct {
	service     string
	cnameMatch  string
	bodyPattern *regexp.Regexp
}

var takeoverSignatures = []takeoverSignature{
	{"AWS S3", "s3.amazonaws.com", regexp.MustCompile(`(?i)The specified bucket does not exist`)},
	{"AWS S3", "s3-website", regexp.MustCompile(`(?i)The specified bucket does not exist`)},
	{"GitHub Pages", "github.io", regexp.MustCompile(`(?i)There isn't a GitHub Pages site here|For root URLs`)},
	{"Heroku", "herokuapp.com", regexp.MustCompile(`(?i)Heroku \| No such app|<title>No such app</title>`)},
	{"Microsoft Azure", "azurewebsites.net", regexp.MustCompile(`(?i)404 Web Site not found`)},
	{"Microsoft Azure", "cloudapp.net", regexp.MustCompile(`(?i)404 Web Site not found`)},
	{"Microsoft Azure", "core.windows.net", regexp.MustCompile(`(?i)404 Web Site not found`)},
	{"Bitbucket", "bitbucket.io", regexp.MustCompile(`(?i)Repository not found`)},
	{"Shopify", "myshopify.com", regexp.MustCompile(`(?i)Sorry, this shop is currently unavailable`)},
	{"Zendesk", "zendesk.com", regexp.MustCompile(`(?i)Help Center Closed`)},
	{"Fastly", "fastly.net", regexp.MustCompile(`(?i)Fastly error: unknown domain`)},
	{"Pantheon", "pantheonsite.io", regexp.MustCompile(`(?i)The gods are wise`)},
	{"Tumblr", "domains.tumblr.com", regexp.MustCompile(`(?i)Whatever you were looking for`)},
	{"WordPress", "wordpress.com", regexp.MustCompile(`(?i)Do you want to register .*\.wordpress\.com`)},
}

// DetectTakeover checks cname against every signature's CNAME substring
// first, and only inspects body when that matches, so a coincidental body
// match against an unrelated host never fires.
func DetectTakeover(cname, body string) (service string, ok bool) {
	if cname == "" {
		return "", false
	}
	lowerCNAME := strings.ToLower(cname)
	for _, sig := range takeoverSignatures {
		if !strings.Contains(lowerCNAME, sig.cnameMatch) {
			continue
		}
		if sig.bodyPattern.MatchString(body) {
			return sig.service, true
		}
	}
	return "", false
}
