// Package probe issues the HTTP request(s) used to fingerprint a live host:
// a HEAD first, then a conditional GET for status codes worth reading a
// body for.
package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/corpix/uarand"
	retryablehttp "github.com/projectdiscovery/retryablehttp-go"

	"github.com/duskline/subrecon/pkg/model"
)

const (
	maxBodyBytes = 5000
	maxTitleLen  = 100
)

var (
	titleRegexp = regexp.MustCompile(`(?is)<title>(.*?)</title>`)
	tagRegexp   = regexp.MustCompile(`(?i)<([a-zA-Z0-9]+)`)
)

// wafSignatures maps a header or cookie name, plus an optional substring
// its value must contain, to the WAF/CDN it implies. AWS CloudFront is special-cased: the `Via` header must itself
// contain "cloudfront" rather than merely existing.
var wafSignatures = []struct {
	header string
	value  string
	name   string
}{
	{"cf-ray", "", "Cloudflare"},
	{"__cfduid", "", "Cloudflare"},
	{"cf-cache-status", "", "Cloudflare"},
	{"x-amz-cf-id", "", "AWS CloudFront"},
	{"via", "cloudfront", "AWS CloudFront"},
	{"x-akamai-transformed", "", "Akamai"},
	{"akamai-origin-hop", "", "Akamai"},
	{"x-iinfo", "", "Imperva"},
	{"incap-ses", "", "Imperva"},
	{"bigipserver", "", "F5 BIG-IP"},
	{"x-sucuri-id", "", "Sucuri"},
}

// Prober issues HTTP(S) requests against candidates.
type Prober struct {
	client *retryablehttp.Client
}

// New builds a Prober. insecureSkipVerify mirrors the reference tool's
// `ssl=False` posture: TLS errors on self-signed or expired certificates
// must not hide a live host from the pipeline.
func New(timeout time.Duration, insecureSkipVerify bool) *Prober {
	opts := retryablehttp.DefaultOptionsSingle
	opts.Timeout = timeout
	opts.RetryMax = 0

	client := retryablehttp.NewClient(opts)
	client.HTTPClient.Timeout = timeout
	if insecureSkipVerify {
		client.HTTPClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Prober{client: client}
}

// ProbeDetailed tries HTTPS first and falls back to HTTP only when the
// HTTPS transport itself failed (as opposed to answering with an error
// status), returning the fingerprint, the WAF tag and Location header a
// Finding needs, and the body actually read off the wire (empty if the
// response status never triggered the conditional GET).
func (p *Prober) ProbeDetailed(ctx context.Context, host string) (fp *model.FingerprintSet, waf, location, body string, ok bool) {
	if fp, status, waf, body, location := p.attempt(ctx, "https://"+host); status != 0 {
		fp.Status = status
		return fp, waf, location, body, true
	}
	if fp, status, waf, body, location := p.attempt(ctx, "http://"+host); status != 0 {
		fp.Status = status
		return fp, waf, location, body, true
	}
	return nil, "", "", "", false
}

func (p *Prober) attempt(ctx context.Context, url string) (*model.FingerprintSet, int, string, string, string) {
	headReq, err := retryablehttp.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return nil, 0, "", "", ""
	}
	headReq.Request = headReq.Request.WithContext(ctx)
	headReq.Header.Set("User-Agent", uarand.GetRandom())

	resp, err := p.client.Do(headReq)
	if err != nil {
		return nil, 0, "", "", ""
	}
	defer resp.Body.Close()

	status := resp.StatusCode
	waf := detectWAF(resp.Header)
	location := resp.Header.Get("Location")

	if status != http.StatusOK && status != http.StatusForbidden && status != http.StatusInternalServerError {
		return &model.FingerprintSet{Status: status}, status, waf, "", location
	}

	getReq, err := retryablehttp.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return &model.FingerprintSet{Status: status}, status, waf, "", location
	}
	getReq.Request = getReq.Request.WithContext(ctx)
	getReq.Header.Set("User-Agent", uarand.GetRandom())

	getResp, err := p.client.Do(getReq)
	if err != nil {
		return &model.FingerprintSet{Status: status}, status, waf, "", location
	}
	defer getResp.Body.Close()

	bodyBytes, _ := io.ReadAll(io.LimitReader(getResp.Body, maxBodyBytes))
	title := extractTitle(bodyBytes)
	structure := extractStructure(bodyBytes)

	fp := &model.FingerprintSet{
		Status:        getResp.StatusCode,
		Title:         title,
		ContentLength: len(bodyBytes),
		Structure:     structure,
	}
	return fp, getResp.StatusCode, detectWAF(getResp.Header), string(bodyBytes), getResp.Header.Get("Location")
}

func extractTitle(body []byte) string {
	m := titleRegexp.FindSubmatch(body)
	if m == nil {
		return ""
	}
	title := strings.TrimSpace(string(m[1]))
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen]
	}
	return title
}

func extractStructure(body []byte) map[string]int {
	structure := make(map[string]int)
	for _, m := range tagRegexp.FindAllSubmatch(body, -1) {
		tag := strings.ToLower(string(m[1]))
		structure[tag]++
	}
	return structure
}

// detectWAF runs the linear header/cookie signature table against a
// response. Cookie-only signatures (e.g. Imperva's incap-ses) never show up
// as a header named that, so Set-Cookie is parsed and checked by name too.
func detectWAF(h http.Header) string {
	cookies := (&http.Response{Header: h}).Cookies()

	for _, sig := range wafSignatures {
		val := h.Get(sig.header)
		if val == "" {
			for _, c := range cookies {
				if strings.EqualFold(c.Name, sig.header) {
					val = c.Value
					break
				}
			}
		}
		if val == "" {
			continue
		}
		if sig.value == "" || strings.Contains(strings.ToLower(val), sig.value) {
			return sig.name
		}
	}
	return ""
}

// StructureDiff reports the fraction of tag-histogram entries that differ
// between a and b: the same measure pkg/analysis applies, with its own copy,
// against the wildcard-signature filter's 10% threshold.
func StructureDiff(a, b map[string]int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}

	var diff int
	for k := range keys {
		if a[k] != b[k] {
			diff++
		}
	}
	return float64(diff) / float64(len(keys))
}

// LabelsErr is returned by callers that need a descriptive probe failure.
func LabelsErr(host string, err error) error {
	return fmt.Errorf("probe %s: %w", host, err)
}
