package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/projectdiscovery/gologger"
)

func LogInfo(format string, args ...interface{}) {
	gologger.Print().Msgf("🔍 %s", fmt.Sprintf(format, args...))
}

func LogSuccess(format string, args ...interface{}) {
	gologger.Print().Msgf("✅ %s", fmt.Sprintf(format, args...))
}

func LogProgress(format string, args ...interface{}) {
	gologger.Print().Msgf("⚡ %s", fmt.Sprintf(format, args...))
}

func LogDiscovery(format string, args ...interface{}) {
	gologger.Print().Msgf("🎯 %s", fmt.Sprintf(format, args...))
}

func LogStats(format string, args ...interface{}) {
	gologger.Print().Msgf("📊 %s", fmt.Sprintf(format, args...))
}

// LogResults shows the final subdomain count and elapsed time for a run.
func LogResults(domain string, count int, duration time.Duration) {
	border := strings.Repeat("═", 80)
	gologger.Print().Msgf("╔%s╗", border)
	gologger.Print().Msgf("║  🎯 Target Domain: %-58s ║", domain)
	gologger.Print().Msgf("║  📊 Subdomains Found: %-51d ║", count)
	gologger.Print().Msgf("║  ⏱️  Execution Time: %-53s ║", duration.String())
	gologger.Print().Msgf("╚%s╝", border)
}

// LogStartup shows startup information for a single domain.
func LogStartup(domain string) {
	gologger.Print().Msgf("🌟 Starting subdomain enumeration for: %s", domain)
}

// LogSources shows source statistics.
func LogSources(count int) {
	gologger.Print().Msgf("🔧 Available enumeration sources: %d", count)
	gologger.Print().Msgf("💡 Sources marked with (*) require API keys")
}
