package runner

import (
	"github.com/projectdiscovery/gologger"
	updateutils "github.com/projectdiscovery/utils/update"
)

const banner = `
╔═══════════════════════════════════════════════════════════════════╗
║                                                                     ║
║  ███████╗██╗   ██╗██████╗ ██████╗ ███████╗ ██████╗ ██████╗ ███╗   ║
║  ██╔════╝██║   ██║██╔══██╗██╔══██╗██╔════╝██╔════╝██╔═══██╗████╗  ║
║  ███████╗██║   ██║██████╔╝██████╔╝█████╗  ██║     ██║   ██║██╔██╗ ║
║  ╚════██║██║   ██║██╔══██╗██╔══██╗██╔══╝  ██║     ██║   ██║██║╚██╗║
║  ███████║╚██████╔╝██████╔╝██║  ██║███████╗╚██████╗╚██████╔╝██║ ╚█║
║  ╚══════╝ ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚═════╝ ╚═╝  ╚║
║                                                                     ║
║               subrecon — subdomain reconnaissance engine           ║
╚═══════════════════════════════════════════════════════════════════╝
`

const ToolName = `subrecon`

// Version is the current release tag, checked against the latest GitHub
// release by the update callback.
const Version = `v1.0.0`

func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
}

// ShowBanner prints the startup banner.
func ShowBanner() {
	showBanner()
}

// GetUpdateCallback returns a callback that re-prints the banner and checks
// for a newer release.
func GetUpdateCallback() func() {
	return func() {
		showBanner()
		updateutils.GetUpdateToolCallback(ToolName, Version)()
	}
}
