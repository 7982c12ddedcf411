package runner

import (
	"github.com/projectdiscovery/gologger"
	updateutils "github.com/projectdiscovery/utils/update"
)

var banner = (`
.__
|  |    ____ ___  ___ ____   ____   ____
|  |  _/ __ \\  \/  // ___\_/ __ \ /    \
|  |__\  ___/ >    <\  \___\  ___/|   |  \
|____/ \___  >__/\_ \\___  >\___  >___|  /
           \/      \/    \/     \/     \/
`)

var version = "v0.0.1"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}

// GetUpdateCallback returns a callback function that updates lexgen
func GetUpdateCallback() func() {
	return func() {
		showBanner()
		updateutils.GetUpdateToolCallback("lexgen", version)()
	}
}
