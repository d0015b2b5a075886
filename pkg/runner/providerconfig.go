package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// providerKeys holds every source's API keys, loaded once via UnmarshalFrom
// and consulted by the passive agent when it builds its source list.
var providerKeys = map[string][]string{}

// DefaultProviderConfigLocation is where a provider config is read from and
// written to when a run's -provider-config flag isn't set explicitly.
var DefaultProviderConfigLocation = defaultProviderConfigLocation

// CreateProviderConfigYAML writes the default provider config template to
// location if one doesn't already exist there.
func CreateProviderConfigYAML(location string) error {
	return createProviderConfigYAML(location)
}

// providerConfigTemplate is written out the first time a run can't find a
// provider config file, so a user has something to fill in.
const providerConfigTemplate = `# subrecon provider config
# API keys for sources that need them, one list per source name.
# subrecon -pc <file> to use config from a non-default location.
chaos: []
`

// UnmarshalFrom loads provider API keys from a YAML file shaped like
// `source: [key1, key2]` into the package-level key table. A missing file
// is reported as an error containing "file doesn't exist" so callers can
// treat it as non-fatal.
func UnmarshalFrom(location string) error {
	data, err := os.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file doesn't exist: %s", location)
		}
		return err
	}

	parsed := map[string][]string{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsing provider config: %w", err)
	}
	for source, keys := range parsed {
		if len(keys) > 0 {
			providerKeys[source] = keys
		}
	}
	return nil
}

// createProviderConfigYAML writes the default provider config template to
// location, creating its parent directory if necessary.
func createProviderConfigYAML(location string) error {
	if err := os.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return err
	}
	return os.WriteFile(location, []byte(providerConfigTemplate), 0644)
}

// APIKeysFor returns the configured API keys for source, or nil if none
// were loaded.
func APIKeysFor(source string) []string {
	return providerKeys[source]
}
