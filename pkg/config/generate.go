package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent returns the defaults file with every value
// commented out, ready to be saved as the user config.
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [layout], [vaults]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

// SampleEntry is one path record of a sample context
type SampleEntry struct {
	Path      string `toml:"path"`
	Required  bool   `toml:"required,omitempty"`
	Overwrite *bool  `toml:"overwrite,omitempty"`
}

// SampleOptions is the options section of a sample context
type SampleOptions struct {
	Overwrite bool `toml:"overwrite"`
}

// SampleContext is the document written by GenerateContext
type SampleContext struct {
	Home    map[string][]SampleEntry `toml:"home"`
	Options SampleOptions            `toml:"options"`
}

const contextHeader = `# homevault context
#
# [[home.<data type>]] lists the paths, relative to home, kept in the vault
# registered for that data type. A data type may also be a single string:
#   [home]
#   bin = "bin/tool"
#
# required = true aborts the run if the path cannot be transferred.
# overwrite replaces existing files on import; it defaults to options.overwrite.

`

// GenerateContext renders a sample context for the given data types.
func GenerateContext(dataTypes []string) (string, error) {
	if len(dataTypes) == 0 {
		dataTypes = []string{"bin", "data"}
	}

	keep := false
	sample := SampleContext{Home: map[string][]SampleEntry{}}
	for _, dt := range dataTypes {
		sample.Home[dt] = []SampleEntry{
			{Path: ".config/" + dt, Required: true},
			{Path: ".local/share/" + dt, Overwrite: &keep},
		}
	}

	out, err := toml.Marshal(sample)
	if err != nil {
		return "", err
	}
	return contextHeader + string(out), nil
}
