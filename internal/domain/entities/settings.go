package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProvider        = "github"
	DefaultCheckpointPath  = "processed.json"
	DefaultSearchQuery     = "path:node_modules"
	DefaultTargetDirectory = "node_modules"
	DefaultIgnoreTemplate  = "Node"
	DefaultBranch          = "remove-node-modules"
	DefaultTitle           = "Remove node_modules"
	DefaultDuplicateMarker = "remove node_modules"
	DefaultItemCooldown    = 61 * time.Second
	DefaultPageCooldown    = 10 * time.Second
	DefaultErrorCooldown   = 61 * time.Second
	DefaultAPIMinInterval  = time.Second
)

// tokenEnvVars are consulted in order when the settings carry no token.
var tokenEnvVars = []string{"TOKEN", "GITHUB_TOKEN"} //nolint:gochecknoglobals // read-only lookup table

// ErrMissingToken is returned when no authentication credential could be resolved.
var ErrMissingToken = errors.New(
	"a GitHub authentication token is required: set TOKEN (or GITHUB_TOKEN) in the environment or a .env file",
)

// Settings is the runtime configuration of modsweep.
type Settings struct {
	Provider    string              `yaml:"provider"`   // Key of the hosting provider registry
	Token       string              `yaml:"token"`      // Inline, ${ENV_VAR}, or file path
	Checkpoint  string              `yaml:"checkpoint"` // Path of the JSON checkpoint file
	Search      SearchSettings      `yaml:"search"`
	Target      TargetSettings      `yaml:"target"`
	Remediation RemediationSettings `yaml:"remediation"`
	Cooldown    CooldownSettings    `yaml:"cooldown"`
	API         APISettings         `yaml:"api"`
}

// SearchSettings configures the code-search query that feeds the crawl.
type SearchSettings struct {
	Query string `yaml:"query"`
}

// TargetSettings names the directory to remove and the ignore template to fall back to.
type TargetSettings struct {
	Directory      string `yaml:"directory"`
	IgnoreTemplate string `yaml:"ignore_template"`
}

// RemediationSettings shapes the branch and pull request created for each repository.
type RemediationSettings struct {
	Branch          string `yaml:"branch"`
	Title           string `yaml:"title"`
	DuplicateMarker string `yaml:"duplicate_marker"`
}

// CooldownSettings holds the fixed waits of the crawl loop.
type CooldownSettings struct {
	Item  time.Duration `yaml:"item"`
	Page  time.Duration `yaml:"page"`
	Error time.Duration `yaml:"error"`
}

// APISettings controls pacing of individual REST calls.
type APISettings struct {
	MinInterval time.Duration `yaml:"min_interval"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Provider:   DefaultProvider,
		Checkpoint: DefaultCheckpointPath,
		Search:     SearchSettings{Query: DefaultSearchQuery},
		Target: TargetSettings{
			Directory:      DefaultTargetDirectory,
			IgnoreTemplate: DefaultIgnoreTemplate,
		},
		Remediation: RemediationSettings{
			Branch:          DefaultBranch,
			Title:           DefaultTitle,
			DuplicateMarker: DefaultDuplicateMarker,
		},
		Cooldown: CooldownSettings{
			Item:  DefaultItemCooldown,
			Page:  DefaultPageCooldown,
			Error: DefaultErrorCooldown,
		},
		API: APISettings{MinInterval: DefaultAPIMinInterval},
	}
}

// LoadSettings reads the settings from path layered over the defaults and
// resolves the token, without validating. An empty path yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.Token = resolveToken(settings.Token)
	if settings.Token == "" {
		settings.Token = tokenFromEnv()
	}
	return settings, nil
}

// Validate checks for required and well-formed values.
func (s *Settings) Validate() error {
	if s.Token == "" {
		return ErrMissingToken
	}
	if s.Provider == "" {
		return errors.New("provider is required")
	}
	if s.Checkpoint == "" {
		return errors.New("checkpoint path is required")
	}
	if strings.TrimSpace(s.Search.Query) == "" {
		return errors.New("search.query is required")
	}
	if s.Target.Directory == "" || strings.Contains(s.Target.Directory, "/") {
		return fmt.Errorf("target.directory must be a single top-level name, got %q", s.Target.Directory)
	}
	if s.Target.IgnoreTemplate == "" {
		return errors.New("target.ignore_template is required")
	}
	if s.Remediation.Branch == "" || s.Remediation.Title == "" || s.Remediation.DuplicateMarker == "" {
		return errors.New("remediation.branch, remediation.title and remediation.duplicate_marker are required")
	}
	if s.Cooldown.Item < 0 || s.Cooldown.Page < 0 || s.Cooldown.Error < 0 || s.API.MinInterval < 0 {
		return errors.New("cooldowns and api.min_interval must not be negative")
	}
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".modsweep.yaml",
		".modsweep.yml",
		"modsweep.yaml",
		"modsweep.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return strings.TrimSpace(resolved)
}

func tokenFromEnv() string {
	for _, name := range tokenEnvVars {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val
		}
	}
	return ""
}
