// Package config loads the runtime-visible behaviour policies that every
// numeric type in this module accepts at construction time: the default
// ErrorPolicy, rounding mode, and saturation policy for FixedPoint/Lns2b.
// It follows the teacher's config.Config/DefaultConfig/Load/Save shape
// directly, swapping the emulator's execution/debugger/display sections
// for the numeric policy fields this module actually needs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/strand-systems/universal/internal/nerr"
)

// RoundingMode is carried for forward compatibility (spec §6 names only
// one mode today); Load rejects any value other than RoundNearestEven.
type RoundingMode string

const RoundNearestEven RoundingMode = "nearest-even"

// Policy holds the policy defaults threaded into every constructed number
// instance, mirroring the teacher's per-section Config struct.
type Policy struct {
	// Errors settings
	Errors struct {
		Default string `toml:"default"` // "throw" or "sentinel"
	} `toml:"errors"`

	// Rounding settings
	Rounding struct {
		Mode string `toml:"mode"` // must be "nearest-even"
	} `toml:"rounding"`

	// Saturation settings
	Saturation struct {
		FixedPoint bool `toml:"fixed_point"`
		Lns        bool `toml:"lns"`
	} `toml:"saturation"`
}

// DefaultPolicy mirrors the teacher's DefaultConfig: Throw error policy,
// round-nearest-even, modulo (non-saturating) overflow everywhere.
func DefaultPolicy() *Policy {
	p := &Policy{}

	p.Errors.Default = "throw"
	p.Rounding.Mode = string(RoundNearestEven)
	p.Saturation.FixedPoint = false
	p.Saturation.Lns = false

	return p
}

// ErrorPolicy translates the TOML string into nerr.ErrorPolicy.
func (p *Policy) ErrorPolicy() nerr.ErrorPolicy {
	if p.Errors.Default == "sentinel" {
		return nerr.Sentinel
	}
	return nerr.Throw
}

// Validate rejects anything Load cannot act on: a rounding mode other
// than nearest-even (spec §6 reserves the field for a future mode rather
// than letting a typo silently fall back), or an error policy other than
// "throw" or "sentinel".
func (p *Policy) Validate() error {
	if p.Rounding.Mode != string(RoundNearestEven) {
		return nerr.New("config.Validate", nerr.UnsupportedFormat,
			fmt.Sprintf("rounding mode %q is not supported", p.Rounding.Mode))
	}
	if p.Errors.Default != "throw" && p.Errors.Default != "sentinel" {
		return nerr.New("config.Validate", nerr.UnsupportedFormat,
			fmt.Sprintf("error policy %q is not supported", p.Errors.Default))
	}
	return nil
}

// GetConfigPath returns the platform-specific policy file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\numinspect\numinspect.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "numinspect")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/numinspect/numinspect.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "numinspect.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "numinspect")

	default:
		// Unknown platform: use current directory
		return "numinspect.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "numinspect.toml"
	}

	return filepath.Join(configDir, "numinspect.toml")
}

// Load loads a policy from the default config path.
func Load() (*Policy, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom parses a TOML file at path into a Policy, falling back to
// DefaultPolicy if the file does not exist.
func LoadFrom(path string) (*Policy, error) {
	p := DefaultPolicy()

	// If file doesn't exist, return default policy
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}

	// Read and parse policy file
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Save saves the policy to the default config path.
func (p *Policy) Save() error {
	return p.SaveTo(GetConfigPath())
}

// SaveTo saves the policy to the specified file.
func (p *Policy) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path) // #nosec G304 -- user policy file path
	if err != nil {
		return fmt.Errorf("failed to create policy file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close policy file: %w", closeErr)
		}
	}()

	// Encode to TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(p); err != nil {
		return fmt.Errorf("failed to encode policy: %w", err)
	}

	return nil
}
