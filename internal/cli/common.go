// Package cli holds the small ambient pieces cmd/proost needs that
// aren't the kernel itself: version reporting, a leveled logger, fatal
// exit, and the on-disk REPL config.
//
// Adapted from the teacher's internal/cli/common.go, trimmed from a
// multi-tool CLI's generic command/flag registry (CommandInfo, FlagInfo,
// PrintUsage, ValidateArgs — unneeded by a single REPL binary whose flags
// cmd/proost declares directly) down to the parts one binary uses, and
// with VersionInfo's bare string field swapped for a parsed
// *semver.Version so malformed build-time version strings are caught
// rather than printed verbatim.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Version is the proost kernel's own release, distinct from go.mod's
// language-level "go 1.21.6" directive.
const (
	Version   = "0.1.0"
	BuildDate = "2025-08-22"
	CommitSHA = "unknown"
)

// VersionInfo is the structured payload behind both --version's plain
// text and its --json form.
type VersionInfo struct {
	Version   *semver.Version `json:"version"`
	BuildDate string          `json:"build_date"`
	CommitSHA string          `json:"commit_sha"`
	GoVersion string          `json:"go_version"`
	Platform  string          `json:"platform"`
	Arch      string          `json:"arch"`
}

// GetVersionInfo parses Version with semver, panicking if the build-time
// constant itself is malformed.
func GetVersionInfo() *VersionInfo {
	v, err := semver.NewVersion(Version)
	if err != nil {
		panic(fmt.Sprintf("cli: invalid built-in version %q: %v", Version, err))
	}
	return &VersionInfo{
		Version:   v,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion prints version information in a consistent format.
func PrintVersion(toolName string, jsonOutput bool) {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]any{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err == nil {
			fmt.Println(string(data))
			return
		}
		fmt.Fprintf(os.Stderr, "Error: failed to marshal version info to JSON: %v\n", err)
	}

	fmt.Printf("%s v%s\n", toolName, info.Version)
	fmt.Printf("Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Printf("Commit: %s\n", info.CommitSHA)
	}
	fmt.Printf("Go Version: %s\n", info.GoVersion)
	fmt.Printf("Platform: %s/%s\n", info.Platform, info.Arch)
}

// ExitWithError prints an error message to stderr and exits with code 1.
func ExitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Logger is a leveled logger: Info/Debug only print when enabled, Warn/
// Error always do.
type Logger struct {
	Verbose   bool
	DebugMode bool
}

func NewLogger(verbose, debug bool) *Logger {
	return &Logger{Verbose: verbose, DebugMode: debug}
}

func (l *Logger) Info(format string, args ...any) {
	if l.Verbose {
		fmt.Printf("[INFO] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Debug(format string, args ...any) {
	if l.DebugMode {
		fmt.Printf("[DEBUG] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Warn(format string, args ...any) {
	fmt.Printf("[WARN] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	fmt.Printf("[ERROR] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Config is the REPL's on-disk settings: history file location and
// size, and whether to colorize output.
type Config struct {
	HistoryFile string `json:"history_file"`
	MaxHistory  int    `json:"max_history"`
	NoColor     bool   `json:"no_color"`
}

// LoadConfig loads Config from configPath, returning defaults if the
// file doesn't exist.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{HistoryFile: ".proost_history", MaxHistory: 1000}

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveConfig writes c to configPath as indented JSON.
func (c *Config) SaveConfig(configPath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
