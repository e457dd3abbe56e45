package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// These can be set via ldflags for CI builds, but are optional.
// If not set, values are read from debug.ReadBuildInfo().
var (
	cmdVersion      string
	buildCommitHash string
)

type versionInfo struct {
	version   string
	commit    string
	goVersion string
	modified  bool
}

func NewVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display CLI current version",
		Long:  "Display CLI current version, the commit it was built from and the Go toolchain used",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readVersionInfo()

			version := info.version
			if info.modified {
				version += " (modified)"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "go-commitlint %s\n", version)
			_, _ = fmt.Fprintf(out, "Commit: %s\n", info.commit)
			_, _ = fmt.Fprintf(out, "Go: %s\n", info.goVersion)

			return nil
		},
	}

	return versionCmd
}

// readVersionInfo prefers values set via ldflags, falling back to debug.ReadBuildInfo().
func readVersionInfo() versionInfo {
	info := versionInfo{version: "unknown", commit: "unknown", goVersion: "unknown"}

	if cmdVersion != "" {
		info.version = cmdVersion
	}
	if buildCommitHash != "" {
		info.commit = buildCommitHash
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.goVersion = build.GoVersion

	if cmdVersion == "" && build.Main.Version != "" {
		info.version = build.Main.Version
	}

	for _, setting := range build.Settings {
		switch setting.Key {
		case "vcs.revision":
			if buildCommitHash == "" {
				info.commit = setting.Value
				if len(info.commit) > 12 {
					info.commit = info.commit[:12]
				}
			}
		case "vcs.modified":
			info.modified = setting.Value == "true"
		}
	}

	return info
}
