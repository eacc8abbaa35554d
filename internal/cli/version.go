// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build. Values left at their
// defaults are filled from the module build info when available.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version, commit hash, build date, and Go toolchain.

Binaries installed with 'go install' report the module version and the
VCS revision recorded by the Go toolchain.`,
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		b := resolveBuild(info, ok)
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), b.version)
			return
		}
		b.write(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print the version number only")
}

type buildInfo struct {
	version   string
	commit    string
	date      string
	modified  bool
	goVersion string
	deps      int
}

// resolveBuild merges the ldflags values with the embedded build info.
// Explicit ldflags values win.
func resolveBuild(info *debug.BuildInfo, ok bool) buildInfo {
	b := buildInfo{
		version:   Version,
		commit:    Commit,
		date:      BuildDate,
		goVersion: runtime.Version(),
	}
	if !ok || info == nil {
		return b
	}

	if info.GoVersion != "" {
		b.goVersion = info.GoVersion
	}
	if b.version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.version = info.Main.Version
	}
	b.deps = len(info.Deps)

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.commit == "unknown" {
				b.commit = s.Value
				if len(b.commit) > 12 {
					b.commit = b.commit[:12]
				}
			}
		case "vcs.time":
			if b.date == "unknown" {
				b.date = s.Value
			}
		case "vcs.modified":
			b.modified = s.Value == "true"
		}
	}
	return b
}

func (b buildInfo) write(w io.Writer) {
	commit := b.commit
	if b.modified {
		commit += " (modified)"
	}
	fmt.Fprintf(w, "cmdspec %s\n", b.version)
	fmt.Fprintf(w, "  Commit:       %s\n", commit)
	fmt.Fprintf(w, "  Build Date:   %s\n", b.date)
	fmt.Fprintf(w, "  Go Version:   %s\n", b.goVersion)
	fmt.Fprintf(w, "  OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if b.deps > 0 {
		fmt.Fprintf(w, "  Dependencies: %d\n", b.deps)
	}
}
