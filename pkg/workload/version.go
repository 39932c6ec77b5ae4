package workload

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

var (
	versionWithBranch = regexp.MustCompile(`tempo, version (.*) \(branch: (.*), revision: (.*)\)`)
	versionHeadless   = regexp.MustCompile(`tempo, version (\S+)`)
)

// ParseVersion extracts a display version from `tempo -version` output.
// Two formats exist in the wild: the full form with branch and revision,
// and a headless form with just the version token. Anything else yields "",
// which callers show as an unset workload version rather than an error.
func ParseVersion(output string) string {
	if m := versionWithBranch.FindStringSubmatch(output); m != nil {
		return m[1] + ":" + m[2] + "/" + m[3]
	}
	if m := versionHeadless.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return ""
}

// Version runs the workload binary to report its version
func (l *Local) Version(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, l.Binary, "-version").CombinedOutput()
	if err != nil {
		return ""
	}
	return ParseVersion(strings.TrimSpace(string(out)))
}
