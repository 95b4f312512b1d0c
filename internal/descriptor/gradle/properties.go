package gradle

import (
	"fmt"
	"strings"

	"github.com/modu-ai/kickstart/internal/descriptor"
)

// gradle.properties keys read by the generated scripts.
const (
	KeyPluginVersion      = "quarkusPluginVersion"
	KeyPluginID           = "quarkusPluginId"
	KeyPlatformGroupID    = "quarkusPlatformGroupId"
	KeyPlatformArtifactID = "quarkusPlatformArtifactId"
	KeyPlatformVersion    = "quarkusPlatformVersion"
)

// Properties returns the gradle.properties entries req calls for, in file
// order.
func Properties(req descriptor.Requirements) [][2]string {
	return [][2]string{
		{KeyPluginVersion, req.PluginVersion},
		{KeyPluginID, req.GradlePluginID},
		{KeyPlatformGroupID, req.BOMGroupID},
		{KeyPlatformArtifactID, req.BOMArtifactID},
		{KeyPlatformVersion, req.BOMVersion},
	}
}

// MergeProperties appends the missing keys to a gradle.properties file.
// Existing values win; a differing one is reported as a warning.
func MergeProperties(src []byte, req descriptor.Requirements) (descriptor.Result, error) {
	existing := parseProperties(string(src))
	nl := "\n"
	if strings.Contains(string(src), "\r\n") {
		nl = "\r\n"
	}

	var warnings []string
	var b strings.Builder
	for _, kv := range Properties(req) {
		got, ok := existing[kv[0]]
		if !ok {
			b.WriteString(kv[0] + "=" + kv[1] + nl)
			continue
		}
		if got != kv[1] {
			warnings = append(warnings, fmt.Sprintf(
				"gradle.properties %s is %q, platform default is %q; keeping the existing value", kv[0], got, kv[1]))
		}
	}
	if b.Len() == 0 {
		return descriptor.Result{Content: src, Warnings: warnings}, nil
	}

	out := string(src)
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += nl
	}
	out += b.String()
	return descriptor.Result{Content: []byte(out), Changed: true, Warnings: warnings}, nil
}

// parseProperties reads key/value pairs. Continuation lines are not
// followed; the keys of interest never use them.
func parseProperties(src string) map[string]string {
	props := make(map[string]string)
	for line := range strings.Lines(src) {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}
		i := strings.IndexAny(line, "=: \t")
		if i < 0 {
			props[line] = ""
			continue
		}
		key := line[:i]
		value := strings.TrimLeft(line[i:], " \t")
		if value != "" && (value[0] == '=' || value[0] == ':') {
			value = value[1:]
		}
		props[key] = strings.TrimSpace(value)
	}
	return props
}
