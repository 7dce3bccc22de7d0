// Package utils provides helper functions, including version retrieval.
package utils

import "runtime/debug"

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"

	vcsRevisionSettingKey = "vcs.revision"
	vcsModifiedSettingKey = "vcs.modified"

	// modifiedSuffix marks versions built from a dirty working tree.
	modifiedSuffix = "-dirty"
	// shortRevisionLength bounds the revision hash reported by --version.
	shortRevisionLength = 12
)

// GetApplicationVersion reports the version recorded in the Go build info:
// the module version for released builds, otherwise the VCS revision stamped
// at build time. It never fails; unstamped builds report "unknown".
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}

	revision := ""
	treeModified := false
	for _, buildSetting := range buildInfo.Settings {
		switch buildSetting.Key {
		case vcsRevisionSettingKey:
			revision = buildSetting.Value
		case vcsModifiedSettingKey:
			treeModified = buildSetting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if treeModified {
		revision += modifiedSuffix
	}
	return revision
}
