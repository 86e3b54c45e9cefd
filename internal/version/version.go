// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package version reports the release of the binaries.
package version

import (
	"runtime/debug"

	"golang.org/x/mod/semver"
)

// Version is set at link time with -ldflags "-X github.com/golangee/dbgstr/internal/version.Version=v1.2.3".
var Version = ""

const dev = "v0.0.0-dev"

// String returns the canonical semantic version of the binary, like v1.2.3 or v0.0.0-dev.
func String() string {
	return resolve(Version, moduleVersion())
}

// Major returns the major version, like v1.
func Major() string {
	return semver.Major(String())
}

// resolve prefers the link time version over the module version and falls back to dev.
func resolve(linked, module string) string {
	for _, v := range []string{linked, module} {
		if v == "" {
			continue
		}

		if v[0] != 'v' {
			v = "v" + v
		}

		if semver.IsValid(v) {
			return semver.Canonical(v)
		}
	}

	return dev
}

// moduleVersion returns the version of the main module, which is set by go install.
func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "(devel)" {
		return ""
	}

	return info.Main.Version
}
