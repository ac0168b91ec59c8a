package apk

import (
	"regexp"
	"strings"
)

// Comparison is the relation between a package's installed version and
// the best candidate the indexes offer.
type Comparison int

const (
	// CompareUnparseable means no version line for the package could be
	// read from the output. Callers treat this as "no update" so a
	// format drift never triggers a spurious transaction.
	CompareUnparseable Comparison = iota
	// CompareOlder means the installed version is older than the
	// candidate, so an upgrade is available.
	CompareOlder
	// CompareSame means installed and candidate versions match.
	CompareSame
	// CompareNewer means the installed version is newer than the
	// candidate (e.g. an index downgrade or a locally built package).
	CompareNewer
)

// String returns the comparison name for diagnostics.
func (c Comparison) String() string {
	switch c {
	case CompareOlder:
		return "older"
	case CompareSame:
		return "same"
	case CompareNewer:
		return "newer"
	}
	return "unparseable"
}

// apk version prints one line per package:
//
//	Installed:                                Available:
//	busybox-1.36.1-r5                       < 1.36.1-r7
//
// with <, = or > between the installed name-version and the candidate
// version ("?" when the package is not in any index).
var versionLinePattern = `-[\d.\w]+-[\d\w]+\s+([<=>])\s+[\d.\w]+-[\d\w]+`

// CompareVersions extracts the version relation for the named package
// from `apk version` output. Anything that does not match the expected
// line shape for that package yields CompareUnparseable.
func CompareVersions(output, name string) Comparison {
	re, err := regexp.Compile(`(?m)^` + regexp.QuoteMeta(name) + versionLinePattern)
	if err != nil {
		return CompareUnparseable
	}

	match := re.FindStringSubmatch(output)
	if match == nil {
		return CompareUnparseable
	}

	switch match[1] {
	case "<":
		return CompareOlder
	case "=":
		return CompareSame
	case ">":
		return CompareNewer
	}
	return CompareUnparseable
}

// upToDate reports whether `apk upgrade` output indicates the system
// was already current. apk starts its summary with "OK:" when there was
// nothing to do; any transaction output comes first otherwise.
func upToDate(output string) bool {
	return strings.HasPrefix(output, "OK")
}
