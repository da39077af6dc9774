package utils

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// Version is the version of the persisted document formats written by this module.
const Version = "2.1.0"

// ErrUnsupportedVersion is returned when a document carries a version tag this module cannot read.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// VersionNumber converts a semantic version to the integer tag stored in documents:
// major*1000000 + minor*1000 + patch.
func VersionNumber(version string) (int, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid version %q", version)
	}
	if v.Minor() >= 1000 || v.Patch() >= 1000 {
		return 0, errors.Wrapf(ErrUnsupportedVersion, "version %q cannot be encoded as a tag", version)
	}
	return int(v.Major())*1_000_000 + int(v.Minor())*1_000 + int(v.Patch()), nil
}

// CurrentVersionNumber returns the tag of Version.
func CurrentVersionNumber() int {
	n, err := VersionNumber(Version)
	if err != nil {
		panic(err)
	}
	return n
}

// VersionFromNumber converts a document tag back to a semantic version.
func VersionFromNumber(number int) (*semver.Version, error) {
	if number < 0 {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "negative version tag %d", number)
	}
	return semver.NewVersion(fmt.Sprintf("%d.%d.%d", number/1_000_000, number/1_000%1_000, number%1_000))
}

// CheckVersionNumber returns an error if a document tag is newer than this module can read.
func CheckVersionNumber(number int) error {
	v, err := VersionFromNumber(number)
	if err != nil {
		return err
	}
	constraint, err := semver.NewConstraint("<= " + Version)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return errors.Wrapf(ErrUnsupportedVersion, "document version %s is newer than %s", v, Version)
	}
	return nil
}

// VersionAtLeast reports whether a document tag is at or above the given semantic version.
func VersionAtLeast(number int, version string) bool {
	floor, err := VersionNumber(version)
	if err != nil {
		return false
	}
	return number >= floor
}
