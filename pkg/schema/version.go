package schema

import (
	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/graphclip/pkg/errors"
)

// CurrentVersion is the schema version written by encoders.
const CurrentVersion = "1.0"

var (
	supportedVersions = mustConstraint("^1")
	legacyVersions    = mustConstraint("<1.0.0")
)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// Migrate upgrades doc to the current schema in place.
//
// Documents without metadata or version are treated as current. Pre-1.0
// drafts have their legacy producer field moved to producerVersion and are
// stamped with [CurrentVersion]. Documents from an unknown major version, or
// with a version that does not parse, are rejected with UNSUPPORTED_VERSION.
func Migrate(doc *Document) error {
	if doc == nil || doc.Metadata == nil || doc.Metadata.Version == "" {
		return nil
	}
	md := doc.Metadata

	v, err := semver.NewVersion(md.Version)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnsupportedVersion, err, "invalid schema version %q", md.Version)
	}

	switch {
	case legacyVersions.Check(v):
		if md.ProducerVersion == "" {
			md.ProducerVersion = md.LegacyProducer
		}
		md.LegacyProducer = ""
		md.Version = CurrentVersion
	case supportedVersions.Check(v):
		if md.ProducerVersion == "" {
			md.ProducerVersion = md.LegacyProducer
		}
	default:
		return errors.New(errors.ErrCodeUnsupportedVersion,
			"schema version %s is newer than supported %s", md.Version, CurrentVersion)
	}
	return nil
}
