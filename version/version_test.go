package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/docgen/version"
)

func TestString(t *testing.T) {
	got := version.String()

	assert.Contains(t, got, version.GoVersion)
	assert.Contains(t, got, "revision "+version.Revision)

	if version.Version == "" {
		assert.Contains(t, got, "devel")
	}
}
