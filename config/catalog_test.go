package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogMultiValued(t *testing.T) {
	catalog := Default()

	assert.False(t, catalog.MultiValued("SOA"))
	assert.False(t, catalog.MultiValued("CNAME"))
	assert.True(t, catalog.MultiValued("A"))
	assert.True(t, catalog.MultiValued("NS"))
	assert.True(t, catalog.MultiValued("TXT"))

	// Unknown types default to list-capable.
	assert.True(t, catalog.MultiValued("SVCB"))
}
