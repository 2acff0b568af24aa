package zonegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrail/dnstree"
)

func record(typeName string, ttl uint32, data ...string) dnstree.Record {
	return dnstree.Record{Type: typeName, Class: "IN", TTL: dnstree.TTL(ttl), Data: data}
}

func soaSet(rname string) dnstree.RecordSet {
	return dnstree.RecordSet{
		"SOA": {record("SOA", 3600, "ns1.example.org.", rname, "1", "7200", "3600", "1209600", "3600")},
	}
}

func domain(t *testing.T, s string) dnstree.Domain {
	t.Helper()
	d, err := dnstree.ParseDomain(s)
	require.NoError(t, err)
	return d
}

func TestExtractZoneBoundary(t *testing.T) {
	// example.org starts a zone; www's A record belongs to it through
	// same-zone inheritance, not parent attribution.
	tree := &dnstree.Node{Children: map[string]*dnstree.Node{
		"org": {Children: map[string]*dnstree.Node{
			"example": {
				Records: dnstree.RecordSet{
					"SOA": soaSet("hostmaster.example.org.")["SOA"],
					"NS":  {record("NS", 3600, "ns1.example.org.")},
				},
				Children: map[string]*dnstree.Node{
					"www": {Records: dnstree.RecordSet{
						"A": {record("A", 300, "192.0.2.1")},
					}},
				},
			},
		}},
	}}

	zones, err := Extract(tree, dnstree.Root())
	require.NoError(t, err)
	require.Len(t, zones, 1)

	zone := zones[0]
	assert.Equal(t, "example.org.", zone.Name.String())
	require.Len(t, zone.Records, 3)
	assert.Equal(t, "SOA", zone.Records[0].Type)
	assert.Equal(t, "NS", zone.Records[1].Type)
	assert.Equal(t, "A", zone.Records[2].Type)
	assert.Equal(t, "www.example.org.", zone.Records[2].Domain.String())
	assert.Equal(t, uint32(300), zone.Records[2].TTL)
}

func TestExtractParentPropagation(t *testing.T) {
	// sub declares no SOA: its parent-attributed NS lands in the zone that
	// encloses it, example.org.
	tree := &dnstree.Node{Children: map[string]*dnstree.Node{
		"org": {Children: map[string]*dnstree.Node{
			"example": {
				Records: soaSet("hostmaster.example.org."),
				Children: map[string]*dnstree.Node{
					"sub": {Parent: dnstree.RecordSet{
						"NS": {record("NS", 300, "ns3.example.org.")},
					}},
				},
			},
		}},
	}}

	zones, err := Extract(tree, dnstree.Root())
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "example.org.", zones[0].Name.String())
	require.Len(t, zones[0].Records, 2)
	assert.Equal(t, "NS", zones[0].Records[1].Type)
	assert.Equal(t, "sub.example.org.", zones[0].Records[1].Domain.String())
}

func TestExtractDelegatedZoneGlue(t *testing.T) {
	// sub starts its own zone; its parent-attributed glue NS still lands in
	// example.org, while its own records belong to the new zone.
	tree := &dnstree.Node{Children: map[string]*dnstree.Node{
		"org": {Children: map[string]*dnstree.Node{
			"example": {
				Records: soaSet("hostmaster.example.org."),
				Children: map[string]*dnstree.Node{
					"sub": {
						Records: dnstree.RecordSet{
							"SOA": soaSet("hostmaster.sub.example.org.")["SOA"],
							"NS":  {record("NS", 300, "ns1.sub.example.org.")},
						},
						Parent: dnstree.RecordSet{
							"NS": {record("NS", 300, "ns1.sub.example.org.")},
						},
					},
				},
			},
		}},
	}}

	zones, err := Extract(tree, dnstree.Root())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	outer, inner := zones[0], zones[1]
	assert.Equal(t, "example.org.", outer.Name.String())
	assert.Equal(t, "sub.example.org.", inner.Name.String())

	require.Len(t, outer.Records, 2)
	assert.Equal(t, "NS", outer.Records[1].Type)
	assert.Equal(t, "sub.example.org.", outer.Records[1].Domain.String())

	require.Len(t, inner.Records, 2)
	assert.Equal(t, "SOA", inner.Records[0].Type)
	assert.Equal(t, "NS", inner.Records[1].Type)
}

func TestExtractZoneDiscoveryOrder(t *testing.T) {
	tree := &dnstree.Node{Children: map[string]*dnstree.Node{
		"org": {
			Records: soaSet("hostmaster.org."),
			Children: map[string]*dnstree.Node{
				"alpha": {Records: soaSet("hostmaster.alpha.org.")},
				"beta":  {Records: soaSet("hostmaster.beta.org.")},
			},
		},
	}}

	zones, err := Extract(tree, dnstree.Root())
	require.NoError(t, err)
	require.Len(t, zones, 3)
	assert.Equal(t, "org.", zones[0].Name.String())
	assert.Equal(t, "alpha.org.", zones[1].Name.String())
	assert.Equal(t, "beta.org.", zones[2].Name.String())
}

func TestExtractIncludeAttribution(t *testing.T) {
	tree := &dnstree.Node{Children: map[string]*dnstree.Node{
		"org": {Children: map[string]*dnstree.Node{
			"example": {
				Records: soaSet("hostmaster.example.org."),
				Children: map[string]*dnstree.Node{
					"www": {Includes: []dnstree.Include{{File: "extra.zone"}}},
				},
			},
		}},
	}}

	zones, err := Extract(tree, dnstree.Root())
	require.NoError(t, err)
	require.Len(t, zones, 1)
	require.Len(t, zones[0].Includes, 1)
	assert.Equal(t, "extra.zone", zones[0].Includes[0].File)
	assert.Equal(t, "www.example.org.", zones[0].Includes[0].Domain.String())
}

func TestExtractNoEnclosingZone(t *testing.T) {
	t.Run("parent records above any zone", func(t *testing.T) {
		tree := &dnstree.Node{Children: map[string]*dnstree.Node{
			"org": {Parent: dnstree.RecordSet{
				"NS": {record("NS", 300, "ns1.org.")},
			}},
		}}
		_, err := Extract(tree, dnstree.Root())
		var noZone *dnstree.NoEnclosingZoneError
		require.ErrorAs(t, err, &noZone)
		assert.Equal(t, "org.", noZone.Domain)
		assert.Equal(t, "NS", noZone.Type)
	})

	t.Run("parent records at an outermost zone apex", func(t *testing.T) {
		tree := &dnstree.Node{Children: map[string]*dnstree.Node{
			"org": {
				Records: soaSet("hostmaster.org."),
				Parent: dnstree.RecordSet{
					"NS": {record("NS", 300, "ns1.org.")},
				},
			},
		}}
		_, err := Extract(tree, dnstree.Root())
		var noZone *dnstree.NoEnclosingZoneError
		require.ErrorAs(t, err, &noZone)
	})

	t.Run("plain records outside any zone", func(t *testing.T) {
		tree := &dnstree.Node{Children: map[string]*dnstree.Node{
			"org": {Records: dnstree.RecordSet{
				"A": {record("A", 300, "192.0.2.1")},
			}},
		}}
		_, err := Extract(tree, dnstree.Root())
		var noZone *dnstree.NoEnclosingZoneError
		require.ErrorAs(t, err, &noZone)
		assert.Equal(t, "A", noZone.Type)
	})

	t.Run("include outside any zone", func(t *testing.T) {
		tree := &dnstree.Node{Includes: []dnstree.Include{{File: "extra.zone"}}}
		_, err := Extract(tree, dnstree.Root())
		var noZone *dnstree.NoEnclosingZoneError
		require.ErrorAs(t, err, &noZone)
		assert.Equal(t, "extra.zone", noZone.File)
	})
}

func TestExtractFromNonRootOrigin(t *testing.T) {
	tree := &dnstree.Node{
		Records: soaSet("hostmaster.example.org."),
		Children: map[string]*dnstree.Node{
			"www": {Records: dnstree.RecordSet{
				"A": {record("A", 300, "192.0.2.1")},
			}},
		},
	}

	zones, err := Extract(tree, domain(t, "example.org."))
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "example.org.", zones[0].Name.String())
	assert.Equal(t, "www.example.org.", zones[0].Records[1].Domain.String())
}
