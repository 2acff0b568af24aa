package zonegen

import (
	"fmt"
	"strings"
)

// Render produces the zone's file text: one line per record, then one line
// per include, in extraction order. Domains are rendered in absolute form.
func (z Zone) Render() string {
	var b strings.Builder
	for _, r := range z.Records {
		fmt.Fprintf(&b, "%s %d %s %s %s\n", r.Domain, r.TTL, r.Class, r.Type, strings.Join(r.Data, " "))
	}
	for _, include := range z.Includes {
		fmt.Fprintf(&b, "$INCLUDE %q %s\n", include.File, include.Domain)
	}
	return b.String()
}

// Filename is the conventional output name for the zone: its apex without
// the trailing separator. The root zone maps to "root".
func (z Zone) Filename() string {
	name := strings.TrimSuffix(z.Name.String(), ".")
	if name == "" {
		return "root"
	}
	return name
}
