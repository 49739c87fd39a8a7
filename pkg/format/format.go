package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/EckmanTechLLC/flux-go/pkg/property"
	"github.com/EckmanTechLLC/flux-go/pkg/state"
	"github.com/EckmanTechLLC/flux-go/pkg/wire"
)

// timestampWidth truncates RFC 3339 timestamps to second precision
// ("2024-06-01T12:30:45") for single-line output.
const timestampWidth = 19

// Options controls entity rendering.
type Options struct {
	// Compact selects the one-line form instead of the multi-line one.
	Compact bool
}

// Message renders an inbound subscription message as a single display
// string.
func Message(msg wire.Message) string {
	switch m := msg.(type) {
	case wire.Update:
		return fmt.Sprintf("[%s] %s: %s",
			truncate(m.Entity.LastUpdated), m.Entity.ID, propertyList(m.Entity.Properties))
	case wire.Snapshot:
		return fmt.Sprintf("[SNAPSHOT] %s: %s",
			m.Entity.ID, propertyJSON(m.Entity.Properties, false))
	case wire.Unrecognized:
		return rawJSON(m.Raw)
	default:
		return fmt.Sprintf("%v", msg)
	}
}

// Entity renders an entity snapshot. The compact form is a single line
// with the update time in parentheses; the full form lists the
// properties as indented JSON.
func Entity(e state.Entity, opts Options) string {
	if opts.Compact {
		return fmt.Sprintf("%s: %s (updated: %s)",
			e.ID, propertyList(e.Properties), truncate(e.LastUpdated))
	}
	return fmt.Sprintf("Entity: %s\nLast Updated: %s\nProperties:\n%s\n",
		e.ID, e.LastUpdated, propertyJSON(e.Properties, true))
}

func truncate(timestamp string) string {
	if len(timestamp) > timestampWidth {
		return timestamp[:timestampWidth]
	}
	return timestamp
}

// propertyList renders "k=v, k=v" in sorted key order.
func propertyList(props property.Map) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+props[k].String())
	}
	return strings.Join(parts, ", ")
}

func propertyJSON(props property.Map, indent bool) string {
	if props == nil {
		props = property.Map{}
	}
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(props, "", "  ")
	} else {
		data, err = json.Marshal(props)
	}
	if err != nil {
		return fmt.Sprintf("%v", props)
	}
	return string(data)
}

// rawJSON indents the payload when it is valid JSON, otherwise returns
// it verbatim.
func rawJSON(raw []byte) string {
	if json.Valid(raw) {
		var buf bytes.Buffer
		if json.Indent(&buf, raw, "", "  ") == nil {
			return buf.String()
		}
	}
	return string(raw)
}
