// Package icon renders the embedded SVG status icons into LED frames.
package icon

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/fcurrie/microbit-led-golang/internal/raster"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// Icon names
const (
	Heart   = "heart"
	Check   = "check"
	Cross   = "cross"
	ArrowUp = "arrow-up"
)

//go:embed svg/*.svg
var files embed.FS

// Names lists the embedded icons in sorted order
func Names() []string {
	entries, err := files.ReadDir("svg")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".svg"))
	}
	sort.Strings(names)
	return names
}

// Frame renders the named icon
func Frame(name string) (types.Frame, error) {
	data, err := files.ReadFile(path.Join("svg", name+".svg"))
	if err != nil {
		return types.Frame{}, fmt.Errorf("icon %q: %w", name, err)
	}

	ic, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.StrictErrorMode)
	if err != nil {
		return types.Frame{}, fmt.Errorf("icon %q: %w", name, err)
	}
	ic.SetTarget(0, 0, raster.Width, raster.Height)

	c := raster.NewCanvas()
	ic.Draw(rasterx.NewDasher(raster.Width, raster.Height, c.Scanner), 1)
	return c.Frame(raster.DefaultCoverage), nil
}

// Must renders the named icon and panics if it does not exist
func Must(name string) types.Frame {
	f, err := Frame(name)
	if err != nil {
		panic(err)
	}
	return f
}
