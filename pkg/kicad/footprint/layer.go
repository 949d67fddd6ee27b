package footprint

import (
	"fmt"
	"strings"
)

// Layer is a KiCad layer name such as "F.Cu" or the wildcard "*.Mask".
type Layer string

// Board layers.
const (
	LayerFCu      Layer = "F.Cu"
	LayerBCu      Layer = "B.Cu"
	LayerBAdhes   Layer = "B.Adhes"
	LayerFAdhes   Layer = "F.Adhes"
	LayerBPaste   Layer = "B.Paste"
	LayerFPaste   Layer = "F.Paste"
	LayerBSilkS   Layer = "B.SilkS"
	LayerFSilkS   Layer = "F.SilkS"
	LayerBMask    Layer = "B.Mask"
	LayerFMask    Layer = "F.Mask"
	LayerDwgsUser Layer = "Dwgs.User"
	LayerCmtsUser Layer = "Cmts.User"
	LayerEco1User Layer = "Eco1.User"
	LayerEco2User Layer = "Eco2.User"
	LayerEdgeCuts Layer = "Edge.Cuts"
	LayerMargin   Layer = "Margin"
	LayerBCrtYd   Layer = "B.CrtYd"
	LayerFCrtYd   Layer = "F.CrtYd"
	LayerBFab     Layer = "B.Fab"
	LayerFFab     Layer = "F.Fab"
)

// Wildcards accepted in pad layer lists.
const (
	LayerAllCu    Layer = "*.Cu"
	LayerAllMask  Layer = "*.Mask"
	LayerAllPaste Layer = "*.Paste"
	LayerAllSilkS Layer = "*.SilkS"
	LayerAllAdhes Layer = "*.Adhes"
	LayerFBCu     Layer = "F&B.Cu"
)

// LayerSet is an ordered list of layers. Order is preserved on output.
type LayerSet []Layer

// Standard pad layer sets.
var (
	LayersTHT  = LayerSet{LayerAllCu, LayerAllMask}
	LayersSMD  = LayerSet{LayerFCu, LayerFPaste, LayerFMask}
	LayersNPTH = LayerSet{LayerAllCu, LayerAllMask}
)

// layerNumbers maps layer names to their legacy board ordinal.
// Wildcards have no ordinal and map to -1.
var layerNumbers = func() map[Layer]int {
	m := map[Layer]int{
		LayerFCu:      0,
		LayerBCu:      31,
		LayerBAdhes:   32,
		LayerFAdhes:   33,
		LayerBPaste:   34,
		LayerFPaste:   35,
		LayerBSilkS:   36,
		LayerFSilkS:   37,
		LayerBMask:    38,
		LayerFMask:    39,
		LayerDwgsUser: 40,
		LayerCmtsUser: 41,
		LayerEco1User: 42,
		LayerEco2User: 43,
		LayerEdgeCuts: 44,
		LayerMargin:   45,
		LayerBCrtYd:   46,
		LayerFCrtYd:   47,
		LayerBFab:     48,
		LayerFFab:     49,

		LayerAllCu:    -1,
		LayerAllMask:  -1,
		LayerAllPaste: -1,
		LayerAllSilkS: -1,
		LayerAllAdhes: -1,
		LayerFBCu:     -1,
	}
	for i := 1; i <= 30; i++ {
		m[Layer(fmt.Sprintf("In%d.Cu", i))] = i
	}
	return m
}()

// Known reports whether l is a layer name KiCad accepts in a footprint.
func (l Layer) Known() bool {
	_, ok := layerNumbers[l]
	return ok
}

// Number returns the board ordinal of l. Wildcards and unknown names
// return false.
func (l Layer) Number() (int, bool) {
	n, ok := layerNumbers[l]
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// IsCopper reports whether l is a copper layer or copper wildcard.
func (l Layer) IsCopper() bool {
	return strings.HasSuffix(string(l), ".Cu")
}

// IsWildcard reports whether l names more than one physical layer.
func (l Layer) IsWildcard() bool {
	return strings.HasPrefix(string(l), "*.") || l == LayerFBCu
}

// Strings returns the layer names as plain strings.
func (s LayerSet) Strings() []string {
	out := make([]string, len(s))
	for i, l := range s {
		out[i] = string(l)
	}
	return out
}

// copperLayers returns the copper entries of s.
func (s LayerSet) copperLayers() LayerSet {
	var out LayerSet
	for _, l := range s {
		if l.IsCopper() {
			out = append(out, l)
		}
	}
	return out
}
