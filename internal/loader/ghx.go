package loader

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/sonomirco/defgraph/internal/graph"
)

// Script component type GUIDs from the Grasshopper ecosystem. GUID-based
// detection is more reliable than names, which users can rename.
var ghxScriptTypeGUIDs = map[string]graph.Language{
	"7f5c6c55-f846-4a08-9c9a-cfdc285cc6fe": graph.LangCSharp,
	"410755b1-224a-4c1e-a407-bf32fb45ea7e": graph.LangPython,
	"505bb490-8b2d-4056-b655-64c4d4ad61d9": graph.LangVBNet,
}

// Name-based fallback for archives written before stable type GUIDs.
var ghxScriptTypeNames = map[string]graph.Language{
	"C# Script":       graph.LangCSharp,
	"GhPython Script": graph.LangPython,
	"VB.NET Script":   graph.LangVBNet,
}

// Common built-in component names. Types outside this set (and outside the
// script tables) are retained generically and surfaced as unknown.
var ghxKnownTypeNames = map[string]struct{}{
	"Panel":          {},
	"Scribble":       {},
	"Group":          {},
	"Sketch":         {},
	"Number Slider":  {},
	"Boolean Toggle": {},
	"Button":         {},
	"Value List":     {},
	"Point":          {},
	"Curve":          {},
	"Geometry":       {},
	"Number":         {},
	"Integer":        {},
	"Text":           {},
}

var cdataPattern = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// ghxChunk mirrors the recursive chunk structure of a Grasshopper archive.
type ghxChunk struct {
	Name   string     `xml:"name,attr"`
	Items  []ghxItem  `xml:"items>item"`
	Chunks []ghxChunk `xml:"chunks>chunk"`
}

type ghxItem struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// find returns the first descendant chunk with the given name.
func (c *ghxChunk) find(name string) *ghxChunk {
	for i := range c.Chunks {
		child := &c.Chunks[i]
		if child.Name == name {
			return child
		}
		if found := child.find(name); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant chunk with the given name, in document
// order. Matching chunks are not searched for nested matches.
func (c *ghxChunk) findAll(name string) []*ghxChunk {
	var out []*ghxChunk
	for i := range c.Chunks {
		child := &c.Chunks[i]
		if child.Name == name {
			out = append(out, child)
			continue
		}
		out = append(out, child.findAll(name)...)
	}
	return out
}

// item returns the trimmed value of a direct item by name.
func (c *ghxChunk) item(name string) string {
	for _, it := range c.Items {
		if it.Name == name {
			return strings.TrimSpace(it.Value)
		}
	}
	return ""
}

// itemRaw returns an item value byte-for-byte, for script code bodies.
func (c *ghxChunk) itemRaw(name string) (string, bool) {
	for _, it := range c.Items {
		if it.Name == name {
			return it.Value, true
		}
	}
	return "", false
}

// itemAll returns the trimmed values of every direct item with the name.
func (c *ghxChunk) itemAll(name string) []string {
	var out []string
	for _, it := range c.Items {
		if it.Name == name {
			out = append(out, strings.TrimSpace(it.Value))
		}
	}
	return out
}

// ghxWire is a connection recorded during the node pass, resolved against
// the parameter-ownership index afterwards.
type ghxWire struct {
	sourceRef string
	toID      string
	toSlot    string
}

// parseGHX decodes a Grasshopper archive into the generic graph model.
func parseGHX(data []byte) (*graph.Graph, error) {
	var archive ghxChunk
	if err := xml.Unmarshal(data, &archive); err != nil {
		return nil, err
	}

	g := graph.New()

	defObjects := archive.find("DefinitionObjects")
	if defObjects == nil {
		// Well-formed XML without definition objects: an empty but valid
		// definition, not a parse failure.
		return g, nil
	}

	// paramOwner maps a parameter's own instance guid to its owning node,
	// paramSlot to the declared slot name. Wires reference parameter guids
	// for component ports and node guids for standalone parameters.
	paramOwner := make(map[string]string)
	paramSlot := make(map[string]string)
	var wires []ghxWire

	for _, object := range defObjects.findAll("Object") {
		typeGUID := canonicalID(object.item("GUID"))
		typeName := object.item("Name")

		container := object.find("Container")
		if container == nil {
			continue
		}
		nodeID := canonicalID(container.item("InstanceGuid"))
		if nodeID == "" {
			continue
		}

		name := container.item("Name")
		nickname := container.item("NickName")
		if name == "" {
			name = typeName
		}

		lang, isScript := ghxScriptTypeGUIDs[typeGUID]
		if !isScript {
			lang, isScript = ghxScriptTypeNames[typeName]
		}

		node := graph.Node{
			ID:          nodeID,
			Type:        typeName,
			DisplayName: ghxDisplayName(nickname, name, typeName, nodeID),
		}

		if paramData := container.find("ParameterData"); paramData != nil {
			for _, in := range append(paramData.findAll("InputParam"), paramData.findAll("param_input")...) {
				slot := ghxSlot(in)
				node.Inputs = append(node.Inputs, slot)
				registerGHXParam(in, nodeID, slot.Name, paramOwner, paramSlot)
				for _, src := range in.itemAll("Source") {
					wires = append(wires, ghxWire{sourceRef: canonicalID(src), toID: nodeID, toSlot: slot.Name})
				}
			}
			for _, out := range append(paramData.findAll("OutputParam"), paramData.findAll("param_output")...) {
				slot := ghxSlot(out)
				node.Outputs = append(node.Outputs, slot)
				registerGHXParam(out, nodeID, slot.Name, paramOwner, paramSlot)
			}
		}

		// Standalone parameter objects (sliders, panels) carry their wire
		// sources directly on the container.
		for _, src := range container.itemAll("Source") {
			wires = append(wires, ghxWire{sourceRef: canonicalID(src), toID: nodeID, toSlot: "in"})
		}

		if isScript {
			node.Script = &graph.Script{Language: lang, Code: ghxScriptCode(container, lang)}
		} else if _, known := ghxKnownTypeNames[typeName]; !known {
			node.Unknown = true
		}

		g.AddNode(node)
	}

	if libs := archive.find("GHALibraries"); libs != nil {
		for _, lib := range libs.findAll("Library") {
			name := lib.item("Name")
			if name == "" {
				// Fall back to the assembly identity's simple name.
				if full := lib.item("AssemblyFullName"); full != "" {
					name = strings.TrimSpace(strings.SplitN(full, ",", 2)[0])
				}
			}
			if name != "" {
				g.AddLibrary(graph.Library{Name: name, Version: lib.item("Version")})
			}
		}
	}

	for _, w := range wires {
		fromID := w.sourceRef
		fromSlot := "out"
		if owner, ok := paramOwner[w.sourceRef]; ok {
			fromID = owner
			if slot, ok := paramSlot[w.sourceRef]; ok {
				fromSlot = slot
			}
		}
		g.AddConnection(graph.Connection{FromID: fromID, FromSlot: fromSlot, ToID: w.toID, ToSlot: w.toSlot})
	}

	return g, nil
}

func registerGHXParam(param *ghxChunk, nodeID, slotName string, paramOwner, paramSlot map[string]string) {
	if pid := canonicalID(param.item("InstanceGuid")); pid != "" {
		paramOwner[pid] = nodeID
		paramSlot[pid] = slotName
	}
}

func ghxSlot(param *ghxChunk) graph.Slot {
	name := param.item("NickName")
	if name == "" {
		name = param.item("Name")
	}
	typeTag := param.item("TypeName")
	if typeTag == "" {
		typeTag = param.item("Type")
	}
	return graph.Slot{Name: name, Type: typeTag}
}

// ghxScriptCode pulls the verbatim script body. Python components keep
// their source in CodeInput; C#/VB components sometimes only carry it
// CDATA-wrapped inside CompiledCode.
func ghxScriptCode(container *ghxChunk, lang graph.Language) string {
	code, ok := container.itemRaw("CodeInput")
	if ok && code != "" {
		return code
	}
	if lang == graph.LangPython {
		return code
	}
	compiled, ok := container.itemRaw("CompiledCode")
	if !ok {
		return code
	}
	if m := cdataPattern.FindStringSubmatch(compiled); m != nil {
		return m[1]
	}
	return compiled
}

func ghxDisplayName(nickname, name, typeName, id string) string {
	switch {
	case nickname != "":
		return nickname
	case name != "":
		return name
	case typeName != "":
		return typeName
	}
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "Component_" + short
}
