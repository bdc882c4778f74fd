package loader

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sonomirco/defgraph/internal/graph"
)

// dynDocument mirrors the top-level layout of a Dynamo .dyn workspace.
type dynDocument struct {
	UUID                    string         `json:"Uuid"`
	Name                    string         `json:"Name"`
	Nodes                   []dynNode      `json:"Nodes"`
	Connectors              []dynConnector `json:"Connectors"`
	View                    *dynView       `json:"View"`
	NodeLibraryDependencies []dynPackage   `json:"NodeLibraryDependencies"`
}

type dynNode struct {
	ConcreteType      string    `json:"ConcreteType"`
	ID                string    `json:"Id"`
	NodeType          string    `json:"NodeType"`
	Inputs            []dynPort `json:"Inputs"`
	Outputs           []dynPort `json:"Outputs"`
	Code              string    `json:"Code"`
	Engine            string    `json:"Engine"`
	EngineName        string    `json:"EngineName"`
	FunctionSignature string    `json:"FunctionSignature"`
	Description       string    `json:"Description"`
}

type dynPort struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	TypeName    string `json:"TypeName"`
	Description string `json:"Description"`
}

type dynConnector struct {
	Start string `json:"Start"`
	End   string `json:"End"`
}

type dynView struct {
	NodeViews []dynNodeView `json:"NodeViews"`
}

type dynNodeView struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// Well-known built-in node kinds; anything else is retained generically.
var dynKnownTypeFragments = []string{
	"dsfunction",
	"codeblock",
	"python",
	"coregui", // watch, sliders, selectors
	"inputnodes",
	"dsoffice",
	"stringnodes",
}

// parseDYN decodes a Dynamo JSON workspace into the generic graph model.
func parseDYN(data []byte) (*graph.Graph, error) {
	var doc dynDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Nodes == nil && doc.Connectors == nil {
		// Well-formed JSON that is not a Dynamo workspace at all.
		return nil, fmt.Errorf("missing Nodes and Connectors sections")
	}

	g := graph.New()

	viewNames := make(map[string]string)
	if doc.View != nil {
		for _, nv := range doc.View.NodeViews {
			if nv.ID != "" && nv.Name != "" {
				viewNames[canonicalID(nv.ID)] = nv.Name
			}
		}
	}

	// Connectors reference port ids, not node ids; index ports first.
	portNode := make(map[string]string)
	portSlot := make(map[string]string)

	for _, n := range doc.Nodes {
		nodeID := canonicalID(n.ID)
		if nodeID == "" {
			continue
		}
		typeName := dynShortType(n.ConcreteType)
		if typeName == "" {
			typeName = n.NodeType
		}

		node := graph.Node{
			ID:          nodeID,
			Type:        typeName,
			DisplayName: dynDisplayName(n, viewNames[nodeID], typeName, nodeID),
		}
		for _, p := range n.Inputs {
			node.Inputs = append(node.Inputs, graph.Slot{Name: p.Name, Type: p.TypeName})
			registerDYNPort(p, nodeID, portNode, portSlot)
		}
		for _, p := range n.Outputs {
			node.Outputs = append(node.Outputs, graph.Slot{Name: p.Name, Type: p.TypeName})
			registerDYNPort(p, nodeID, portNode, portSlot)
		}

		concrete := strings.ToLower(n.ConcreteType)
		switch {
		case strings.Contains(concrete, "python"):
			node.Script = &graph.Script{Language: graph.LangPython, Code: n.Code}
		case strings.Contains(concrete, "codeblock"):
			node.Script = &graph.Script{Language: graph.LangDesignScript, Code: n.Code}
		default:
			node.Unknown = !dynKnownType(concrete)
		}

		g.AddNode(node)

		// DSFunction signatures are library calls the definition depends on.
		if strings.Contains(concrete, "dsfunction") && n.FunctionSignature != "" {
			g.AddLibrary(graph.Library{Name: dynFunctionNamespace(n.FunctionSignature)})
		}
	}

	for _, pkg := range doc.NodeLibraryDependencies {
		if name := pkg.name(); name != "" {
			g.AddLibrary(graph.Library{Name: name, Version: pkg.Version})
		}
	}

	for _, c := range doc.Connectors {
		start := canonicalID(c.Start)
		end := canonicalID(c.End)
		fromID, okFrom := portNode[start]
		toID, okTo := portNode[end]
		if !okFrom || !okTo {
			g.Warn(graph.Warning{
				Kind:   graph.WarnDanglingEndpoint,
				Detail: fmt.Sprintf("connector references undeclared port %s -> %s", c.Start, c.End),
			})
			continue
		}
		g.AddConnection(graph.Connection{
			FromID:   fromID,
			FromSlot: portSlot[start],
			ToID:     toID,
			ToSlot:   portSlot[end],
		})
	}

	return g, nil
}

type dynPackage struct {
	Name          string `json:"Name"`
	ReferenceName string `json:"ReferenceName"`
	Version       string `json:"Version"`
}

func (p dynPackage) name() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ReferenceName
}

func registerDYNPort(p dynPort, nodeID string, portNode, portSlot map[string]string) {
	if p.ID == "" {
		return
	}
	pid := canonicalID(p.ID)
	portNode[pid] = nodeID
	portSlot[pid] = p.Name
}

// dynShortType reduces "PythonNodeModels.PythonNode, PythonNodeModels"
// down to "PythonNode".
func dynShortType(concrete string) string {
	if concrete == "" {
		return ""
	}
	left := strings.SplitN(concrete, ",", 2)[0]
	parts := strings.Split(left, ".")
	return parts[len(parts)-1]
}

func dynKnownType(concreteLower string) bool {
	for _, fragment := range dynKnownTypeFragments {
		if strings.Contains(concreteLower, fragment) {
			return true
		}
	}
	return false
}

func dynDisplayName(n dynNode, viewName, typeName, id string) string {
	switch {
	case viewName != "":
		return viewName
	case n.Description != "":
		return n.Description
	case n.FunctionSignature != "":
		return n.FunctionSignature
	case typeName != "":
		return typeName
	}
	return id
}

// dynFunctionNamespace trims a DSFunction signature to its namespace root,
// e.g. "Autodesk.DesignScript.Geometry.Point.ByCoordinates@double,double"
// becomes "Autodesk.DesignScript.Geometry".
func dynFunctionNamespace(signature string) string {
	sig := strings.SplitN(signature, "@", 2)[0]
	parts := strings.Split(sig, ".")
	if len(parts) > 2 {
		parts = parts[:len(parts)-2]
	}
	return strings.Join(parts, ".")
}
