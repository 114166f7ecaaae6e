// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package atlas

import (
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// ExportFormat selects the rendering of an Atlas export.
type ExportFormat string

const (
	// FormatDOT writes graphviz dot source.
	FormatDOT ExportFormat = "dot"
	// FormatSVG renders an SVG image.
	FormatSVG ExportFormat = "svg"
)

// Export renders the call graph to a file at path. Specializations are
// boxes, async (spawn-reached) specializations are marked, and edges
// follow the Calls relation.
func (a *Atlas) Export(path string, format ExportFormat) error {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		graph.Close()
		gv.Close()
	}()

	graph.SetLayout("dot")

	nodes := make(map[string]*cgraph.Node)
	for _, name := range a.FunctionNames() {
		fn := a.Functions[name]
		node, err := graph.CreateNode(name)
		if err != nil {
			return fmt.Errorf("failed to create node %s: %w", name, err)
		}
		node.SetShape(cgraph.BoxShape)
		if fn.IsAsync {
			node.SetLabel(name + " (async)")
			node.SetColor("#40c4e6")
		}
		nodes[name] = node
	}

	for _, caller := range a.FunctionNames() {
		for _, callee := range a.Callees(caller) {
			to, ok := nodes[callee]
			if !ok {
				continue
			}
			edge, err := graph.CreateEdge(caller+"->"+callee, nodes[caller], to)
			if err != nil {
				return fmt.Errorf("failed to create edge %s -> %s: %w", caller, callee, err)
			}
			_ = edge
		}
	}

	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	default:
		gvFormat = graphviz.XDOT
	}

	if err := gv.RenderFilename(graph, gvFormat, path); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	return nil
}
