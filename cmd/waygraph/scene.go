package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hupe1980/waygraph"
	"github.com/hupe1980/waygraph/codec"
	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
	"github.com/hupe1980/waygraph/route"
)

// Scene is a TOML description of drawings to apply to a graph.
type Scene struct {
	Name    string        `toml:"name"`
	Input   string        `toml:"input"`  // encoded graph to start from
	Output  string        `toml:"output"` // where to write the result
	Dedup   bool          `toml:"dedup"`
	Strokes []SceneStroke `toml:"stroke"`
	Markers []SceneMarker `toml:"marker"`
}

// SceneStroke is one drawing.
type SceneStroke struct {
	Tool         string      `toml:"tool"` // line, quadratic, cubic, spline
	From         []float64   `toml:"from"`
	To           []float64   `toml:"to"`
	Control      []float64   `toml:"control"`
	Control2     []float64   `toml:"control2"`
	Via          [][]float64 `toml:"via"`
	Chain        bool        `toml:"chain"` // start at the end of the previous stroke
	Direction    string      `toml:"direction"`
	Priority     string      `toml:"priority"`
	MaxLength    float64     `toml:"max_length"`
	NodeCount    int         `toml:"node_count"`
	StartTangent uint64      `toml:"start_tangent"` // neighbor id of the start anchor
	EndTangent   uint64      `toml:"end_tangent"`   // neighbor id of the end anchor
}

// SceneMarker names the node at a position.
type SceneMarker struct {
	At    []float64 `toml:"at"`
	Name  string    `toml:"name"`
	Group string    `toml:"group"`
	Index int       `toml:"index"`
}

// StrokeResult reports what a stroke added.
type StrokeResult struct {
	Tool  string
	Nodes []graph.NodeID
}

func loadScene(path string) (*Scene, error) {
	var s Scene
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if len(s.Strokes) == 0 && len(s.Markers) == 0 {
		return nil, errors.New("scene has no strokes or markers")
	}
	dir := filepath.Dir(path)
	if s.Input != "" && !filepath.IsAbs(s.Input) {
		s.Input = filepath.Join(dir, s.Input)
	}
	if s.Output != "" && !filepath.IsAbs(s.Output) {
		s.Output = filepath.Join(dir, s.Output)
	}
	return &s, nil
}

func vec(field string, v []float64) (geom.Vec2, error) {
	if len(v) != 2 {
		return geom.Vec2{}, fmt.Errorf("%s: want [x, y], got %v", field, v)
	}
	return geom.V(v[0], v[1]), nil
}

func tangent(id uint64) route.Tangent {
	if id == 0 {
		return route.Tangent{}
	}
	return route.TangentTo(graph.NodeID(id))
}

// tool turns a stroke into a route tool against the editor's current graph.
func (s SceneStroke) tool(ed *waygraph.Editor) (route.Tool, error) {
	stroke := ed.Stroke()
	if s.Direction != "" {
		d, err := graph.ParseDirection(s.Direction)
		if err != nil {
			return nil, err
		}
		stroke.Direction = d
	}
	if s.Priority != "" {
		p, err := graph.ParsePriority(s.Priority)
		if err != nil {
			return nil, err
		}
		stroke.Priority = p
	}
	switch {
	case s.NodeCount > 0:
		stroke.Segment.NodeCount = s.NodeCount
		stroke.Segment.LastEdited = route.ByCount
	case s.MaxLength > 0:
		stroke.Segment.MaxLength = s.MaxLength
	}

	var start route.Anchor
	if s.Chain {
		a, ok := ed.ChainStart()
		if !ok {
			return nil, errors.New("chain: no previous stroke")
		}
		start = a
	} else {
		p, err := vec("from", s.From)
		if err != nil {
			return nil, err
		}
		start = ed.Resolve(p)
	}
	to, err := vec("to", s.To)
	if err != nil {
		return nil, err
	}
	end := ed.Resolve(to)

	switch s.Tool {
	case "", "line":
		return route.LineTool{Start: start, End: end, Stroke: stroke}, nil
	case "quadratic":
		c, err := vec("control", s.Control)
		if err != nil {
			return nil, err
		}
		return route.QuadraticTool{Start: start, End: end, Control: c, Stroke: stroke}, nil
	case "cubic":
		c1, err := vec("control", s.Control)
		if err != nil {
			return nil, err
		}
		c2, err := vec("control2", s.Control2)
		if err != nil {
			return nil, err
		}
		return route.CubicTool{
			Start:        start,
			End:          end,
			Control1:     c1,
			Control2:     c2,
			StartTangent: tangent(s.StartTangent),
			EndTangent:   tangent(s.EndTangent),
			Stroke:       stroke,
		}, nil
	case "spline":
		via := make([]geom.Vec2, 0, len(s.Via))
		for i, v := range s.Via {
			p, err := vec(fmt.Sprintf("via[%d]", i), v)
			if err != nil {
				return nil, err
			}
			via = append(via, p)
		}
		return route.SplineTool{
			Start:        start,
			End:          end,
			Via:          via,
			StartTangent: tangent(s.StartTangent),
			EndTangent:   tangent(s.EndTangent),
			Stroke:       stroke,
		}, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", s.Tool)
	}
}

// openEditor starts an editor on the scene input, or on an empty graph.
func (s *Scene) openEditor(opts ...waygraph.Option) (*waygraph.Editor, error) {
	if s.Input == "" {
		return waygraph.New(opts...)
	}
	data, err := os.ReadFile(s.Input)
	if err != nil {
		return nil, err
	}
	return waygraph.Import(data, opts...)
}

// Run applies the scene to ed. Strokes are drawn in order so later ones snap
// to nodes of earlier ones.
func (s *Scene) Run(ed *waygraph.Editor) ([]StrokeResult, *graph.DedupResult, error) {
	results := make([]StrokeResult, 0, len(s.Strokes))
	for i, st := range s.Strokes {
		tool, err := st.tool(ed)
		if err != nil {
			return results, nil, fmt.Errorf("stroke %d: %w", i+1, err)
		}
		ids, err := ed.Draw(tool)
		if err != nil {
			return results, nil, fmt.Errorf("stroke %d: %w", i+1, err)
		}
		name := st.Tool
		if name == "" {
			name = "line"
		}
		results = append(results, StrokeResult{Tool: name, Nodes: ids})
	}

	var dedup *graph.DedupResult
	if s.Dedup {
		res, err := ed.Deduplicate()
		if err != nil {
			return results, nil, err
		}
		dedup = &res
	}

	for i, mk := range s.Markers {
		p, err := vec("at", mk.At)
		if err != nil {
			return results, dedup, fmt.Errorf("marker %d: %w", i+1, err)
		}
		id, ok := ed.Resolve(p).NodeID()
		if !ok {
			return results, dedup, fmt.Errorf("marker %d: no node near %v: %w", i+1, p, waygraph.ErrNotFound)
		}
		marker := graph.Marker{NodeID: id, Name: mk.Name, Group: mk.Group, Index: mk.Index}
		if err := ed.Update(func(m *graph.Mutable) error { return m.AddMarker(marker) }); err != nil {
			return results, dedup, fmt.Errorf("marker %d: %w", i+1, err)
		}
	}
	return results, dedup, nil
}

func readSnapshot(path string) (*graph.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data)
}

func writeSnapshot(path string, snap *graph.Snapshot, compression string) error {
	c, err := codec.ParseCompression(compression)
	if err != nil {
		return err
	}
	data, err := codec.Encode(snap, codec.WithCompression(c))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
