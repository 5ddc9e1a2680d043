// Package scene loads diagram snapshots and routing settings from YAML or JSON files.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"edgeroute/connections"
	"edgeroute/core"
)

// Format is the encoding of a scene file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// HandleAuto asks the loader to pick the facing sides of the two nodes.
const HandleAuto = "auto"

// Settings holds routing configuration. Zero values select router defaults.
type Settings struct {
	Mode            string  `yaml:"mode,omitempty" json:"mode,omitempty"`
	Smooth          bool    `yaml:"smooth,omitempty" json:"smooth,omitempty"`
	GridMargin      float64 `yaml:"gridMargin,omitempty" json:"gridMargin,omitempty"`
	CollisionMargin float64 `yaml:"collisionMargin,omitempty" json:"collisionMargin,omitempty"`
	CornerRadius    float64 `yaml:"cornerRadius,omitempty" json:"cornerRadius,omitempty"`
	MaxIterations   int     `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
	GoalTolerance   float64 `yaml:"goalTolerance,omitempty" json:"goalTolerance,omitempty"`
	StrictSegments  bool    `yaml:"strictSegments,omitempty" json:"strictSegments,omitempty"`
}

// EdgeSpec is an edge as written in a scene file.
type EdgeSpec struct {
	ID           string `yaml:"id,omitempty" json:"id,omitempty"`
	Source       string `yaml:"source" json:"source"`
	Target       string `yaml:"target" json:"target"`
	SourceHandle string `yaml:"sourceHandle,omitempty" json:"sourceHandle,omitempty"`
	TargetHandle string `yaml:"targetHandle,omitempty" json:"targetHandle,omitempty"`
	Label        string `yaml:"label,omitempty" json:"label,omitempty"`
}

// Scene is a diagram snapshot.
type Scene struct {
	Settings Settings    `yaml:"settings" json:"settings"`
	Nodes    []core.Node `yaml:"nodes" json:"nodes"`
	Edges    []EdgeSpec  `yaml:"edges" json:"edges"`
}

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("edge references unknown node")
	ErrEmptyNodeID   = errors.New("node without id")
)

// Load reads a scene file. Files ending in .json are parsed as JSON,
// everything else as YAML.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	default:
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks node IDs are unique and every edge references existing nodes.
func (s *Scene) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w at index %d", ErrEmptyNodeID, i)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		seen[n.ID] = true
	}

	for i, e := range s.Edges {
		for _, id := range []string{e.Source, e.Target} {
			if !seen[id] {
				return fmt.Errorf("edge %d: %w: %q", i, ErrUnknownNode, id)
			}
		}
	}
	return nil
}

// Mode returns the routing mode. Unknown names fall back to default.
func (s *Scene) Mode() core.RouteMode {
	return core.ParseMode(s.Settings.Mode)
}

// RouterOptions converts the settings into router options.
func (s *Scene) RouterOptions(logger *slog.Logger) connections.Options {
	return connections.Options{
		GridMargin:      s.Settings.GridMargin,
		CollisionMargin: s.Settings.CollisionMargin,
		CornerRadius:    s.Settings.CornerRadius,
		MaxIterations:   s.Settings.MaxIterations,
		GoalTolerance:   s.Settings.GoalTolerance,
		StrictSegments:  s.Settings.StrictSegments,
		Logger:          logger,
	}
}

// CoreEdges converts the edge specs, resolving "auto" handles and generating
// missing IDs. Unknown handle names become HandleNone.
func (s *Scene) CoreEdges() []core.Edge {
	byID := make(map[string]core.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		byID[n.ID] = n
	}

	edges := make([]core.Edge, len(s.Edges))
	for i, es := range s.Edges {
		e := core.Edge{
			ID:           es.ID,
			Source:       es.Source,
			Target:       es.Target,
			SourceHandle: core.ParseHandle(es.SourceHandle),
			TargetHandle: core.ParseHandle(es.TargetHandle),
		}
		if e.ID == "" {
			e.ID = fmt.Sprintf("%s->%s#%d", es.Source, es.Target, i)
		}

		autoSource := strings.EqualFold(es.SourceHandle, HandleAuto)
		autoTarget := strings.EqualFold(es.TargetHandle, HandleAuto)
		if autoSource || autoTarget {
			sh, th := connections.ChooseHandles(byID[es.Source], byID[es.Target])
			if autoSource {
				e.SourceHandle = sh
			}
			if autoTarget {
				e.TargetHandle = th
			}
		}
		edges[i] = e
	}
	return edges
}

// Label returns the label of the edge at edgeIndex.
func (s *Scene) Label(edgeIndex int) string {
	if edgeIndex < 0 || edgeIndex >= len(s.Edges) {
		return ""
	}
	return s.Edges[edgeIndex].Label
}
