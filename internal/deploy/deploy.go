// Package deploy parses deployment documents into service definitions.
//
// A document is a YAML mapping with a top-level "services" key:
//
//	services:
//	  web:
//	    image: nginx:latest
//
// Load returns nil for an empty document or one without services. Every
// validation failure in a document is collected into a single ParseError.
package deploy

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Service is one declared service.
type Service struct {
	Name     string
	Image    string
	Detached bool
}

// Deployment is a parsed document. Service names are unique.
type Deployment struct {
	Services map[string]Service
}

// Names returns the service names in sorted order so output is reproducible.
func (d *Deployment) Names() []string {
	names := make([]string, 0, len(d.Services))
	for name := range d.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Problem is a single validation failure.
type Problem struct {
	Path    string
	Line    int
	Message string
}

func (p Problem) String() string {
	loc := p.Path
	if loc == "" {
		loc = "document"
	}
	if p.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", loc, p.Message, p.Line)
	}
	return fmt.Sprintf("%s: %s", loc, p.Message)
}

// ParseError reports a malformed or invalid deployment document.
// Err is set when the YAML itself could not be parsed; otherwise Problems
// lists every invalid field.
type ParseError struct {
	Problems []Problem
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid deployment: %v", e.Err)
	}
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "invalid deployment: " + strings.Join(parts, "; ")
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load parses text into a Deployment, applying detached to every service.
// Returns (nil, nil) when the document declares no deployment.
func Load(text string, detached bool) (*Deployment, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind == 0 || isNull(doc) {
		return nil, nil
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &ParseError{Problems: []Problem{{Line: doc.Line, Message: "must be a mapping"}}}
	}

	services := lookup(doc, "services")
	if services == nil || isNull(services) {
		return nil, nil
	}
	if services.Kind != yaml.MappingNode {
		return nil, &ParseError{Problems: []Problem{{Path: "services", Line: services.Line, Message: "must be a mapping of service names"}}}
	}

	d := &Deployment{Services: make(map[string]Service, len(services.Content)/2)}
	var problems []Problem

	for i := 0; i+1 < len(services.Content); i += 2 {
		key, val := services.Content[i], resolve(services.Content[i+1])
		name := key.Value
		path := "services." + name

		if key.Kind != yaml.ScalarNode || strings.TrimSpace(name) == "" {
			problems = append(problems, Problem{Path: "services", Line: key.Line, Message: "service name must be a non-empty string"})
			continue
		}
		if _, dup := d.Services[name]; dup {
			problems = append(problems, Problem{Path: path, Line: key.Line, Message: "duplicate service"})
			continue
		}

		svc, p := parseService(name, path, val)
		if p != nil {
			problems = append(problems, *p)
			continue
		}
		svc.Detached = detached
		d.Services[name] = svc
	}

	if len(problems) > 0 {
		sort.SliceStable(problems, func(i, j int) bool { return problems[i].Line < problems[j].Line })
		return nil, &ParseError{Problems: problems}
	}
	return d, nil
}

func parseService(name, path string, n *yaml.Node) (Service, *Problem) {
	if n.Kind != yaml.MappingNode {
		return Service{}, &Problem{Path: path, Line: n.Line, Message: "must be a mapping"}
	}
	image := lookup(n, "image")
	switch {
	case image == nil:
		return Service{}, &Problem{Path: path + ".image", Line: n.Line, Message: "field required"}
	case image.Kind != yaml.ScalarNode || image.Tag != "!!str":
		return Service{}, &Problem{Path: path + ".image", Line: image.Line, Message: "must be a string"}
	case strings.TrimSpace(image.Value) == "":
		return Service{}, &Problem{Path: path + ".image", Line: image.Line, Message: "must not be empty"}
	}
	return Service{Name: name, Image: image.Value}, nil
}

// lookup returns the value node for key in a mapping node, or nil.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

// resolve follows YAML aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
