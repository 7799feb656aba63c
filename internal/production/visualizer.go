// Package production provides inspection of live behavior trees. Trees are
// rendered as Graphviz DOT or captured as YAML snapshots that can be
// persisted; scheduler events can be forwarded to a channel.
package production

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	btx "github.com/comalice/behaviortreex"
)

type parent interface {
	Children() []btx.Behavior
}

type named interface {
	Name() string
}

// Snapshot is the status of one behavior and its subtree.
type Snapshot struct {
	Name     string     `yaml:"name"`
	Status   string     `yaml:"status"`
	Children []Snapshot `yaml:"children,omitempty"`
}

// Take captures the status of every behavior reachable from root.
func Take(root btx.Behavior) Snapshot {
	s := Snapshot{Name: nameOf(root), Status: root.Status().String()}
	if p, ok := root.(parent); ok {
		for _, child := range p.Children() {
			s.Children = append(s.Children, Take(child))
		}
	}
	return s
}

// ExportYAML renders a snapshot of root as YAML.
func ExportYAML(root btx.Behavior) ([]byte, error) {
	data, err := yaml.Marshal(Take(root))
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

var statusColors = map[btx.Status]string{
	btx.Running: "lightblue",
	btx.Success: "palegreen",
	btx.Failure: "salmon",
	btx.Aborted: "lightgray",
}

// ExportDOT generates Graphviz DOT source for the tree under root. Nodes are
// filled by their current status.
func ExportDOT(root btx.Behavior) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph BehaviorTree {
  rankdir=TB;
  node [shape=box, fontsize=10, style="rounded,filled", fillcolor=white];
`)
	next := 0
	renderBehavior(&buf, root, &next)
	buf.WriteString("}\n")
	return buf.String()
}

// renderBehavior writes b and its subtree and returns the DOT id of b.
func renderBehavior(buf *bytes.Buffer, b btx.Behavior, next *int) string {
	id := fmt.Sprintf("n%d", *next)
	*next++
	status := b.Status()
	attrs := fmt.Sprintf(`label="%s\n%s"`, escape(nameOf(b)), status)
	if color, ok := statusColors[status]; ok {
		attrs += ", fillcolor=" + color
	}
	fmt.Fprintf(buf, "  %s [%s];\n", id, attrs)

	if p, ok := b.(parent); ok {
		for i, child := range p.Children() {
			childID := renderBehavior(buf, child, next)
			fmt.Fprintf(buf, "  %s -> %s [label=\"%d\"];\n", id, childID, i)
		}
	}
	return id
}

// nameOf prefers a Name method and falls back to the unqualified type name.
func nameOf(b btx.Behavior) string {
	if n, ok := b.(named); ok {
		return n.Name()
	}
	name := fmt.Sprintf("%T", b)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
