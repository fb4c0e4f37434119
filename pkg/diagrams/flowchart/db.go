package flowchart

import "strings"

// NodeShape selects the outline drawn around a node.
type NodeShape string

const (
	ShapeRect    NodeShape = "rect"
	ShapeRound   NodeShape = "round"
	ShapeStadium NodeShape = "stadium"
	ShapeCircle  NodeShape = "circle"
	ShapeDiamond NodeShape = "diamond"
)

// EdgeStyle selects the stroke of an edge.
type EdgeStyle string

const (
	EdgeArrow  EdgeStyle = "arrow"
	EdgeOpen   EdgeStyle = "open"
	EdgeDotted EdgeStyle = "dotted"
	EdgeThick  EdgeStyle = "thick"
)

// Node is one vertex of the flowchart.
type Node struct {
	ID    string
	Label string
	Shape NodeShape
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
	Style EdgeStyle
}

// Subgraph is a named cluster of nodes. Parent holds the id of the
// enclosing cluster when subgraphs nest.
type Subgraph struct {
	ID     string
	Title  string
	Parent string
	Nodes  []string
}

// DB accumulates the flowchart model as the parser walks the source.
// Nodes, edges and subgraphs keep their source order so rendering is
// deterministic.
type DB struct {
	title     string
	direction string
	nodes     []*Node
	nodeByID  map[string]*Node
	edges     []*Edge
	subgraphs []*Subgraph
	open      []*Subgraph // subgraph nesting stack during parse
}

// NewDB returns an empty flowchart model.
func NewDB() *DB {
	return &DB{nodeByID: map[string]*Node{}}
}

// Clear resets the model for the next parse.
func (db *DB) Clear() {
	*db = DB{nodeByID: map[string]*Node{}}
}

// SetDiagramTitle records the diagram title from frontmatter metadata.
func (db *DB) SetDiagramTitle(title string) { db.title = title }

// Title returns the diagram title, or "" when none was set.
func (db *DB) Title() string { return db.title }

// SetDirection records the layout direction (TB, TD, BT, LR or RL).
func (db *DB) SetDirection(dir string) {
	if dir == "TD" {
		dir = "TB"
	}
	db.direction = dir
}

// Direction returns the layout direction, defaulting to TB.
func (db *DB) Direction() string {
	if db.direction == "" {
		return "TB"
	}
	return db.direction
}

// AddNode records a mention of id. The first mention creates the node
// with its id as label; a mention that carries text or a shape updates
// the stored node, so `a --> b` followed by `b[Banana]` labels b.
func (db *DB) AddNode(id, label string, shape NodeShape) *Node {
	n, ok := db.nodeByID[id]
	if !ok {
		n = &Node{ID: id, Label: id, Shape: ShapeRect}
		db.nodes = append(db.nodes, n)
		db.nodeByID[id] = n
		if sg := db.currentSubgraph(); sg != nil {
			sg.Nodes = append(sg.Nodes, id)
		}
	}
	if label != "" {
		n.Label = unquote(label)
	}
	if shape != "" {
		n.Shape = shape
	}
	return n
}

// AddEdge records a directed edge between two already-added nodes.
func (db *DB) AddEdge(from, to, label string, style EdgeStyle) {
	db.edges = append(db.edges, &Edge{
		From:  from,
		To:    to,
		Label: unquote(label),
		Style: style,
	})
}

// PushSubgraph opens a cluster; nodes first mentioned before the
// matching PopSubgraph become members.
func (db *DB) PushSubgraph(id, title string) {
	if title == "" {
		title = id
	}
	sg := &Subgraph{ID: id, Title: unquote(title)}
	if cur := db.currentSubgraph(); cur != nil {
		sg.Parent = cur.ID
	}
	db.subgraphs = append(db.subgraphs, sg)
	db.open = append(db.open, sg)
}

// PopSubgraph closes the innermost open cluster.
func (db *DB) PopSubgraph() {
	if len(db.open) > 0 {
		db.open = db.open[:len(db.open)-1]
	}
}

func (db *DB) currentSubgraph() *Subgraph {
	if len(db.open) == 0 {
		return nil
	}
	return db.open[len(db.open)-1]
}

// Node returns the node with the given id, or nil.
func (db *DB) Node(id string) *Node { return db.nodeByID[id] }

// Nodes returns all nodes in source order.
func (db *DB) Nodes() []*Node { return db.nodes }

// Edges returns all edges in source order.
func (db *DB) Edges() []*Edge { return db.edges }

// Subgraphs returns all clusters in source order.
func (db *DB) Subgraphs() []*Subgraph { return db.subgraphs }

// unquote strips one layer of double quotes around node and edge text.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}
