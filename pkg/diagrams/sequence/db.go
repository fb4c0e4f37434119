package sequence

// ActorKind selects how an actor renders at the top of the diagram.
type ActorKind string

const (
	KindParticipant ActorKind = "participant" // box
	KindActor       ActorKind = "actor"       // stick figure
)

// LineStyle is the stroke of a message line.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// LineEnd is the terminator drawn at the target end of a message.
type LineEnd string

const (
	EndNone  LineEnd = "none"
	EndArrow LineEnd = "arrow"
	EndCross LineEnd = "cross"
)

// Actor is one vertical lane of the diagram.
type Actor struct {
	ID    string
	Label string
	Kind  ActorKind
}

// Message is one horizontal exchange between two actors.
type Message struct {
	From string
	To   string
	Text string
	Line LineStyle
	End  LineEnd
}

// NotePlacement positions a note relative to its actors.
type NotePlacement string

const (
	NoteLeftOf  NotePlacement = "left of"
	NoteRightOf NotePlacement = "right of"
	NoteOver    NotePlacement = "over"
)

// Note is an annotation attached to one or two actors.
type Note struct {
	Placement NotePlacement
	Actors    []string // one entry, or two for "over A,B"
	Text      string
}

// BlockKind is the frame flavor of a grouped run of items.
type BlockKind string

const (
	BlockLoop BlockKind = "loop"
	BlockAlt  BlockKind = "alt"
	BlockOpt  BlockKind = "opt"
)

// ItemKind discriminates the entries of the event list.
type ItemKind int

const (
	ItemMessage ItemKind = iota
	ItemNote
	ItemBlockStart
	ItemBlockElse
	ItemBlockEnd
	ItemActivate
	ItemDeactivate
)

// Item is one event in diagram order. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Item struct {
	Kind  ItemKind
	Msg   *Message
	Note  *Note
	Block BlockKind // ItemBlockStart
	Label string    // ItemBlockStart and ItemBlockElse
	Actor string    // ItemActivate and ItemDeactivate
}

// DB accumulates the sequence diagram model in source order.
type DB struct {
	title      string
	autonumber bool
	actors     []*Actor
	actorByID  map[string]*Actor
	items      []Item
}

// NewDB returns an empty sequence model.
func NewDB() *DB {
	return &DB{actorByID: map[string]*Actor{}}
}

// Clear resets the model for the next parse.
func (db *DB) Clear() {
	*db = DB{actorByID: map[string]*Actor{}}
}

// SetDiagramTitle records the diagram title from frontmatter metadata.
func (db *DB) SetDiagramTitle(title string) { db.title = title }

// Title returns the diagram title, or "" when none was set.
func (db *DB) Title() string { return db.title }

// EnableAutonumber turns on message numbering.
func (db *DB) EnableAutonumber() { db.autonumber = true }

// Autonumber reports whether messages carry sequence numbers.
func (db *DB) Autonumber() bool { return db.autonumber }

// AddActor declares an actor. The first declaration pins the lane
// order; re-declaring an id updates its label and kind.
func (db *DB) AddActor(id, label string, kind ActorKind) *Actor {
	a, ok := db.actorByID[id]
	if !ok {
		a = &Actor{ID: id, Label: id, Kind: KindParticipant}
		db.actors = append(db.actors, a)
		db.actorByID[id] = a
	}
	if label != "" {
		a.Label = label
	}
	if kind != "" {
		a.Kind = kind
	}
	return a
}

// AddMessage appends a message, declaring unseen actors on the fly.
func (db *DB) AddMessage(m *Message) {
	db.AddActor(m.From, "", "")
	db.AddActor(m.To, "", "")
	db.items = append(db.items, Item{Kind: ItemMessage, Msg: m})
}

// AddNote appends a note, declaring unseen actors on the fly.
func (db *DB) AddNote(n *Note) {
	for _, id := range n.Actors {
		db.AddActor(id, "", "")
	}
	db.items = append(db.items, Item{Kind: ItemNote, Note: n})
}

// StartBlock opens a loop, alt or opt frame.
func (db *DB) StartBlock(kind BlockKind, label string) {
	db.items = append(db.items, Item{Kind: ItemBlockStart, Block: kind, Label: label})
}

// ElseBlock splits the innermost alt frame.
func (db *DB) ElseBlock(label string) {
	db.items = append(db.items, Item{Kind: ItemBlockElse, Label: label})
}

// EndBlock closes the innermost frame.
func (db *DB) EndBlock() {
	db.items = append(db.items, Item{Kind: ItemBlockEnd})
}

// Activate marks the start of an activation bar on an actor lifeline.
func (db *DB) Activate(id string) {
	db.AddActor(id, "", "")
	db.items = append(db.items, Item{Kind: ItemActivate, Actor: id})
}

// Deactivate closes the newest activation bar of an actor.
func (db *DB) Deactivate(id string) {
	db.items = append(db.items, Item{Kind: ItemDeactivate, Actor: id})
}

// Actor returns the actor with the given id, or nil.
func (db *DB) Actor(id string) *Actor { return db.actorByID[id] }

// Actors returns all actors in lane order.
func (db *DB) Actors() []*Actor { return db.actors }

// Items returns all events in source order.
func (db *DB) Items() []Item { return db.items }
