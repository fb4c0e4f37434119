package pie

// Slice is one wedge of the chart.
type Slice struct {
	Label string
	Value float64
}

// DB accumulates the pie model in source order.
type DB struct {
	title    string
	showData bool
	slices   []Slice
	seen     map[string]bool
}

// NewDB returns an empty pie model.
func NewDB() *DB {
	return &DB{seen: map[string]bool{}}
}

// Clear resets the model for the next parse.
func (db *DB) Clear() {
	*db = DB{seen: map[string]bool{}}
}

// SetDiagramTitle records the chart title.
func (db *DB) SetDiagramTitle(title string) { db.title = title }

// Title returns the chart title, or "" when none was set.
func (db *DB) Title() string { return db.title }

// EnableShowData makes the legend include raw values.
func (db *DB) EnableShowData() { db.showData = true }

// ShowData reports whether the legend includes raw values.
func (db *DB) ShowData() bool { return db.showData }

// AddSlice appends a labeled value. The first occurrence of a label
// wins; repeats are dropped.
func (db *DB) AddSlice(label string, value float64) {
	if db.seen[label] {
		return
	}
	db.seen[label] = true
	db.slices = append(db.slices, Slice{Label: label, Value: value})
}

// Slices returns all slices in source order.
func (db *DB) Slices() []Slice { return db.slices }

// Total returns the sum of all slice values.
func (db *DB) Total() float64 {
	sum := 0.0
	for _, s := range db.slices {
		sum += s.Value
	}
	return sum
}
