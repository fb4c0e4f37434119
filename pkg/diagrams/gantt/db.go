package gantt

import "time"

// Task is one bar of the chart. Start and End are resolved instants;
// relative definitions ("after x", durations) are resolved at parse
// time against earlier tasks.
type Task struct {
	ID      string
	Name    string
	Section string
	Start   time.Time
	End     time.Time

	Done      bool
	Active    bool
	Crit      bool
	Milestone bool
}

// DB accumulates the gantt model in source order.
type DB struct {
	title      string
	dateLayout string // Go layout for parsing task dates
	axisLayout string // Go layout for axis tick labels
	sections   []string
	current    string
	tasks      []*Task
	taskByID   map[string]*Task
}

// NewDB returns an empty gantt model.
func NewDB() *DB {
	return &DB{taskByID: map[string]*Task{}}
}

// Clear resets the model for the next parse.
func (db *DB) Clear() {
	*db = DB{taskByID: map[string]*Task{}}
}

// SetDiagramTitle records the diagram title.
func (db *DB) SetDiagramTitle(title string) { db.title = title }

// Title returns the diagram title, or "" when none was set.
func (db *DB) Title() string { return db.title }

// SetDateLayout stores the Go time layout used for task dates.
func (db *DB) SetDateLayout(layout string) { db.dateLayout = layout }

// DateLayout returns the task date layout, defaulting to 2006-01-02.
func (db *DB) DateLayout() string {
	if db.dateLayout == "" {
		return "2006-01-02"
	}
	return db.dateLayout
}

// SetAxisLayout stores the Go time layout used for axis tick labels.
func (db *DB) SetAxisLayout(layout string) { db.axisLayout = layout }

// AxisLayout returns the axis label layout, or "" to use the
// configured default.
func (db *DB) AxisLayout() string { return db.axisLayout }

// StartSection opens a named section; tasks added afterwards belong to
// it until the next StartSection.
func (db *DB) StartSection(name string) {
	db.current = name
	for _, s := range db.sections {
		if s == name {
			return
		}
	}
	db.sections = append(db.sections, name)
}

// AddTask appends a task to the current section.
func (db *DB) AddTask(t *Task) {
	t.Section = db.current
	db.tasks = append(db.tasks, t)
	if t.ID != "" {
		db.taskByID[t.ID] = t
	}
}

// Task returns the task with the given id, or nil.
func (db *DB) Task(id string) *Task { return db.taskByID[id] }

// LastTask returns the most recently added task, or nil.
func (db *DB) LastTask() *Task {
	if len(db.tasks) == 0 {
		return nil
	}
	return db.tasks[len(db.tasks)-1]
}

// Sections returns the section names in first-use order. Tasks added
// before any section report an empty section name, which is not listed.
func (db *DB) Sections() []string { return db.sections }

// Tasks returns all tasks in source order.
func (db *DB) Tasks() []*Task { return db.tasks }

// Span returns the earliest start and latest end over all tasks.
func (db *DB) Span() (time.Time, time.Time) {
	var start, end time.Time
	for _, t := range db.tasks {
		if start.IsZero() || t.Start.Before(start) {
			start = t.Start
		}
		if end.IsZero() || t.End.After(end) {
			end = t.End
		}
	}
	return start, end
}
