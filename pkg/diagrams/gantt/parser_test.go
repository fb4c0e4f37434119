package gantt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
	"github.com/scrawl-labs/scrawl/pkg/diagrams/gantt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *gantt.DB {
	t.Helper()
	db := gantt.NewDB()
	require.NoError(t, gantt.NewParser(db).Parse(context.Background(), src))
	return db
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestParseBasicChart(t *testing.T) {
	db := parse(t, `gantt
  title Release Plan
  dateFormat YYYY-MM-DD
  section Build
    Compile     :done, c1, 2024-01-01, 3d
    Test        :active, t1, after c1, 5d
  section Ship
    Package     :2024-01-09, 2024-01-11
`)

	assert.Equal(t, "Release Plan", db.Title())
	assert.Equal(t, []string{"Build", "Ship"}, db.Sections())
	require.Len(t, db.Tasks(), 3)

	compile := db.Task("c1")
	require.NotNil(t, compile)
	assert.True(t, compile.Done)
	assert.Equal(t, date(t, "2024-01-01"), compile.Start)
	assert.Equal(t, date(t, "2024-01-04"), compile.End)
	assert.Equal(t, "Build", compile.Section)

	test := db.Task("t1")
	require.NotNil(t, test)
	assert.True(t, test.Active)
	assert.Equal(t, compile.End, test.Start, "after starts at the referenced end")
	assert.Equal(t, date(t, "2024-01-09"), test.End)

	pkg := db.Tasks()[2]
	assert.Equal(t, "Package", pkg.Name)
	assert.Empty(t, pkg.ID)
	assert.Equal(t, "Ship", pkg.Section)
	assert.Equal(t, date(t, "2024-01-11"), pkg.End)
}

func TestParseDurations(t *testing.T) {
	tests := []struct {
		name string
		dur  string
		want time.Duration
	}{
		{"days", "3d", 72 * time.Hour},
		{"weeks", "2w", 14 * 24 * time.Hour},
		{"hours", "36h", 36 * time.Hour},
		{"minutes", "90m", 90 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := parse(t, "gantt\ndateFormat YYYY-MM-DD\nwork :2024-03-01, "+tt.dur)
			task := db.Tasks()[0]
			assert.Equal(t, tt.want, task.End.Sub(task.Start))
		})
	}
}

func TestParseTaskFollowsPrevious(t *testing.T) {
	db := parse(t, `gantt
  dateFormat YYYY-MM-DD
  first  :2024-01-01, 2d
  second :3d
`)

	require.Len(t, db.Tasks(), 2)
	assert.Equal(t, db.Tasks()[0].End, db.Tasks()[1].Start)
}

func TestParseAfterSeveralTasksUsesLatestEnd(t *testing.T) {
	db := parse(t, `gantt
  dateFormat YYYY-MM-DD
  a :a1, 2024-01-01, 2d
  b :b1, 2024-01-01, 10d
  c :after a1 b1, 1d
`)

	c := db.Tasks()[2]
	assert.Equal(t, db.Task("b1").End, c.Start)
}

func TestParseMilestone(t *testing.T) {
	db := parse(t, "gantt\ndateFormat YYYY-MM-DD\nLaunch :milestone, m1, 2024-06-01, 0d")

	m := db.Task("m1")
	require.NotNil(t, m)
	assert.True(t, m.Milestone)
	assert.Equal(t, m.Start, m.End)
}

func TestParseCustomDateLayout(t *testing.T) {
	db := parse(t, "gantt\ndateFormat DD/MM/YYYY\ntask :05/02/2024, 1d")
	assert.Equal(t, date(t, "2024-02-05"), db.Tasks()[0].Start)
}

func TestParseAxisFormatConverted(t *testing.T) {
	db := parse(t, "gantt\naxisFormat %d %b\ndateFormat YYYY-MM-DD\nx :2024-01-01, 1d")
	assert.Equal(t, "02 Jan", db.AxisLayout())
}

func TestParseIgnoredKeywords(t *testing.T) {
	db := parse(t, `gantt
  dateFormat YYYY-MM-DD
  excludes weekends
  todayMarker off
  x :2024-01-01, 1d
`)
	require.Len(t, db.Tasks(), 1)
}

func TestParseSpan(t *testing.T) {
	db := parse(t, `gantt
  dateFormat YYYY-MM-DD
  a :2024-01-05, 5d
  b :2024-01-01, 2d
`)

	start, end := db.Span()
	assert.Equal(t, date(t, "2024-01-01"), start)
	assert.Equal(t, date(t, "2024-01-10"), end)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"missing header", "title x", "expected gantt header"},
		{"empty input", "", "expected gantt header"},
		{"first task no start", "gantt\nfloating :3d", "needs an explicit start"},
		{"unknown after ref", "gantt\na :after ghost, 1d", "unknown task"},
		{"bad date", "gantt\ndateFormat YYYY-MM-DD\na :not-a-date, 1d", "invalid date"},
		{"bad end", "gantt\ndateFormat YYYY-MM-DD\na :2024-01-01, eventually", "invalid date or duration"},
		{"end before start", "gantt\ndateFormat YYYY-MM-DD\na :2024-01-05, 2024-01-01", "ends before it starts"},
		{"no colon", "gantt\njust some words", "unrecognized statement"},
		{"empty title", "gantt\ntitle", "title requires text"},
		{"empty section", "gantt\nsection", "section requires a name"},
		{"too many items", "gantt\na :x, 2024-01-01, 1d, extra", "needs a start and an end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gantt.NewParser(gantt.NewDB()).Parse(context.Background(), tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var perr *diagram.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "gantt", perr.Type)
		})
	}
}

func TestParseClearBetweenRuns(t *testing.T) {
	db := gantt.NewDB()
	p := gantt.NewParser(db)

	require.NoError(t, p.Parse(context.Background(), "gantt\ndateFormat YYYY-MM-DD\na :a1, 2024-01-01, 1d"))
	db.Clear()
	require.NoError(t, p.Parse(context.Background(), "gantt\ndateFormat YYYY-MM-DD\nb :2024-02-01, 1d"))

	require.Len(t, db.Tasks(), 1)
	assert.Nil(t, db.Task("a1"))
}

func TestDetect(t *testing.T) {
	assert.True(t, gantt.Detect("gantt\ntitle x", nil))
	assert.True(t, gantt.Detect("  gantt", nil))
	assert.False(t, gantt.Detect("ganttchart", nil))
	assert.False(t, gantt.Detect("flowchart TD", nil))
}
