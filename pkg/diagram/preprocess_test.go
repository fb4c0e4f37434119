package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalizeText_LineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc\nd", normalizeText("a\r\nb\rc\nd"))
}

func TestNormalizeText_TagQuotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "attributes inside tag",
			input: `<rect fill="red" stroke="blue">`,
			want:  `<rect fill='red' stroke='blue'>`,
		},
		{
			name:  "quotes outside tags untouched",
			input: `A["say "hi""] --> B`,
			want:  `A["say "hi""] --> B`,
		},
		{
			name:  "mixed",
			input: `label "x" <b class="big">bold</b>`,
			want:  `label "x" <b class='big'>bold</b>`,
		},
		{
			name:  "tag without attributes",
			input: "<br>",
			want:  "<br>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeText(tt.input))
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		once := normalizeText(s)
		assert.Equal(t, once, normalizeText(once))
	})
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "comment line removed",
			input: "%% a note\nflowchart TD\n",
			want:  "flowchart TD\n",
		},
		{
			name:  "indented comment removed",
			input: "flowchart TD\n   %% indented\nA-->B\n",
			want:  "flowchart TD\nA-->B\n",
		},
		{
			name:  "directive opener preserved",
			input: "%%{init: {'theme': 'dark'}}%%\nflowchart TD\n",
			want:  "%%{init: {'theme': 'dark'}}%%\nflowchart TD\n",
		},
		{
			name:  "leading whitespace trimmed",
			input: "\n\n  flowchart TD\n",
			want:  "flowchart TD\n",
		},
		{
			name:  "inline percent signs kept",
			input: "A[50 %% done]\n",
			want:  "A[50 %% done]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripComments(tt.input))
		})
	}
}

func TestPreprocess_RoundTrip(t *testing.T) {
	p, err := Preprocess("---\ntitle: My Flow\n---\nflowchart TD\nA-->B")
	require.NoError(t, err)

	assert.Equal(t, "flowchart TD\nA-->B", p.Code)
	assert.Equal(t, "My Flow", p.Title)
	assert.Empty(t, p.Config)
	assert.NotNil(t, p.Config)
}

func TestPreprocess_DisplayModeProjection(t *testing.T) {
	p, err := Preprocess("---\ndisplayMode: compact\n---\ngantt\ntitle Plan")
	require.NoError(t, err)

	gantt, ok := p.Config["gantt"].(map[string]any)
	require.True(t, ok, "expected gantt sub-map, got %#v", p.Config)
	assert.Equal(t, "compact", gantt["displayMode"])
}

func TestPreprocess_DisplayModeOverwritesConfig(t *testing.T) {
	text := "---\ndisplayMode: compact\nconfig:\n  gantt:\n    displayMode: wide\n    barHeight: 30\n---\ngantt"
	p, err := Preprocess(text)
	require.NoError(t, err)

	gantt := p.Config["gantt"].(map[string]any)
	assert.Equal(t, "compact", gantt["displayMode"], "top-level displayMode wins over config.gantt.displayMode")
	assert.Equal(t, 30, gantt["barHeight"], "sibling config keys survive the projection")
}

func TestPreprocess_DirectiveWinsOverFrontmatter(t *testing.T) {
	text := "---\nconfig:\n  theme: forest\n  fontSize: 12\n---\n%%{init: {'theme': 'dark'}}%%\nflowchart TD\nA-->B"
	p, err := Preprocess(text)
	require.NoError(t, err)

	assert.Equal(t, "dark", p.Config["theme"], "directive config wins on conflict")
	assert.Equal(t, 12, p.Config["fontSize"], "front matter keys without conflict survive")
	assert.Equal(t, "flowchart TD\nA-->B", p.Code)
}

func TestPreprocess_StripsCommentsAndDirectives(t *testing.T) {
	text := "%% header note\n%%{wrap}%%\nsequenceDiagram\n%% trailing note\nAlice->>Bob: hi"
	p, err := Preprocess(text)
	require.NoError(t, err)

	assert.Equal(t, "sequenceDiagram\nAlice->>Bob: hi", p.Code)
	assert.Equal(t, true, p.Config["wrap"])
}

func TestPreprocess_MalformedFrontmatterPropagates(t *testing.T) {
	_, err := Preprocess("---\ntitle: [unclosed\n---\nflowchart TD")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*FrontmatterError))
}

func TestPreprocess_MalformedDirectivePropagates(t *testing.T) {
	_, err := Preprocess("%%{init: [1,2]}%%\nflowchart TD\nA-->B")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*DirectiveError))
}

func TestPreprocess_EmptyInput(t *testing.T) {
	p, err := Preprocess("")
	require.NoError(t, err)

	assert.Equal(t, "", p.Code)
	assert.Equal(t, "", p.Title)
	assert.Empty(t, p.Config)
}

func TestPreprocess_CRLFInput(t *testing.T) {
	p, err := Preprocess("---\r\ntitle: Win\r\n---\r\nflowchart TD\r\nA-->B\r\n")
	require.NoError(t, err)

	assert.Equal(t, "Win", p.Title)
	assert.Equal(t, "flowchart TD\nA-->B\n", p.Code)
}
