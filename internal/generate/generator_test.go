package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/asanchezr/gttb/internal/github"
	"github.com/asanchezr/gttb/internal/llm"
	"github.com/asanchezr/gttb/internal/logging"
)

type fakeCompleter struct {
	messages []llms.MessageContent
	result   string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llms.MessageContent) (string, error) {
	f.messages = messages
	return f.result, f.err
}

func messageText(m llms.MessageContent) string {
	var sb strings.Builder
	for _, part := range m.Parts {
		if text, ok := part.(llms.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

func TestGenerate_BuildsTwoMessagePrompt(t *testing.T) {
	fake := &fakeCompleter{result: "# Draft\n\nbody"}
	gen := NewGenerator(fake, logging.Logger{})

	pr := &github.PullRequestData{
		Title: "Speed up cache",
		Body:  "Reduces latency by 40%.",
		Diff:  "diff --git a/x b/x",
		Files: []github.PullRequestFile{{Filename: "x.go", Additions: 1}},
		Comments: []github.PullRequestComment{
			{User: "bob", Body: "ship it"},
		},
	}

	got, err := gen.Generate(context.Background(), pr)
	require.NoError(t, err)
	assert.Equal(t, "# Draft\n\nbody", got)

	require.Len(t, fake.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, fake.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, fake.messages[1].Role)

	user := messageText(fake.messages[1])
	assert.Contains(t, user, "PR title: Speed up cache")
	assert.Contains(t, user, "Reduces latency by 40%.")
	assert.Contains(t, user, "- x.go (+1/-0, modified)")
	assert.Contains(t, user, "- bob: ship it")
	assert.Contains(t, user, "diff --git a/x b/x")
}

func TestGenerate_EmptyBodyAndDiffMarkers(t *testing.T) {
	fake := &fakeCompleter{result: "ok"}
	gen := NewGenerator(fake, logging.Logger{})

	_, err := gen.Generate(context.Background(), &github.PullRequestData{Title: "t"})
	require.NoError(t, err)

	user := messageText(fake.messages[1])
	assert.Contains(t, user, "PR body:\nnone")
	assert.Contains(t, user, "Diff excerpt:\ndiff unavailable")
	assert.Contains(t, user, "No file summary available.")
	assert.Contains(t, user, "No review comments.")
}

func TestGenerate_LongInputsAreBounded(t *testing.T) {
	fake := &fakeCompleter{result: "ok"}
	gen := NewGenerator(fake, logging.Logger{})

	pr := &github.PullRequestData{
		Title: "t",
		Body:  strings.Repeat("b", 5000),
		Diff:  strings.Repeat("d", 20000),
	}
	_, err := gen.Generate(context.Background(), pr)
	require.NoError(t, err)

	user := messageText(fake.messages[1])
	assert.Contains(t, user, strings.Repeat("b", 2000)+"... [truncated]")
	assert.Contains(t, user, strings.Repeat("d", 6000)+"... [truncated]")
	assert.NotContains(t, user, strings.Repeat("b", 2001))
	assert.NotContains(t, user, strings.Repeat("d", 6001))
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     *string
	}{
		{"no heading", "no heading here", nil},
		{"heading after text", "Intro\n# My Title\nBody", ptr("My Title")},
		{"deep heading", "## Sub Title\ntext", ptr("Sub Title")},
		{"indented heading", "   # Indented\n", ptr("Indented")},
		{"empty document", "", nil},
		{"placeholder draft", llm.Placeholder, ptr("Draft unavailable")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTitle(tt.markdown)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func ptr(s string) *string { return &s }
