package generate

const systemPrompt = `You are a technical content writer drafting a tech-blog post on behalf of the pull request's author.
Output Markdown only.
The document must contain, in this order:
1) 2-3 candidate titles
2) An outline of the headings (bulleted)
3) The body with these sections: background, technical challenge, solution approach, implementation highlights, summary (learnings and follow-ups)
The audience is engineers. Write concisely and concretely, and use numbers and metrics where available.`

const userPromptTemplate = `PR title: {{.Title}}
PR body:
{{.Body}}

Changed files:
{{.FileSummary}}

Review comments:
{{.CommentSummary}}

Diff excerpt:
{{.Diff}}

Write the tech-blog draft based on the above.`

const (
	noBodyMarker = "none"
	noDiffMarker = "diff unavailable"
)
