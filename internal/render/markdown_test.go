package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleMarkdown = `## Cheesy Garlic Bread

A crowd pleaser.
### Ingredients
- 1 loaf of French bread
* 1/2 cup butter, softened

- Salt and pepper to taste

### Instructions
1. Preheat your oven to 375°F (190°C).
2. Slice the bread in half lengthwise.
10. Bake for 10-12 minutes.
- Serve warm
Enjoy!`

func TestParseMarkdown(t *testing.T) {
	blocks := ParseMarkdown(sampleMarkdown)

	want := Blocks{
		{Kind: BlockHeading2, Text: "Cheesy Garlic Bread"},
		{Kind: BlockParagraph, Text: "A crowd pleaser."},
		{Kind: BlockHeading3, Text: "Ingredients"},
		{Kind: BlockUnorderedList, Items: []string{"1 loaf of French bread", "1/2 cup butter, softened", "Salt and pepper to taste"}},
		{Kind: BlockHeading3, Text: "Instructions"},
		{Kind: BlockOrderedList, Items: []string{"Preheat your oven to 375°F (190°C).", "Slice the bread in half lengthwise.", "Bake for 10-12 minutes."}},
		{Kind: BlockUnorderedList, Items: []string{"Serve warm"}},
		{Kind: BlockParagraph, Text: "Enjoy!"},
	}
	assert.Equal(t, want, blocks)
}

func TestParseMarkdownEdgeCases(t *testing.T) {
	assert.Empty(t, ParseMarkdown(""))
	assert.Empty(t, ParseMarkdown("\n  \n"))

	// Trailing list is flushed at end of input.
	assert.Equal(t, Blocks{{Kind: BlockOrderedList, Items: []string{"one", "two"}}}, ParseMarkdown("1. one\n  2. two  "))

	// "1.5 cups" is not an ordered item; "#" without a space is a paragraph.
	assert.Equal(t, Blocks{
		{Kind: BlockParagraph, Text: "1.5 cups"},
		{Kind: BlockParagraph, Text: "#tag"},
	}, ParseMarkdown("1.5 cups\n#tag"))
}

func TestParseMarkdownTextMatchesSourceLines(t *testing.T) {
	var want []string
	for _, line := range strings.Split(sampleMarkdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, prefix := range []string{"### ", "## ", "- ", "* "} {
			line = strings.TrimPrefix(line, prefix)
		}
		line = orderedItem.ReplaceAllString(line, "")
		want = append(want, line)
	}

	assert.Equal(t, want, ParseMarkdown(sampleMarkdown).Text())
}

func TestMarkdownRoundTrip(t *testing.T) {
	blocks := ParseMarkdown(sampleMarkdown)
	again := ParseMarkdown(blocks.Markdown())

	assert.Equal(t, blocks, again)
	assert.Equal(t, blocks.Text(), again.Text())
}

func TestTerminalMarkdown(t *testing.T) {
	out := TerminalMarkdown(ParseMarkdown(sampleMarkdown))
	assert.Contains(t, out, "Cheesy Garlic Bread")
	assert.Contains(t, out, "• Salt and pepper to taste")
	assert.Contains(t, out, "3. Bake for 10-12 minutes.")
}
