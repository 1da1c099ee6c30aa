package render

import (
	"fmt"
	"regexp"
	"strings"
)

// BlockKind identifies a markdown block.
type BlockKind string

const (
	BlockHeading2      BlockKind = "h2"
	BlockHeading3      BlockKind = "h3"
	BlockUnorderedList BlockKind = "ul"
	BlockOrderedList   BlockKind = "ol"
	BlockParagraph     BlockKind = "p"
)

// Block is one element of a parsed markdown recipe. Lists carry Items,
// everything else carries Text.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
}

// Blocks is a parsed markdown document.
type Blocks []Block

var orderedItem = regexp.MustCompile(`^\d+\.\s`)

// ParseMarkdown reads the small markdown dialect the recipe prompt asks
// for, line by line. Consecutive list items of one kind form a single list;
// the open list is flushed before any heading or paragraph, when the list
// kind changes, and at the end of input. Blank lines are skipped and do not
// close a list.
func ParseMarkdown(md string) Blocks {
	var (
		out      Blocks
		listKind BlockKind
		items    []string
	)

	flush := func() {
		if listKind != "" && len(items) > 0 {
			out = append(out, Block{Kind: listKind, Items: items})
		}
		listKind = ""
		items = nil
	}
	collect := func(kind BlockKind, item string) {
		if listKind != kind {
			flush()
			listKind = kind
		}
		items = append(items, item)
	}

	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "## "):
			flush()
			out = append(out, Block{Kind: BlockHeading2, Text: trimmed[3:]})
		case strings.HasPrefix(trimmed, "### "):
			flush()
			out = append(out, Block{Kind: BlockHeading3, Text: trimmed[4:]})
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			collect(BlockUnorderedList, trimmed[2:])
		case orderedItem.MatchString(trimmed):
			collect(BlockOrderedList, orderedItem.ReplaceAllString(trimmed, ""))
		case trimmed != "":
			flush()
			out = append(out, Block{Kind: BlockParagraph, Text: trimmed})
		}
	}
	flush()

	return out
}

// Text flattens the blocks to their textual content, one line per heading,
// paragraph or list item, markers removed.
func (b Blocks) Text() []string {
	var lines []string
	for _, blk := range b {
		if len(blk.Items) > 0 {
			lines = append(lines, blk.Items...)
			continue
		}
		lines = append(lines, blk.Text)
	}
	return lines
}

// Markdown re-emits the blocks in the dialect ParseMarkdown reads.
func (b Blocks) Markdown() string {
	var sb strings.Builder
	for i, blk := range b {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch blk.Kind {
		case BlockHeading2:
			fmt.Fprintf(&sb, "## %s\n", blk.Text)
		case BlockHeading3:
			fmt.Fprintf(&sb, "### %s\n", blk.Text)
		case BlockUnorderedList:
			for _, item := range blk.Items {
				fmt.Fprintf(&sb, "- %s\n", item)
			}
		case BlockOrderedList:
			for n, item := range blk.Items {
				fmt.Fprintf(&sb, "%d. %s\n", n+1, item)
			}
		default:
			fmt.Fprintf(&sb, "%s\n", blk.Text)
		}
	}
	return sb.String()
}
