package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"todo/internal/task"
)

// Export formats.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// markdownEscaper escapes characters that would otherwise start inline markup.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

// Markdown renders tasks as a checklist under a heading.
func Markdown(title string, tasks []task.Task) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", markdownEscaper.Replace(title))
	if len(tasks) == 0 {
		b.WriteString("_No tasks._\n")
		return b.Bytes()
	}
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, markdownEscaper.Replace(NormalizeDescription(t.Description)))
	}
	return b.Bytes()
}

// HTML renders the Markdown checklist to an HTML fragment.
func HTML(title string, tasks []task.Task) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(Markdown(title, tasks), p, r)
}

// Export writes tasks to w in the given format.
func Export(w io.Writer, format, title string, tasks []task.Task) error {
	var data []byte
	switch format {
	case FormatMarkdown, "markdown", "":
		data = Markdown(title, tasks)
	case FormatHTML:
		data = HTML(title, tasks)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	_, err := w.Write(data)
	return err
}
