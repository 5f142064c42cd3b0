package render

import (
	"bytes"
	"encoding/xml"
	"time"

	"github.com/pressday/coverage-digest/app/digest"
)

// OPML renders the matched coverage as an OPML 2.0 link bundle: one
// outline per client with coverage, one child outline per matched
// link. Suitable for import back into a feed reader.
func OPML(result digest.Result, reportTime time.Time) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n<opml version=\"2.0\">\n  <head>\n")

	writeElement(&buf, "title", Title(reportTime), 4)
	writeElement(&buf, "dateCreated", reportTime.Format(time.RFC3339), 4)

	buf.WriteString("  </head>\n  <body>\n")

	total := 0
	for _, client := range result.Clients {
		matches := result.ByClient[client.Name]
		if len(matches) == 0 {
			continue
		}

		buf.WriteString("    <outline")
		writeAttr(&buf, "text", client.Name)
		writeAttr(&buf, "title", client.Name)
		buf.WriteString(">\n")

		for _, match := range matches {
			total++
			buf.WriteString("      <outline")
			writeAttr(&buf, "text", match.Item.Title)
			writeAttr(&buf, "title", match.Item.Title)
			writeAttr(&buf, "type", "link")
			writeAttr(&buf, "url", match.Item.Link)
			writeAttr(&buf, "htmlUrl", match.Item.Link)
			writeAttr(&buf, "created", match.Item.PublishedAt.In(reportTime.Location()).Format(time.RFC3339))
			writeAttr(&buf, "sentiment", string(match.Sentiment))
			writeAttr(&buf, "source", match.Item.Source)
			buf.WriteString(" />\n")
		}

		buf.WriteString("    </outline>\n")
	}

	if total == 0 {
		buf.WriteString("    <outline")
		writeAttr(&buf, "text", "No coverage found in the last 24 hours.")
		writeAttr(&buf, "title", "No coverage found in the last 24 hours.")
		buf.WriteString(" />\n")
	}

	buf.WriteString("  </body>\n</opml>\n")

	return buf.String()
}

func writeElement(buf *bytes.Buffer, tag, value string, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
	buf.WriteString("<" + tag + ">")
	xml.EscapeText(buf, []byte(value))
	buf.WriteString("</" + tag + ">\n")
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" " + name + "=\"")
	xml.EscapeText(buf, []byte(value))
	buf.WriteString("\"")
}
