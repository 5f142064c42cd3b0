package render

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/pressday/coverage-digest/app/digest"
)

const titleFormat = "Monday, 02 January 2006"

// Title is the digest heading and email subject for a report time.
func Title(reportTime time.Time) string {
	return "Daily PR Coverage — " + reportTime.Format(titleFormat)
}

// HTML renders the email body: one section per client with coverage,
// or a "no coverage" paragraph when the run came up empty.
func HTML(result digest.Result, reportTime time.Time) string {
	var buf bytes.Buffer

	buf.WriteString("<h2>")
	buf.WriteString(html.EscapeString(Title(reportTime)))
	buf.WriteString("</h2>\n")

	for _, client := range result.Clients {
		matches := result.ByClient[client.Name]
		if len(matches) == 0 {
			continue
		}

		buf.WriteString("<h3>")
		buf.WriteString(html.EscapeString(client.Name))
		buf.WriteString("</h3>\n<ul>\n")

		for _, match := range matches {
			buf.WriteString(fmt.Sprintf(
				"<li><strong>%s</strong> · <em>%s</em> · <span>%s</span><br><a href=\"%s\">%s</a></li>\n",
				html.EscapeString(match.Item.Source),
				html.EscapeString(match.Item.PublishedAt.In(reportTime.Location()).Format("2006-01-02 15:04")),
				html.EscapeString(string(match.Sentiment)),
				html.EscapeString(match.Item.Link),
				html.EscapeString(match.Item.Title),
			))
		}

		buf.WriteString("</ul>\n")
	}

	if result.Empty() {
		buf.WriteString("<p>No coverage found in the last 24 hours.</p>\n")
	}

	return buf.String()
}
