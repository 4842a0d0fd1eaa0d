package output

import (
	"html"
	"os"
	"strings"

	"github.com/rafabd1/LiteFinder/core/secret"
	"github.com/rafabd1/LiteFinder/utils"
)

const (
	htmlHeader = "<html><body><h2>🔐 Secret Finder Report</h2><ul>"
	htmlFooter = "</ul></body></html>"
)

// readHTMLBody returns the document at path without its closing markup. A
// missing, unreadable or foreign document yields a fresh shell.
func readHTMLBody(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return htmlHeader, false
	}

	doc := strings.TrimRight(string(data), " \t\r\n")
	if !strings.HasPrefix(doc, htmlHeader) || !strings.HasSuffix(doc, htmlFooter) {
		return htmlHeader, false
	}

	return strings.TrimSuffix(doc, htmlFooter), true
}

// renderRecordItem renders one record as a list item with a nested list of findings.
func renderRecordItem(record secret.Record) string {
	var sb strings.Builder

	sb.WriteString("<li><b>")
	sb.WriteString(html.EscapeString(record.URL))
	sb.WriteString("</b> (")
	sb.WriteString(html.EscapeString(record.Timestamp))
	sb.WriteString(")<ul>")
	for _, f := range record.Findings {
		sb.WriteString("<li><b>")
		sb.WriteString(html.EscapeString(f.Type))
		sb.WriteString(":</b> ")
		sb.WriteString(html.EscapeString(f.Value))
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul></li>")

	return sb.String()
}

/*
   Appends record to the HTML report at path, before the closing list tag.
   Returns whether an existing document was extended.
*/
func appendHTML(path string, record secret.Record) (bool, error) {
	body, existed := readHTMLBody(path)
	doc := body + renderRecordItem(record) + htmlFooter

	if err := utils.WriteFileAtomic(path, []byte(doc), 0o644); err != nil {
		return existed, utils.NewError(utils.StoreWriteError, "failed to write "+path, err)
	}
	return existed, nil
}
