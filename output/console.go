package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rafabd1/LiteFinder/core/secret"
)

// Console prints scan results for humans. In silent mode it prints nothing.
type Console struct {
	out    io.Writer
	silent bool

	countColor func(format string, a ...interface{}) string
	typeColor  func(format string, a ...interface{}) string
	emptyColor func(format string, a ...interface{}) string
}

func NewConsole(silent bool) *Console {
	return &Console{
		out:        os.Stdout,
		silent:     silent,
		countColor: color.New(color.FgGreen, color.Bold).SprintfFunc(),
		typeColor:  color.New(color.FgCyan).SprintfFunc(),
		emptyColor: color.New(color.FgYellow).SprintfFunc(),
	}
}

func (c *Console) SetOutput(w io.Writer) {
	c.out = w
}

// PrintRecord lists every finding of the scan, or says that there were none.
func (c *Console) PrintRecord(record secret.Record) {
	if c.silent {
		return
	}

	if record.Empty() {
		fmt.Fprintln(c.out, c.emptyColor("[-] No secrets or keys found."))
		return
	}

	fmt.Fprintf(c.out, "\n%s\n", c.countColor("[+] %d finding(s) in %s", len(record.Findings), record.URL))
	for _, f := range record.Findings {
		fmt.Fprintf(c.out, "  - %s %s\n", c.typeColor("%s:", f.Type), f.Value)
	}
}

// PrintPersist reports which report files were written.
func (c *Console) PrintPersist(result PersistResult) {
	if c.silent {
		return
	}

	if result.JSONWritten {
		fmt.Fprintf(c.out, "[📂] Saved to %s\n", result.JSONPath)
	}
	if result.HTMLWritten {
		fmt.Fprintf(c.out, "[📂] HTML updated at %s\n", result.HTMLPath)
	}
	if !result.JSONWritten && !result.HTMLWritten && result.Pruned > 0 {
		fmt.Fprintf(c.out, "[=] All %d finding(s) were already reported for %s\n", result.Pruned, result.Host)
	}
}

// PrintHistory lists the stored records of one host.
func (c *Console) PrintHistory(host string, records []secret.Record) {
	fmt.Fprintf(c.out, "%s\n", c.countColor("%s: %d record(s), %d finding(s)", host, len(records), secret.CountFindings(records)))
	for _, r := range records {
		fmt.Fprintf(c.out, "  %s (%s)\n", r.URL, r.Timestamp)
		for _, f := range r.Findings {
			fmt.Fprintf(c.out, "    - %s %s\n", c.typeColor("%s:", f.Type), f.Value)
		}
	}
}
