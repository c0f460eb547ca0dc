package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lenslab/lens/tui/theme"
)

// TextFormatter renders entries as single-line text tuned for the
// .lens/logs files and debug stderr output: a short themed level tag,
// the component in parens, then the message and its fields.
type TextFormatter struct {
	Config FormatConfig
}

// Format renders a single log entry. Fields are sorted so consecutive
// lines from the same call site diff cleanly.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("15:04:05.000"))
		b.WriteByte(' ')
	}

	b.WriteString(levelTag(entry.Level))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		b.WriteByte(' ')
		b.WriteString(theme.DefaultTheme.Accent.Render(fmt.Sprintf("(%v)", component)))
	}

	if entry.HasCaller() {
		fmt.Fprintf(&b, " %s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "component" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// levelTag maps logrus levels to fixed-width themed tags.
func levelTag(level logrus.Level) string {
	t := theme.DefaultTheme
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return t.Muted.Render("DBG")
	case logrus.InfoLevel:
		return t.Info.Render("INF")
	case logrus.WarnLevel:
		return t.Warning.Render("WRN")
	case logrus.ErrorLevel:
		return t.Error.Render("ERR")
	default:
		// fatal and panic
		return t.Error.Render(strings.ToUpper(level.String()))
	}
}
