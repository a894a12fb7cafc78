// Package export converts conversation records to portable text formats.
//
// All transforms are pure and total over any valid record: a conversation
// with zero messages exports as a title header with no message blocks.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/claudedesk/claudedesk/internal/conversation"
)

// Format identifies an export output format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "txt", "text", "plain":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q", name)
	}
}

// FormatForPath picks a format from a file extension, defaulting to plain
// text when the extension is missing or unrecognized.
func FormatForPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatText
	}
	return f
}

// Render dispatches to the transform for the given format.
func Render(rec *conversation.Record, format Format) (string, error) {
	switch format {
	case FormatText:
		return PlainText(rec), nil
	case FormatMarkdown:
		return Markdown(rec), nil
	case FormatJSON:
		return JSON(rec)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// PlainText renders each message as "{role}: {content}" on its own block,
// separated by blank lines, in conversation order. No Markdown
// interpretation happens.
func PlainText(rec *conversation.Record) string {
	var sb strings.Builder
	sb.WriteString(rec.Title)
	sb.WriteString("\n")
	for _, msg := range rec.Messages {
		sb.WriteString("\n")
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Markdown renders the title as a top-level heading and each message as a
// labeled block. Content is assumed to already be Markdown-flavored and is
// passed through unescaped.
func Markdown(rec *conversation.Record) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(rec.Title)
	sb.WriteString("\n")
	for _, msg := range rec.Messages {
		sb.WriteString("\n**")
		sb.WriteString(roleLabel(msg.Role))
		sb.WriteString("**: ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSON renders the record with full fidelity; the output round-trips
// through the store unchanged.
func JSON(rec *conversation.Record) (string, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling conversation %s: %w", rec.ID, err)
	}
	return string(data), nil
}

// roleLabel maps the built-in roles to their display names. Unknown roles
// keep their literal value so future roles stay readable.
func roleLabel(role conversation.Role) string {
	switch role {
	case conversation.RoleUser:
		return "You"
	case conversation.RoleAssistant:
		return "Claude"
	default:
		return string(role)
	}
}
