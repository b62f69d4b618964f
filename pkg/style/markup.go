package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[([a-z_]+)\]([^\[]*)\[/([a-z_]+)\]`)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles.
type MarkupParser struct {
	styles map[string]lipgloss.Style
	plain  bool
}

// NewMarkupParser creates a parser with the default tags.
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		styles: map[string]lipgloss.Style{
			"title":   TitleStyle,
			"success": SuccessStyle,
			"error":   ErrorStyle,
			"warning": WarningStyle,
			"code":    CodeStyle,
			"path":    PathStyle,
			"muted":   MutedStyle,
			"vault":   VaultStyle,
			"link":    LinkStyle,
			"bold":    lipgloss.NewStyle().Bold(true),
		},
	}
}

// NewPlainParser creates a parser that strips tags without styling.
func NewPlainParser() *MarkupParser {
	p := NewMarkupParser()
	p.plain = true
	return p
}

// Render processes markup text and returns styled output. Unknown or
// mismatched tags are left as they are.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		next := tagPattern.ReplaceAllStringFunc(result, func(match string) string {
			m := tagPattern.FindStringSubmatch(match)
			if m[1] != m[3] {
				return match
			}
			s, ok := p.styles[m[1]]
			if !ok {
				return match
			}
			if p.plain {
				return m[2]
			}
			return s.Render(m[2])
		})
		if next == result {
			return result
		}
		result = next
	}
}

// AddStyle registers or replaces the style for tag.
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
}

// RenderTemplate substitutes {{key}} placeholders and then renders markup.
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
