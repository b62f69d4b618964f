package style

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/transfer"
	"github.com/pterm/pterm"
)

// Renderer turns command outcomes into printable lines.
type Renderer interface {
	RenderResult(verb string, result *transfer.Result) string
	RenderError(err error) string
}

// NewRenderer returns the renderer for format. FormatAuto is resolved
// against output.
func NewRenderer(format Format, output *os.File) Renderer {
	if format == FormatAuto {
		format = DetectFormat(output)
	}
	if format == FormatTerminal {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	markup *MarkupParser
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{markup: NewMarkupParser()}
}

// RenderResult renders one data type's transfer summary.
func (r *TerminalRenderer) RenderResult(verb string, result *transfer.Result) string {
	if result == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", SuccessIndicator, r.markup.Render(resultLine(verb, result)))
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	code := errors.GetErrorCode(err)
	if code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			errorMessage(err))
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct {
	markup *MarkupParser
}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{markup: NewPlainParser()}
}

// RenderResult renders a plain transfer summary.
func (r *PlainRenderer) RenderResult(verb string, result *transfer.Result) string {
	if result == nil {
		return ""
	}
	return r.markup.Render(resultLine(verb, result))
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	code := errors.GetErrorCode(err)
	if code != errors.ErrUnknown {
		return fmt.Sprintf("Error [%s]: %s", code, errorMessage(err))
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

func resultLine(verb string, result *transfer.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [vault]%s[/vault] [path]%s[/path]", verb, result.DataType, result.Vault)

	counts := []string{fmt.Sprintf("%d copied", result.Copied)}
	if result.Dropped > 0 {
		counts = append(counts, fmt.Sprintf("%d dropped", result.Dropped))
	}
	if result.Kept > 0 {
		counts = append(counts, fmt.Sprintf("%d kept", result.Kept))
	}
	if result.Links > 0 {
		counts = append(counts, fmt.Sprintf("[link]%d linked[/link]", result.Links))
	}
	fmt.Fprintf(&b, " (%s)", strings.Join(counts, ", "))

	if result.Legacy {
		b.WriteString(" [muted]legacy vault[/muted]")
	}
	return b.String()
}

// errorMessage strips the code prefix VaultError.Error adds.
func errorMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "] "); strings.HasPrefix(msg, "[") && i > 0 {
		return msg[i+2:]
	}
	return msg
}
