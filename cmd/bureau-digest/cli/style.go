// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles renders status words in command output.
type Styles struct {
	OK      lipgloss.Style
	Failed  lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles returns colored styles when w is a terminal and plain
// (pass-through) styles otherwise, so piped output stays byte-exact.
func NewStyles(w io.Writer) Styles {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		plain := lipgloss.NewStyle()
		return Styles{OK: plain, Failed: plain, Warning: plain, Muted: plain}
	}

	renderer := lipgloss.NewRenderer(file)
	return Styles{
		OK:      renderer.NewStyle().Foreground(lipgloss.Color("2")),
		Failed:  renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Warning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		Muted:   renderer.NewStyle().Faint(true),
	}
}
