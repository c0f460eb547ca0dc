package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const gridCellWidth = 24

// View renders the loading / error / not-found / ready states.
func (m *Model) View() string {
	switch m.phase {
	case phaseLoading:
		return fmt.Sprintf("\n %s Loading %s...\n", m.spinner.View(), m.dataset)

	case phaseError:
		return m.theme.Box.Render(
			m.theme.Error.Render("Error") + "\n\n" + m.err.Error())

	case phaseNotFound:
		return m.theme.Box.Render(
			fmt.Sprintf("Dataset %q not found", m.dataset))
	}

	var b strings.Builder
	b.WriteString(m.viewBar())
	b.WriteString("\n")
	b.WriteString(m.grid())

	if m.session.ModalVisible() {
		b.WriteString("\n")
		b.WriteString(m.modal())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(
		"space select · enter open · c clear filters · q quit"))
	return b.String()
}

// viewBar summarizes the dataset, the view stages, active filters, and the
// stream state.
func (m *Model) viewBar() string {
	title := m.theme.Title.Render(m.info.Name)
	count := m.theme.Muted.Render(fmt.Sprintf("%d samples", m.info.SampleCount))

	parts := []string{title, count}

	if stages := m.viewStages(); len(stages) > 0 {
		parts = append(parts, m.theme.Accent.Render(strings.Join(stages, " › ")))
	}

	if filters := m.session.Filters(false); len(filters) > 0 {
		paths := make([]string, 0, len(filters))
		for path := range filters {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		parts = append(parts, m.theme.Highlight.Render(
			fmt.Sprintf("filters: %s", strings.Join(paths, ", "))))
	}

	if selected := m.session.SelectedSamples(); len(selected) > 0 {
		parts = append(parts, m.theme.Info.Render(
			fmt.Sprintf("%d selected", len(selected))))
	}

	parts = append(parts, m.streamBadge())

	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(parts, "  "))
}

func (m *Model) streamBadge() string {
	label := m.stream.String()
	switch m.stream {
	case StreamStreaming:
		return m.theme.Success.Render("● " + label)
	case StreamClosed:
		return m.theme.Error.Render("● " + label)
	default:
		return m.theme.Muted.Render("● " + label)
	}
}

// viewStages extracts human-readable stage names from the server view.
func (m *Model) viewStages() []string {
	stages, ok := m.session.Description().View().([]interface{})
	if !ok {
		return nil
	}
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		stage, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		if cls, ok := stage["_cls"].(string); ok {
			names = append(names, cls)
		}
	}
	return names
}

// grid renders the sample grid with cursor and selection markers.
func (m *Model) grid() string {
	if len(m.info.Samples) == 0 {
		return m.theme.Muted.Render("No samples to display")
	}

	selected := m.session.SelectedSamples()
	cols := m.columns()

	var rows []string
	var row []string
	for i, sample := range m.info.Samples {
		label := sample.ID
		if len(label) > gridCellWidth-4 {
			label = label[:gridCellWidth-4]
		}

		marker := "  "
		if selected[sample.ID] {
			marker = m.theme.Success.Render("✓ ")
		}

		cell := marker + label
		if i == m.cursor {
			cell = m.theme.Selected.Render(cell)
		}
		row = append(row, lipgloss.NewStyle().Width(gridCellWidth).Render(cell))

		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return strings.Join(rows, "\n")
}

// modal renders the single-sample viewer over the grid.
func (m *Model) modal() string {
	sample := m.info.Samples[m.cursor]

	var b strings.Builder
	b.WriteString(m.theme.Bold.Render(sample.ID))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(sample.Filepath))

	if len(sample.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString("tags: " + strings.Join(sample.Tags, ", "))
	}

	if labels := sample.Labels; len(labels) > 0 {
		fields := make([]string, 0, len(labels))
		for field := range labels {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			b.WriteString("\n")
			b.WriteString(fmt.Sprintf("%s: %s", m.theme.Accent.Render(field), labels[field]))
		}
	}

	if filters := m.session.Filters(true); len(filters) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Highlight.Render(fmt.Sprintf("%d modal filters", len(filters))))
	}

	return m.theme.DetailsBox.Render(b.String())
}
