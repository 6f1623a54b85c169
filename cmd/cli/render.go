package main

import (
	"fmt"

	"github.com/limaJavier/logicgrid/pkg/model"
	"github.com/limaJavier/logicgrid/pkg/solution"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable lays records out one row per object, one column per property
func renderTable(domain model.Domain, records []solution.Record) string {
	headers := append([]string{"#"}, lo.Map(domain.Properties, func(property model.PropertySpec, _ int) string {
		return property.Name
	})...)

	rows := lo.Map(records, func(record solution.Record, _ int) []string {
		return append([]string{fmt.Sprint(int(record.Object) + 1)}, record.Labels...)
	})

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
