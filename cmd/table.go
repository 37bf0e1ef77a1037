package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	telegram "asbestos-screen/internal/api"
	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/theme"
)

func facilityTable(list []entity.InspectionFacility, markdown bool) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"#", "Name", "Address", "Distance", "Phone", "Certified", "Cost", "Time", "Rating"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: 40},
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignCenter},
	})

	for i, f := range list {
		certified := "no"
		if f.Certified {
			certified = "yes"
		}
		cost := "-"
		if f.EstimatedCost.Max > 0 {
			cost = telegram.FormatKRW(f.EstimatedCost.Min) + " - " + telegram.FormatKRW(f.EstimatedCost.Max)
		}
		w.AppendRow(table.Row{i + 1, f.Name, f.Address, telegram.FormatDistance(f.DistanceKm), dash(f.Phone), certified, cost, dash(f.InspectionTime), stars(f.Rating)})
	}

	if markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func historyTable(th theme.Theme, list []entity.RiskAssessment) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"ID", "Status", "Confidence", "Checked at"})
	w.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})

	for _, a := range list {
		status := string(a.Status)
		if tier, err := th.Tier(a.Status); err == nil {
			status = tier.Short
		}
		w.AppendRow(table.Row{a.ID, status, fmt.Sprintf("%d%%", a.Confidence), a.Timestamp.Local().Format("2006-01-02 15:04")})
	}
	w.AppendFooter(table.Row{"", "", "Total", len(list)})
	return w.Render()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
