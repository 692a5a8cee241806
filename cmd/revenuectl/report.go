package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

type tableCmd struct {
	Sort   []string `help:"Sort by column key; repeat the same key to flip direction." placeholder:"COLUMN"`
	Filter string   `help:"Keep rows whose ACV or sales cycle contain this text."`
	JSON   bool     `name:"json" help:"Print JSON instead of text."`
}

func (cmd *tableCmd) Run(ctx context.Context, env *appEnv) error {
	ds, err := env.dataset(ctx)
	if err != nil {
		return err
	}
	engine, err := revenue.NewPerformanceEngine(ds.Performance)
	if err != nil {
		return err
	}
	for _, field := range cmd.Sort {
		if err := engine.SetSort(field); err != nil {
			return err
		}
	}
	engine.SetFilter(cmd.Filter)
	view := revenue.ProjectTable(engine)
	if cmd.JSON {
		return writeJSON(env.out, view)
	}
	return writeTable(env.out, view)
}

func writeTable(out io.Writer, view revenue.TableView) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	headers := make([]string, 0, len(view.Columns))
	for _, col := range view.Columns {
		label := col.Label
		switch col.Direction {
		case "asc":
			label += " ↑"
		case "desc":
			label += " ↓"
		}
		headers = append(headers, label)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range view.Rows {
		cells := []string{row.ACV, row.SalesCycle}
		for _, cell := range row.Cells {
			cells = append(cells, cell.Label)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if view.Empty {
		fmt.Fprintf(tw, "Nenhum segmento encontrado para %q\n", view.Filter)
	}
	return tw.Flush()
}

type funnelCmd struct {
	JSON bool `name:"json" help:"Print JSON instead of text."`
}

func (cmd *funnelCmd) Run(ctx context.Context, env *appEnv) error {
	ds, err := env.dataset(ctx)
	if err != nil {
		return err
	}
	stages := revenue.ProjectFunnel(ds.Funnel.Stages, ds.Funnel.TerminalOutput)
	if cmd.JSON {
		return writeJSON(env.out, stages)
	}
	tw := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Etapa\tVolume\tSaída\tValor\tConversão\tFaixa")
	for _, g := range stages {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			g.Stage.Name, g.VolumeLabel, g.OutputVolume, g.AmountLabel, g.ConversionLabel, g.Tier)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if drift := revenue.ConversionDrift(stages); len(drift) > 0 {
		env.log.Debug("stored conversions differ from volume ratios", "stages", drift)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
