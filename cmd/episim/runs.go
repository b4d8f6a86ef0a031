package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/analysis"
	"github.com/san-kum/episim/internal/export"
	"github.com/san-kum/episim/internal/sim"
	"github.com/san-kum/episim/internal/storage"
	"github.com/san-kum/episim/internal/tui"
)

var (
	plotHeight int
	plotWidth  int

	outFile   string
	svgWidth  int
	svgHeight int

	xAxis string
	yAxis string
)

var plotColors = []asciigraph.AnsiColor{
	asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Magenta, asciigraph.Yellow,
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDAYS\tDT\tINTEG\tN\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%g\t%s\t%.0f\t%.2e\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration(),
			run.Dt,
			run.Method,
			run.N,
			run.Drift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, series, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s (%s)\n", meta.Model, meta.Method)
	fmt.Printf("samples: %d\n\n", series.Len())

	colors := plotColors
	if len(series.Values) < len(colors) {
		colors = colors[:len(series.Values)]
	}
	graph := asciigraph.PlotMany(series.Values,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%v vs time (days)", series.Labels)),
	)
	fmt.Println(graph)
	fmt.Println()

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, series, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	if series.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)

	header := append([]string{"t"}, series.Labels...)
	if err := w.Write(header); err != nil {
		return err
	}

	for k := 0; k < series.Len(); k++ {
		row := []string{strconv.FormatFloat(series.T[k], 'f', 6, 64)}
		for i := range series.Values {
			row = append(row, strconv.FormatFloat(series.Values[i][k], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, series, err := loadRun(st, args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, series)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, series, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, series, svgWidth, svgHeight); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, series, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	portrait, err := analysis.NewPhasePortrait(series, xAxis, yAxis)
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 70, 20))
	fmt.Printf("\nlegend: o = start, • = trajectory\n")

	return nil
}

func playRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, series, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s  %s/%s", meta.ID, meta.Model, meta.Method)
	return tui.Run(title, series, meta.Metrics)
}

func loadRun(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Series, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}
