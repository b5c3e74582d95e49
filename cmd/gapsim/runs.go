package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gapsim/internal/storage"
	"github.com/spf13/cobra"
	chart "github.com/wcharczuk/go-chart/v2"
	"gopkg.in/yaml.v3"
)

func runStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.Output.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tFRAMES\tINTERVAL\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Interval,
			run.Output,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("data: %s\n", meta.DataPath)
	fmt.Printf("frames: %d (from %d)\n\n", len(series.Rows), series.Years[0])

	columns := series.Columns
	if metric != "" {
		columns = []string{metric}
	}

	for _, name := range columns {
		data, err := series.Column(name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if pngOut != "" {
		return writePNG(pngOut, series, columns[0])
	}
	return nil
}

// writePNG plots one column against the year.
func writePNG(path string, series *storage.Series, column string) error {
	ys, err := series.Column(column)
	if err != nil {
		return err
	}
	xs := make([]float64, len(series.Years))
	for i, y := range series.Years {
		xs[i] = float64(y)
	}
	// a single point cannot span an axis range
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:  column,
		Width:  1024,
		Height: 400,
		XAxis:  chart.XAxis{Name: "year"},
		YAxis:  chart.YAxis{Name: column},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    column,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
