package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/episim/internal/automation"
	"github.com/san-kum/episim/internal/storage"
)

var batchWorkers int

func runBatch(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("running %d steps", len(script.Steps))
	if script.Name != "" {
		fmt.Printf(" of %s", script.Name)
	}
	fmt.Println("...")

	results, err := automation.RunScript(cmd.Context(), script, batchWorkers)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tINTEG\tPEAK_I\tPEAK_DAY\tATTACK\tRUN")
	for i, r := range results {
		runID := "-"
		if r.Step.Save {
			runID, err = st.Save(r.Result, r.Scenario.Resolve(), r.KPIs)
			if err != nil {
				return err
			}
			logger.Debug("batch step saved", zap.Int("step", i+1), zap.String("run_id", runID))
		}

		name := r.Step.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%.3f\t%s\n",
			name,
			r.Result.Meta.Model,
			r.Result.Meta.Method,
			r.KPIs["peak_I"],
			r.KPIs["peak_time_I"],
			r.KPIs["attack_rate"],
			runID,
		)
	}
	return w.Flush()
}
