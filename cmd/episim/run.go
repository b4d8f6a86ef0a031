package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/sim"
	"github.com/san-kum/episim/internal/storage"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	model := ""
	if len(args) > 0 {
		model = args[0]
	}

	sc, err := buildScenario(cmd, model)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	cfg := sc.SimConfig()
	fmt.Printf("running %s simulation...\n", sc.Model)
	start := time.Now()

	res, err := sim.Run(cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	kpis := metrics.Summarize(res)

	runID, err := st.Save(res, cfg.Params, kpis)
	if err != nil {
		return err
	}

	logger.Debug("run saved",
		zap.String("run_id", runID),
		zap.String("model", res.Meta.Model),
		zap.String("method", res.Meta.Method),
		zap.Int("steps", res.Steps),
		zap.Float64("drift", res.Drift),
		zap.Duration("elapsed", elapsed),
	)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("model: %s  method: %s\n", res.Meta.Model, res.Meta.Method)
	fmt.Printf("steps: %d  dt: %g  drift: %.3e\n", res.Steps, res.Dt, res.Drift)
	printKPIs(kpis)

	return nil
}

func printKPIs(kpis map[string]float64) {
	names := make([]string, 0, len(kpis))
	for name := range kpis {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, kpis[name])
	}
}
