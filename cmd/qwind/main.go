package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/arnauq/qwind/internal/config"
	"github.com/arnauq/qwind/internal/constants"
	"github.com/arnauq/qwind/internal/storage"
	"github.com/arnauq/qwind/internal/viz"
	"github.com/arnauq/qwind/internal/wind"
)

var (
	dataDir string

	mass         float64
	mdot         float64
	spin         float64
	eta          float64
	rIn          float64
	rOut         float64
	rMin         float64
	rMax         float64
	temperature  float64
	mu           float64
	modes        []string
	rhoShielding float64
	intSteps     int
	nr           int
	radMode      string
	nCPUs        int
	niter        int
	vz0          float64

	configFile string
	preset     string
	live       bool
	plot       bool

	exportFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qwind",
		Short: "radiation-driven accretion disc wind model",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "results", "run data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "launch and evolve a set of streamlines",
		RunE:  runWind,
	}
	runCmd.Flags().Float64Var(&mass, "m", config.DefaultM, "black hole mass [Msun]")
	runCmd.Flags().Float64Var(&mdot, "mdot", config.DefaultMdot, "accretion ratio L/L_edd")
	runCmd.Flags().Float64Var(&spin, "spin", 0, "black hole spin")
	runCmd.Flags().Float64Var(&eta, "eta", config.DefaultEta, "accretion efficiency")
	runCmd.Flags().Float64Var(&rIn, "r-in", config.DefaultRIn, "launch boundary override [Rg] (old modes)")
	runCmd.Flags().Float64Var(&rOut, "r-out", config.DefaultROut, "launch boundary override [Rg] (old modes)")
	runCmd.Flags().Float64Var(&rMin, "r-min", config.DefaultRMin, "inner disc radius [Rg]")
	runCmd.Flags().Float64Var(&rMax, "r-max", config.DefaultRMax, "outer disc radius [Rg]")
	runCmd.Flags().Float64Var(&temperature, "t", config.DefaultT, "wind temperature [K]")
	runCmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "mean molecular weight")
	runCmd.Flags().StringSliceVar(&modes, "modes", nil, "debug modes (old_boundaries, old, custom_vel, gravityonly, altopts, old_integral)")
	runCmd.Flags().Float64Var(&rhoShielding, "rho-shielding", config.DefaultRhoShielding, "shielding density [cm^-3]")
	runCmd.Flags().IntVar(&intSteps, "intsteps", 1, "dissipation integral refinement")
	runCmd.Flags().IntVar(&nr, "nr", config.DefaultNR, "number of streamlines")
	runCmd.Flags().StringVar(&radMode, "radiation-mode", "qsosed", "radiation mode (qsosed, simple)")
	runCmd.Flags().IntVar(&nCPUs, "n-cpus", 1, "worker count")
	runCmd.Flags().IntVar(&niter, "niter", config.DefaultNiter, "integration steps per line")
	runCmd.Flags().Float64Var(&vz0, "v-z-0", config.DefaultVZ0, "launch velocity [cm/s] (custom_vel/old)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&live, "live", false, "live progress view")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot per-line mass flux on completion")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-line mass flux of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata or streamlines",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json, csv)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-10s M=%.1e Msun mdot=%.2f nr=%d modes=%v\n",
					name, cfg.M, cfg.Mdot, cfg.NR, cfg.Modes)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// Explicit flags override preset and config file values.
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("m", func() { cfg.M = mass })
	set("mdot", func() { cfg.Mdot = mdot })
	set("spin", func() { cfg.Spin = spin })
	set("eta", func() { cfg.Eta = eta })
	set("r-in", func() { cfg.RIn = rIn })
	set("r-out", func() { cfg.ROut = rOut })
	set("r-min", func() { cfg.RMin = rMin })
	set("r-max", func() { cfg.RMax = rMax })
	set("t", func() { cfg.T = temperature })
	set("mu", func() { cfg.Mu = mu })
	set("modes", func() { cfg.Modes = modes })
	set("rho-shielding", func() { cfg.RhoShielding = rhoShielding })
	set("intsteps", func() { cfg.IntSteps = intSteps })
	set("nr", func() { cfg.NR = nr })
	set("radiation-mode", func() { cfg.RadiationMode = radMode })
	set("n-cpus", func() { cfg.NCPUs = nCPUs })
	set("niter", func() { cfg.Niter = niter })
	set("v-z-0", func() { cfg.VZ0 = vz0 })

	return cfg, nil
}

func runWind(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	modeSet, err := wind.ParseModes(cfg.Modes)
	if err != nil {
		return err
	}

	saveDir := cfg.SaveDir
	if saveDir == "" || cmd.Flags().Changed("data") {
		saveDir = dataDir
	}

	model, err := wind.New(wind.Params{
		M:             cfg.M,
		Mdot:          cfg.Mdot,
		Spin:          cfg.Spin,
		Eta:           cfg.Eta,
		RIn:           cfg.RIn,
		ROut:          cfg.ROut,
		RMin:          cfg.RMin,
		RMax:          cfg.RMax,
		T:             cfg.T,
		Mu:            cfg.Mu,
		Modes:         modeSet,
		RhoShielding:  cfg.RhoShielding,
		IntSteps:      cfg.IntSteps,
		NR:            cfg.NR,
		Dt:            cfg.Dt,
		SaveDir:       saveDir,
		RadiationMode: cfg.RadiationMode,
		NCPUs:         cfg.NCPUs,
	})
	if err != nil {
		return err
	}

	fmt.Printf("r_in: %f\nr_out: %f\n", model.RIn(), model.ROut())
	model.OnSkip = func(r float64) {
		fmt.Printf("streamline at r_0=%.1f would be inside corona radius, ignoring\n", r)
	}

	var lines []wind.Line
	if live {
		lines, err = runLive(model, cfg)
	} else {
		model.Progress = func(done, total int, ln wind.Line) {
			fmt.Printf("line %d of %d: r_0=%.1f escaped=%v\n", done, total, ln.R0(), ln.Escaped())
		}
		lines, err = model.StartLines(context.Background(), cfg.VZ0, cfg.Niter)
	}
	if err != nil {
		return err
	}

	mdotW := model.MassLossRate()
	fmt.Printf("wind mass loss: %.4e g/s (%.4e Msun/yr)\n",
		mdotW, mdotW/constants.Msun*constants.Year)

	if plot {
		fluxes := make([]float64, len(lines))
		dR := gridSpacing(model)
		for i, ln := range lines {
			if ln.Escaped() {
				fluxes[i] = wind.LineFlux(ln.R0(), ln.Rho0(), ln.VT0(), dR, model.Rg())
			}
		}
		fmt.Println(viz.FluxPlot(fluxes, "mass flux per streamline [g/s]"))
	}

	st := storage.New(saveDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		M:            cfg.M,
		Mdot:         cfg.Mdot,
		Spin:         cfg.Spin,
		Eta:          cfg.Eta,
		NR:           cfg.NR,
		NCPUs:        cfg.NCPUs,
		Niter:        cfg.Niter,
		Modes:        cfg.Modes,
		RIn:          model.RIn(),
		ROut:         model.ROut(),
		MassLossRate: mdotW,
	}, lines)
	if err != nil {
		return err
	}
	fmt.Printf("saved run: %s\n", runID)
	return nil
}

type liveResult struct {
	lines []wind.Line
	err   error
}

func runLive(model *wind.Model, cfg *config.Config) ([]wind.Line, error) {
	profile := viz.TemperatureProfile(model.Radiation(), model.RIn(), model.ROut(), 60)
	p := tea.NewProgram(viz.NewLive(cfg.NR, profile))

	model.Progress = func(done, total int, ln wind.Line) {
		p.Send(viz.LineDoneMsg{Done: done, Total: total, R0: ln.R0(), Escaped: ln.Escaped()})
	}

	// The outcome travels over the channel, never through shared
	// variables: the buffered send completes before the quit message, so
	// a finished run always has its result waiting when Run returns.
	results := make(chan liveResult, 1)
	go func() {
		lines, err := model.StartLines(context.Background(), cfg.VZ0, cfg.Niter)
		results <- liveResult{lines: lines, err: err}
		p.Send(viz.RunDoneMsg{MassLoss: model.MassLossRate(), Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return liveOutcome(results)
}

// liveOutcome collects the run result after the live view exits. An
// empty channel means the user quit before the run finished.
func liveOutcome(results <-chan liveResult) ([]wind.Line, error) {
	select {
	case res := <-results:
		return res.lines, res.err
	default:
		return nil, fmt.Errorf("run aborted")
	}
}

func gridSpacing(model *wind.Model) float64 {
	radii := model.LaunchRadiiRange()
	if len(radii) < 2 {
		return 0
	}
	return radii[1] - radii[0]
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tM [Msun]\tmdot\tnr\tescaped\tmass loss [g/s]\ttime")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%.2e\t%.2f\t%d\t%d/%d\t%.3e\t%s\n",
			run.ID, run.M, run.Mdot, run.NR, run.Escaped, run.Launched,
			run.MassLossRate, run.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadStreamlines(args[0])
	if err != nil {
		return err
	}
	if len(records) < 2 {
		fmt.Println("not enough streamlines to plot")
		return nil
	}

	rg := constants.G * meta.M * constants.Msun / (constants.C * constants.C)
	dR := records[1].R0 - records[0].R0
	fluxes := make([]float64, len(records))
	for i, rec := range records {
		if rec.Escaped {
			fluxes[i] = wind.LineFlux(rec.R0, rec.Rho0, rec.VT0, dR, rg)
		}
	}
	fmt.Println(viz.FluxPlot(fluxes, fmt.Sprintf("mass flux per streamline [g/s], %s", meta.ID)))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	switch exportFormat {
	case "json":
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	case "csv":
		records, err := st.LoadStreamlines(args[0])
		if err != nil {
			return err
		}
		fmt.Println("index,r_0,v_T_0,rho_0,escaped")
		for _, rec := range records {
			fmt.Printf("%d,%f,%e,%e,%v\n", rec.Index, rec.R0, rec.VT0, rec.Rho0, rec.Escaped)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}
}
