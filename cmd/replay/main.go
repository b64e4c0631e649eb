package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"EconSim/internal/engine"
	"EconSim/internal/model"
	"EconSim/internal/scenario"
)

func main() {
	log.SetFlags(log.Lshortfile)

	strict := flag.Bool("strict", false, "reject out-of-range actions instead of clamping")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-strict] scenario.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	sc, err := scenario.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	warnings := map[int]bool{}
	opts := []engine.Option{engine.WithTurnHook(func(turn int, _ model.EconomicState, w model.SustainabilityWarning) {
		warnings[turn] = w.Active
	})}
	if *strict {
		opts = append(opts, engine.WithStrictBounds())
	}
	e := engine.New(opts...)

	fmt.Printf("%s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, runErr := scenario.Run(e, sc)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "turn\tlever\tmag\tgdp%\tinfl%\tunemp%\trate%\tfx\ttrade\tdebt\tdebt/gdp%\tband\tr>g\t")
	row(tw, 1, "-", 0, model.InitialState(), false)
	for _, r := range results {
		row(tw, r.Turn, string(r.Lever), r.Magnitude, r.State, warnings[r.Turn])
	}
	tw.Flush()

	if runErr != nil {
		log.Fatalf("[FATAL] %v", runErr)
	}
}

func row(tw *tabwriter.Writer, turn int, lever string, mag float64, s model.EconomicState, warn bool) {
	mark := ""
	if warn {
		mark = "!"
	}
	fmt.Fprintf(tw, "%d\t%s\t%g\t%.1f\t%.1f\t%.1f\t%.1f\t%.0f\t%.0f\t%.0f\t%.1f\t%s\t%s\t\n",
		turn, lever, mag, s.GDPGrowth, s.Inflation, s.Unemployment, s.InterestRate,
		s.ExchangeRate, s.TradeBalance, s.GovernmentDebt, s.DebtToGDP, engine.Band(s), mark)
}
