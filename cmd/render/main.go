package main

import (
	"flag"
	"fmt"
	"os"

	"reddit-psych-pipeline/internal/config"
	"reddit-psych-pipeline/internal/render"
	"reddit-psych-pipeline/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	in := flag.String("in", "", "compiled dataset path (overrides config)")
	out := flag.String("out", "", "output PDF path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	logger.Log = logger.New(cfg.Logging.Level)

	dataset := cfg.Render.DatasetPath
	output := cfg.Render.OutputPath
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			dataset = *in
		case "out":
			output = *out
		}
	})

	count, err := render.RenderPDF(dataset, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ PDF created: %s (%d posts)\n", output, count)
}
