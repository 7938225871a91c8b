package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"sort"

	"github.com/goliatone/go-htfield/pkg/field"
	"github.com/goliatone/go-htfield/pkg/formspec"
	"github.com/goliatone/go-htfield/pkg/param"
	"github.com/goliatone/go-htfield/pkg/prompt"
	"github.com/goliatone/go-htfield/pkg/widgets"
)

func main() {
	specPath := flag.String("spec", "form.yaml", "form spec (YAML) to load")
	values := flag.String("values", "", "URL-encoded submission to bind, e.g. 'user[email]=a@b.com'")
	interactive := flag.Bool("interactive", false, "prompt for each field value")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("verbose", false, "log field processing")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	doc, err := formspec.Load(*specPath)
	if err != nil {
		log.Fatalf("load spec: %v", err)
	}
	form, err := doc.Build(widgets.NewRegistry(), field.WithLogger(logger))
	if err != nil {
		log.Fatalf("build form: %v", err)
	}

	var ctx param.Context
	switch {
	case *interactive:
		ctx, err = prompt.Collect(context.Background(), prompt.NewSurveyDriver(), form)
		if err != nil {
			log.Fatalf("collect values: %v", err)
		}
	case *values != "":
		parsed, err := url.ParseQuery(*values)
		if err != nil {
			log.Fatalf("parse values: %v", err)
		}
		ctx = param.FromValues(parsed)
	}

	if ctx != nil {
		form.BindContext(ctx)
		reportErrors(logger, form.Validate())
	}

	var buf bytes.Buffer
	if err := form.Render(&buf); err != nil {
		log.Fatalf("render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Print(buf.String())
}

func reportErrors(logger *slog.Logger, errs map[string]string) {
	if len(errs) == 0 {
		logger.Info("form is valid")
		return
	}
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Warn("invalid field", slog.String("field", name), slog.String("error", errs[name]))
	}
}
