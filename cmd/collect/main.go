package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mkalev/modelvet/internal/config"
	"github.com/mkalev/modelvet/internal/dataset"
	"github.com/mkalev/modelvet/internal/feedback"
	"github.com/mkalev/modelvet/internal/platform"
	"github.com/mkalev/modelvet/internal/store"
	"github.com/mkalev/modelvet/internal/whatif"
)

func main() {
	remote := flag.Bool("remote", false, "send feedback to the platform instead of local storage")
	overridePath := flag.String("override", "", "path to an alternative what-if dataset CSV")
	flag.Parse()

	cfg := config.Load()

	reference, err := loadDataset(cfg.DatasetPath)
	if err != nil {
		log.Fatalf("Failed to load reference dataset: %v", err)
	}

	var override *dataset.Dataset
	if *overridePath != "" {
		override, err = loadDataset(*overridePath)
		if err != nil {
			log.Fatalf("Failed to load override dataset: %v", err)
		}
	}

	descriptor, err := dataset.LoadDescriptor(cfg.SchemaPath)
	if err != nil {
		log.Fatalf("Failed to load schema descriptor: %v", err)
	}
	schema, err := descriptor.Schema(reference)
	if err != nil {
		log.Fatalf("Failed to build schema: %v", err)
	}

	sink, err := buildSink(cfg, *remote)
	if err != nil {
		log.Fatalf("Failed to configure feedback sink: %v", err)
	}

	renderer := newTerminalRenderer(os.Stdin, os.Stdout)
	builder := whatif.NewBuilder(renderer)
	collector := feedback.NewCollector(renderer, schema, reference, sink, *remote)

	fmt.Println("Build a what-if input for the model:")
	row, err := builder.BuildCounterfactual(schema, reference, override)
	if err != nil {
		log.Fatalf("Failed to build counterfactual input: %v", err)
	}

	fmt.Println("\nSend model feedback:")
	feedbackType, err := collector.ChooseType()
	if err != nil {
		log.Fatalf("Failed to choose feedback type: %v", err)
	}

	record, err := collector.Collect(feedbackType, row)
	if err != nil {
		log.Fatalf("Failed to collect feedback: %v", err)
	}

	if !renderer.confirm("Send feedback?") {
		fmt.Println("Feedback discarded.")
		return
	}

	if err := collector.Submit(context.Background(), record); err != nil {
		log.Fatalf("Failed to submit feedback: %v", err)
	}
	fmt.Printf("Feedback %s submitted.\n", record.ID)
}

func loadDataset(path string) (*dataset.Dataset, error) {
	result, err := dataset.ReadCSVFile(path)
	if err != nil {
		return nil, err
	}
	return dataset.FromCSV(result)
}

func buildSink(cfg *config.Config, remote bool) (feedback.Sink, error) {
	if remote {
		return platform.NewClient(cfg.PlatformURL, cfg.PlatformAPIKey)
	}
	return store.NewLocalStore(cfg.FeedbackDir)
}

// terminalRenderer collects values over stdin, one blocking prompt per
// request.
type terminalRenderer struct {
	in  *bufio.Scanner
	out *os.File
}

func newTerminalRenderer(in *os.File, out *os.File) *terminalRenderer {
	return &terminalRenderer{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (r *terminalRenderer) Collect(req whatif.ValueRequest) (any, error) {
	switch req.Kind {
	case whatif.KindRange, whatif.KindBoundedNumeric:
		return r.collectNumber(req)
	case whatif.KindChoice:
		return r.collectChoice(req)
	case whatif.KindText:
		return r.collectText(req)
	default:
		return nil, fmt.Errorf("unknown request kind %q", req.Kind)
	}
}

func (r *terminalRenderer) collectNumber(req whatif.ValueRequest) (any, error) {
	for {
		fmt.Fprintf(r.out, "%s [%d..%d, default %d]: ", req.Prompt, req.Min, req.Max, req.Default)
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return req.Default, nil
		}

		var value int64
		if _, err := fmt.Sscanf(line, "%d", &value); err != nil {
			fmt.Fprintln(r.out, "Please enter a whole number.")
			continue
		}
		if value < req.Min || value > req.Max {
			fmt.Fprintf(r.out, "Value must be between %d and %d.\n", req.Min, req.Max)
			continue
		}
		return value, nil
	}
}

func (r *terminalRenderer) collectChoice(req whatif.ValueRequest) (any, error) {
	fmt.Fprintln(r.out, req.Prompt)
	for i, choice := range req.Choices {
		fmt.Fprintf(r.out, "  %d) %v\n", i+1, choice)
	}
	for {
		fmt.Fprintf(r.out, "Choose [1-%d]: ", len(req.Choices))
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" && req.DefaultChoice != nil {
			return req.DefaultChoice, nil
		}

		var index int
		if _, err := fmt.Sscanf(line, "%d", &index); err != nil || index < 1 || index > len(req.Choices) {
			fmt.Fprintln(r.out, "Please enter one of the listed numbers.")
			continue
		}
		return req.Choices[index-1], nil
	}
}

func (r *terminalRenderer) collectText(req whatif.ValueRequest) (any, error) {
	fmt.Fprintf(r.out, "%s [%s]: ", req.Prompt, req.DefaultText)
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return req.DefaultText, nil
	}
	return line, nil
}

func (r *terminalRenderer) confirm(prompt string) bool {
	fmt.Fprintf(r.out, "%s [y/N]: ", prompt)
	line, err := r.readLine()
	if err != nil {
		return false
	}
	return line == "y" || line == "Y" || line == "yes"
}

func (r *terminalRenderer) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input closed")
	}
	return r.in.Text(), nil
}
