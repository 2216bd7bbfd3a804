// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gosuri/uilive"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mlcompute/dispatch"
	"github.com/katalvlaran/mlcompute/internal/jsonl"
	"github.com/katalvlaran/mlcompute/matrix"
)

// runConfig holds the flags of the run command.
type runConfig struct {
	in             string
	out            string
	workers        int
	progress       bool
	strict         bool
	generalInverse bool
	autoTaskID     bool
	verbose        bool
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "mlcompute",
		Short:         "Dense-matrix arithmetic engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(logger), newStatusCmd(logger))

	return root
}

func newRunCmd(logger *log.Logger) *cobra.Command {
	cfg := runConfig{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate JSON-lines requests and write JSON-lines responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg, logger)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.in, "in", "-", "request file (- for stdin)")
	f.StringVar(&cfg.out, "out", "-", "response file (- for stdout)")
	f.IntVar(&cfg.workers, "workers", 4, "requests evaluated concurrently")
	f.BoolVar(&cfg.progress, "progress", false, "render live progress on stderr")
	f.BoolVar(&cfg.strict, "strict", false, "reject matrices whose data length disagrees with rows*cols")
	f.BoolVar(&cfg.generalInverse, "general-inverse", false, "invert square sizes other than 2x2 (pivoted LU)")
	f.BoolVar(&cfg.autoTaskID, "auto-task-id", false, "assign matrix-<uuid> to requests without a task id")
	f.BoolVar(&cfg.verbose, "verbose", false, "log every request to stderr")

	return cmd
}

func newStatusCmd(logger *log.Logger) *cobra.Command {
	var client string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the dispatcher readiness report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := dispatch.New(dispatch.WithLogger(logger))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(d.Status(client)), "writing status")
		},
	}
	cmd.Flags().StringVar(&client, "client", "cli", "client id echoed in the report")

	return cmd
}

// engineOptions translates flags into engine options.
func (c runConfig) engineOptions() []matrix.Option {
	var opts []matrix.Option
	if c.strict {
		opts = append(opts, matrix.WithStrictShape())
	}
	if c.generalInverse {
		opts = append(opts, matrix.WithGeneralInverse())
	}

	return opts
}

func (c runConfig) dispatcherOptions(logger *log.Logger) []dispatch.Option {
	opts := []dispatch.Option{
		dispatch.WithEngine(matrix.NewEngine(c.engineOptions()...)),
		dispatch.WithCapacity(c.workers),
	}
	if c.verbose {
		opts = append(opts, dispatch.WithLogger(logger))
	}
	if c.autoTaskID {
		opts = append(opts, dispatch.WithTaskIDs())
	}

	return opts
}

func run(cmd *cobra.Command, cfg runConfig, logger *log.Logger) (err error) {
	if cfg.workers <= 0 {
		return errors.Errorf("--workers must be > 0, got %d", cfg.workers)
	}

	in, closeIn, err := openInput(cfg.in, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeIn()

	reqs, err := jsonl.ReadAll(in)
	if err != nil {
		return errors.Wrapf(err, "reading %s", cfg.in)
	}

	batchOpts := []dispatch.BatchOption{dispatch.WithWorkers(cfg.workers)}
	if cfg.progress {
		writer := uilive.New()
		writer.Out = cmd.ErrOrStderr()
		writer.Start()
		defer writer.Stop()
		batchOpts = append(batchOpts, dispatch.WithProgress(func(done, total int) {
			fmt.Fprintf(writer, "Processed: %d/%d\n", done, total)
		}))
	}

	d := dispatch.New(cfg.dispatcherOptions(logger)...)
	resps, batchErr := d.ProcessBatch(cmd.Context(), reqs, batchOpts...)

	out, closeOut, err := openOutput(cfg.out, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", cfg.out)
		}
	}()
	if err = jsonl.WriteAll(out, resps); err != nil {
		return errors.Wrapf(err, "writing %s", cfg.out)
	}

	failed := 0
	for i := range resps {
		if !resps[i].OK() {
			failed++
		}
	}
	logger.Printf("processed %d requests: %d completed, %d failed", len(resps), len(resps)-failed, failed)

	return errors.Wrap(batchErr, "batch interrupted")
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", path)
	}

	return f, func() { _ = f.Close() }, nil
}

// createOutput opens the --out file.
var createOutput = func(path string) (io.WriteCloser, error) { return os.Create(path) }

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := createOutput(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "creating %s", path)
	}

	return f, f.Close, nil
}
