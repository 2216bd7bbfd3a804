// SPDX-License-Identifier: MIT

// Command mlcompute evaluates matrix operation requests read as JSON lines.
//
//	mlcompute run --in requests.jsonl --workers 4 --progress > responses.jsonl
//	mlcompute status --client ops
//
// Each input line is {"taskId", "operation", "matrixA", "matrixB"}; each
// output line is {"taskId", "status", "resultMatrix", "executionTimeMs",
// "errorMessage"} in input order.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "mlcompute: ", log.LstdFlags)
	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}
