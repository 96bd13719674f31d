package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run only the queue consumers",
	Long:  "Consume all notification queues without serving the HTTP read API. Useful for scaling workers independently.",
	Run:   runConsume,
}

// init registers the consume command.
func init() {
	rootCmd.AddCommand(consumeCmd)
}

// runConsume wires dependencies and runs the consumers until a signal.
func runConsume(_ *cobra.Command, _ []string) {
	d, err := buildDeps()
	if err != nil {
		logrus.Fatalf("Failed to start: %v", err)
	}
	defer d.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		d.log.Info("received shutdown signal, stopping consumers")
		cancel()
	}()

	if err := d.queueService.Run(ctx); err != nil {
		d.log.WithError(err).Fatal("consumer error")
	}

	d.log.Info("consumers stopped")
}
