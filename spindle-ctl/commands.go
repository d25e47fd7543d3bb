package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Start the spindle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sp.TurnOn()
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Stop the spindle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sp.TurnOff()
	},
}

var speedCmd = &cobra.Command{
	Use:   "speed RPM",
	Short: "Set the target speed",
	Long: `Set the target speed. The drive takes whole Hz only, so the speed is
truncated to a multiple of 60 rpm.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpm, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return sp.SetSpeed(rpm)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save drive parameters to EEPROM",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sp.Save()
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the current output speed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if watch <= 0 {
			_, err := sp.ReportSpeed()
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		tick := time.NewTicker(watch)
		defer tick.Stop()
		for {
			if _, err := sp.ReportSpeed(); err != nil {
				logger.Warn("report failed", zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
			}
		}
	},
}
