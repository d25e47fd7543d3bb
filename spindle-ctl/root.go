package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	spindle "github.com/bangzek/spindle-rtu"
)

var (
	cfgFile string

	logger *zap.Logger
	con    *spindle.Controller
	sp     *spindle.Spindle
)

var rootCmd = &cobra.Command{
	Use:   "spindle-ctl",
	Short: "Command a Nowforever VFD spindle over RS-485 Modbus RTU",
	Long: `spindle-ctl talks to a Nowforever VFD at Modbus address 1.

Settings come from spindle.yaml (in . or /etc/spindle), SPINDLE_* environment
variables and flags, later ones winning. Example:

  spindle-ctl --dev /dev/ttyUSB0 --dir RTS speed 12000
  spindle-ctl --dev /dev/ttyUSB0 on
  spindle-ctl --dev /dev/ttyUSB0 report --watch 1s`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, cfgFile)
		if err != nil {
			return err
		}
		logger = newLogger(cfg.Log)
		port, err := cfg.SerialPort()
		if err != nil {
			return err
		}
		con = &spindle.Controller{
			Port:    port,
			Timeout: cfg.Timeout,
			Verify:  cfg.Verify,
		}
		sp = &spindle.Spindle{Con: con, Out: cmd.OutOrStdout()}
		return nil
	},
}

// run executes the command line and then releases the port and flushes the
// log, whether the command failed or not.
func run(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	cleanup()
	return err
}

func cleanup() {
	if con != nil {
		con.Close()
		con = nil
	}
	if logger != nil {
		logger.Sync()
		logger = nil
	}
	sp = nil
}

func addFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default ./spindle.yaml)")
	f.StringP("dev", "d", "", "serial device")
	f.IntP("baud", "b", spindle.BAUDRATE, "baud rate")
	f.String("parity", "NONE", "NONE, ODD or EVEN")
	f.String("dir", "RTS", "direction line: NONE, RTS or RTS_INV")
	f.Duration("byte-time", 0, "time per byte on the wire (default from baud)")
	f.Duration("timeout", 0, "response timeout, 0 waits forever")
	f.Bool("verify", false, "check response CRC and length")
	f.Bool("debug", false, "log every frame")
	f.String("log-file", "", "also log to this file, rotated")
}

func init() {
	addFlags(rootCmd)
	rootCmd.AddCommand(onCmd, offCmd, speedCmd, reportCmd, saveCmd)
	reportCmd.Flags().DurationVarP(&watch, "watch", "w", 0,
		"report again every interval until interrupted")
}

var watch time.Duration
