package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	spindle "github.com/bangzek/spindle-rtu"
)

type Config struct {
	Dev      string        `mapstructure:"dev"`
	Baud     int           `mapstructure:"baud"`
	Parity   string        `mapstructure:"parity"`
	Dir      string        `mapstructure:"dir"`
	ReadWait time.Duration `mapstructure:"readWait"`
	ByteTime time.Duration `mapstructure:"byteTime"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Verify   bool          `mapstructure:"verify"`
	Log      LogConfig     `mapstructure:"log"`
}

type LogConfig struct {
	Debug      bool   `mapstructure:"debug"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
}

// loadConfig merges, from lowest priority: defaults, spindle.yaml (or the
// --config file), SPINDLE_* environment, flags.
func loadConfig(cmd *cobra.Command, path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("baud", spindle.BAUDRATE)
	v.SetDefault("parity", spindle.NoParity.String())
	v.SetDefault("dir", spindle.RTSDir.String())
	v.SetDefault("readWait", spindle.SERIAL_TIMEOUT)
	v.SetDefault("log.maxSize", 10)
	v.SetDefault("log.maxBackups", 3)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/spindle")
		v.SetConfigName("spindle")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SPINDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"dev":       "dev",
		"baud":      "baud",
		"parity":    "parity",
		"dir":       "dir",
		"byteTime":  "byte-time",
		"timeout":   "timeout",
		"verify":    "verify",
		"log.debug": "debug",
		"log.file":  "log-file",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) SerialPort() (*spindle.SerialPort, error) {
	if c.Dev == "" {
		return nil, errors.New("no serial device, use --dev or SPINDLE_DEV")
	}
	p := &spindle.SerialPort{
		Dev:      c.Dev,
		Timeout:  c.ReadWait,
		Baudrate: c.Baud,
		ByteTime: c.ByteTime,
	}
	if err := p.Parity.UnmarshalText([]byte(c.Parity)); err != nil {
		return nil, err
	}
	if err := p.Dir.UnmarshalText([]byte(c.Dir)); err != nil {
		return nil, err
	}
	return p, nil
}
