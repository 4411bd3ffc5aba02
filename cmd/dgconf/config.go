/*
 * config.go, part of dgconf.
 *
 * Copyright 2026 The dgconf Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "DGCONF"

//Config holds the settings of the program, from the config file, the DGCONF_*
//environment variables and the flags, in increasing priority.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Generate GenerateConfig `mapstructure:"generate"`
	//Directory with the torsion tables. Empty means the built in ones.
	KB string `mapstructure:"kb"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` //console or json
}

type GenerateConfig struct {
	Cpus         int     `mapstructure:"cpus"`
	Stereo       bool    `mapstructure:"stereo"`
	Lines        bool    `mapstructure:"lines"`
	WeakPlanes   bool    `mapstructure:"weak_planes"`
	Seed         uint64  `mapstructure:"seed"`
	Nice         int     `mapstructure:"nice"`
	MinFrequency float64 `mapstructure:"min_frequency"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

//setDefaults sets the values used when neither the flags nor the config give one.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("generate.weak_planes", true)
	v.SetDefault("generate.nice", 10)
	v.SetDefault("generate.min_frequency", 0.0)
}

//loadConfig reads the config file, if given, and returns the merged, validated configuration.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: can't read %q: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

//Validate checks the values that can't be corrected.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log encoding %q", c.Log.Encoding)
	}
	if c.Generate.Cpus < 0 {
		return fmt.Errorf("negative number of cpus (%d)", c.Generate.Cpus)
	}
	if c.Generate.MinFrequency < 0 || c.Generate.MinFrequency > 1 {
		return fmt.Errorf("minimum torsion frequency %g not in [0,1]", c.Generate.MinFrequency)
	}
	return nil
}

//newLogger builds the logger. Logs go to stderr, so the structures can go to stdout.
func newLogger(c LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Encoding == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = c.Encoding
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
