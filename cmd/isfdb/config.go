package main

import (
	"errors"
	"time"

	"github.com/speclib/isfdb"
	isfdbhttp "github.com/speclib/isfdb/http"
	"github.com/speclib/isfdb/resolve"
	"github.com/spf13/viper"
)

// Config holds the file- and environment-driven settings. Every key has
// a default, so running without a config file works out of the box.
type Config struct {
	MaxResults         int
	MaxCovers          int
	SearchPublications bool
	SearchTitles       bool
	CombineSeries      bool
	Stagger            time.Duration
	Timeout            time.Duration
	UserAgent          string
	Robots             bool
}

// loadConfig reads config.yaml from dir, layered under ISFDB_*
// environment variables. A missing config file is not an error.
func loadConfig(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("max-results", isfdb.DefaultMaxResults)
	v.SetDefault("max-covers", isfdb.DefaultMaxCovers)
	v.SetDefault("search.publications", true)
	v.SetDefault("search.titles", true)
	v.SetDefault("combine-series", false)
	v.SetDefault("stagger", resolve.DefaultStagger)
	v.SetDefault("timeout", isfdbhttp.DefaultFetchTimeout)
	v.SetDefault("user-agent", isfdbhttp.DefaultUserAgent)
	v.SetDefault("robots", true)

	v.SetEnvPrefix("ISFDB")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		MaxResults:         v.GetInt("max-results"),
		MaxCovers:          v.GetInt("max-covers"),
		SearchPublications: v.GetBool("search.publications"),
		SearchTitles:       v.GetBool("search.titles"),
		CombineSeries:      v.GetBool("combine-series"),
		Stagger:            v.GetDuration("stagger"),
		Timeout:            v.GetDuration("timeout"),
		UserAgent:          v.GetString("user-agent"),
		Robots:             v.GetBool("robots"),
	}, nil
}
