// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	versionKey    = "version"
	listenAddrKey = "listen-addr"
	feedMaxAgeKey = "feed-max-age"

	defaultListenAddr = ":9750"
	defaultFeedMaxAge = 3
)

// Config holds the server binary's settings.
type Config struct {
	PrintVersion bool
	ListenAddr   string
	FeedMaxAge   uint64
}

func buildFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("ledgerguard", flag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints version and quits")
	fs.String(listenAddrKey, defaultListenAddr, "Address the JSON-RPC server listens on")
	fs.Uint64(feedMaxAgeKey, defaultFeedMaxAge, "Maximum accepted feed age in slots")

	return fs
}

// getViper returns the viper environment for the server binary
func getViper() (*viper.Viper, error) {
	v := viper.New()

	fs := buildFlagSet()
	pflag.CommandLine.AddGoFlagSet(fs)
	pflag.Parse()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	return v, nil
}

func getConfig() (Config, error) {
	v, err := getViper()
	if err != nil {
		return Config{}, err
	}

	return Config{
		PrintVersion: v.GetBool(versionKey),
		ListenAddr:   v.GetString(listenAddrKey),
		FeedMaxAge:   v.GetUint64(feedMaxAgeKey),
	}, nil
}
