// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"net/http"
	"os"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/ledgerguard/ledgerguard"
)

func main() {
	config, err := getConfig()
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}
	// Print version and exit
	if config.PrintVersion {
		fmt.Printf("%s@%s\n", ledgerguard.Name, ledgerguard.Version)
		os.Exit(0)
	}

	clock := &ledgerguard.ChainClock{}
	kernel, err := ledgerguard.NewKernel(memdb.New(), clock)
	if err != nil {
		fmt.Printf("couldn't create kernel: %s\n", err)
		os.Exit(1)
	}
	kernel.SetFeedPolicy(ledgerguard.FeedPolicy{
		Canonical: ledgerguard.FeedAddress,
		Provider:  ledgerguard.FeedProvider,
		MaxAge:    config.FeedMaxAge,
	})

	handler, err := ledgerguard.NewHandler(kernel)
	if err != nil {
		fmt.Printf("couldn't create handler: %s\n", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/", handler)

	log.Info("serving ledgerguard", "addr", config.ListenAddr)
	if err := http.ListenAndServe(config.ListenAddr, mux); err != nil {
		log.Error("server returned an error", "error", err)
		os.Exit(1)
	}
}
