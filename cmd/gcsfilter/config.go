// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/lbryio/lbry-sdk/gcs"
	"github.com/lbryio/lbry-sdk/gcs/blockcf"
)

const (
	defaultFilterType  = "address"
	defaultLogLevel    = "info"
	defaultLogFilename = "gcsfilter.log"
	defaultWorkers     = 4

	// customFilterType selects filter parameters from the command line
	// instead of a known block filter type.
	customFilterType = "custom"
)

// config defines the configuration options for gcsfilter.
type config struct {
	FilterType string `short:"t" long:"type" description:"Filter type: basic, address, or custom"`
	BlockHash  string `long:"blockhash" description:"Hash of the block the filter commits to (required for basic filters)"`
	P          uint8  `long:"p" description:"Golomb-Rice bit parameter for custom filters"`
	M          uint64 `long:"m" description:"Inverse false positive rate for custom filters"`
	K0         uint64 `long:"k0" description:"First half of the SipHash key for custom filters"`
	K1         uint64 `long:"k1" description:"Second half of the SipHash key for custom filters"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir     string `long:"logdir" description:"Directory to write a rotated log file to"`
	Workers    int    `short:"j" long:"workers" description:"Number of filters scan parses concurrently"`

	Build  buildCommand  `command:"build" description:"Build a filter from elements"`
	Match  matchCommand  `command:"match" description:"Match elements against a hex encoded filter"`
	Decode decodeCommand `command:"decode" description:"Print the number of items and the hashed values of a filter"`
	Scan   scanCommand   `command:"scan" description:"Print the blocks whose filters read from stdin match any watched element"`
}

// defaultConfig returns a config with the default values applied.
func defaultConfig() config {
	return config{
		FilterType: defaultFilterType,
		P:          gcs.DefaultP,
		M:          gcs.DefaultM,
		DebugLevel: defaultLogLevel,
		Workers:    defaultWorkers,
	}
}

// errSubsystemsShown is returned by validate after the supported subsystems
// were listed in response to --debuglevel=show.  It is not a failure.
var errSubsystemsShown = errors.New("supported subsystems shown")

// validate checks the global options and initializes logging accordingly.
func (cfg *config) validate() error {
	// Show the available subsystems and stop when requested.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		return errSubsystemsShown
	}
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return err
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("the number of workers must be positive -- "+
			"parsed [%d]", cfg.Workers)
	}
	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := initLogRotator(logFile); err != nil {
			return err
		}
	}
	return nil
}

// blockHash returns the parsed block hash option or the zero hash when it was
// not specified.
func (cfg *config) blockHash() (*chainhash.Hash, error) {
	if cfg.BlockHash == "" {
		return &chainhash.Hash{}, nil
	}
	hash, err := chainhash.NewHashFromStr(cfg.BlockHash)
	if err != nil {
		return nil, fmt.Errorf("invalid block hash %q: %w", cfg.BlockHash, err)
	}
	return hash, nil
}

// filterParams returns the filter parameters selected by the options.
func (cfg *config) filterParams() (gcs.FilterParams, error) {
	if cfg.FilterType == customFilterType {
		params := gcs.FilterParams{K0: cfg.K0, K1: cfg.K1, P: cfg.P, M: cfg.M}
		if err := params.Validate(); err != nil {
			return gcs.FilterParams{}, err
		}
		return params, nil
	}

	filterType, err := blockcf.ParseFilterType(cfg.FilterType)
	if err != nil {
		return gcs.FilterParams{}, err
	}
	if filterType == blockcf.Basic && cfg.BlockHash == "" {
		return gcs.FilterParams{}, errors.New("basic filters require " +
			"--blockhash")
	}
	blockHash, err := cfg.blockHash()
	if err != nil {
		return gcs.FilterParams{}, err
	}
	return blockcf.ParamsFor(filterType, blockHash)
}

// Supported element formats.
const (
	formatHex     = "hex"
	formatText    = "text"
	formatAddress = "address"
)

// elementOptions houses the options shared by commands that take filter
// elements as arguments.
type elementOptions struct {
	Format string `short:"f" long:"format" choice:"hex" choice:"text" choice:"address" default:"hex" description:"Format of the element arguments; addresses are converted to their hash160"`
}

// parseElements converts command line arguments in the given format to filter
// elements.
func parseElements(args []string, format string) ([][]byte, error) {
	elements := make(blockcf.Entries, 0, len(args))
	for _, arg := range args {
		switch format {
		case formatText:
			elements = append(elements, []byte(arg))

		case formatAddress:
			if err := elements.AddAddress(arg); err != nil {
				return nil, err
			}

		default:
			e, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
			if err != nil {
				return nil, fmt.Errorf("element %q is not hex: %w", arg, err)
			}
			elements = append(elements, e)
		}
	}
	return elements, nil
}
