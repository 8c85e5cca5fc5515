// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/wire"
	"github.com/lbryio/lbry-sdk/gcs"
	"github.com/lbryio/lbry-sdk/gcs/blockcf"
	"golang.org/x/sync/errgroup"
)

// scanCacheSize is the number of parsed filters the scan command keeps.
const scanCacheSize = 1000

// buildCommand builds a filter and prints it hex encoded.
type buildCommand struct {
	elementOptions
}

// Execute runs the build command.
func (c *buildCommand) Execute(args []string) error {
	params, err := cfg.filterParams()
	if err != nil {
		return err
	}
	elements, err := parseElements(args, c.Format)
	if err != nil {
		return err
	}
	return buildFilter(os.Stdout, params, elements)
}

// buildFilter writes the hex encoded filter with the given parameters that
// contains the elements to w.
func buildFilter(w io.Writer, params gcs.FilterParams, elements [][]byte) error {
	filter, err := gcs.NewFilter(params, elements)
	if err != nil {
		return err
	}
	log.Debugf("Built filter with %d items (%v)", filter.N(), params)
	_, err = fmt.Fprintf(w, "%x\n", filter.Bytes())
	return err
}

// matchCommand matches elements against a hex encoded filter.
type matchCommand struct {
	elementOptions
}

// Execute runs the match command.
func (c *matchCommand) Execute(args []string) error {
	if len(args) < 1 {
		return errors.New("match requires a filter followed by elements")
	}
	params, err := cfg.filterParams()
	if err != nil {
		return err
	}
	encoded, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("filter is not hex: %w", err)
	}
	elements, err := parseElements(args[1:], c.Format)
	if err != nil {
		return err
	}
	return matchFilter(os.Stdout, params, encoded, args[1:], elements)
}

// matchFilter writes whether each element matches the serialized filter,
// followed by whether any of them match.
func matchFilter(w io.Writer, params gcs.FilterParams, encoded []byte, names []string, elements [][]byte) error {
	filter, err := gcs.FromBytes(params, encoded)
	if err != nil {
		return err
	}
	for i, e := range elements {
		if _, err := fmt.Fprintf(w, "%s: %v\n", names[i], filter.Match(e)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "any: %v\n", filter.MatchAny(elements))
	return err
}

// decodeCommand prints the contents of a hex encoded filter.
type decodeCommand struct{}

// Execute runs the decode command.
func (c *decodeCommand) Execute(args []string) error {
	if len(args) != 1 {
		return errors.New("decode requires exactly one filter")
	}
	params, err := cfg.filterParams()
	if err != nil {
		return err
	}
	encoded, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("filter is not hex: %w", err)
	}
	return decodeFilter(os.Stdout, params, encoded)
}

// decodeFilter writes the number of items in the serialized filter followed by
// each of its hashed values in ascending order.
func decodeFilter(w io.Writer, params gcs.FilterParams, encoded []byte) error {
	dec, err := gcs.NewDecoder(params, encoded)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "N: %d\n", dec.N())
	for {
		v, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			bw.Flush()
			return err
		}
		fmt.Fprintln(bw, v)
	}
	return bw.Flush()
}

// scanCommand matches watched elements against block filters read from stdin.
type scanCommand struct {
	elementOptions
}

// Execute runs the scan command.
func (c *scanCommand) Execute(args []string) error {
	watch, err := parseElements(args, c.Format)
	if err != nil {
		return err
	}
	cache := blockcf.NewCache(scanCacheSize)
	return scanFilters(shutdownListener(), os.Stdin, os.Stdout, watch,
		cfg.Workers, cache)
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	// A hex encoded committed filter message is at most twice the size of the
	// message.
	maxLine := 2 * int((&wire.MsgCFilter{}).MaxPayloadLength(wire.ProtocolVersion))

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine+2)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// parseEnvelope parses a hex encoded committed filter message.
func parseEnvelope(line string, cache *blockcf.Cache) (*blockcf.BlockFilter, error) {
	data, err := hex.DecodeString(line)
	if err != nil {
		return nil, err
	}
	var msg wire.MsgCFilter
	if err := msg.BtcDecode(bytes.NewReader(data), wire.ProtocolVersion); err != nil {
		return nil, err
	}
	return cache.FromBytes(blockcf.FilterType(msg.FilterType), &msg.BlockHash,
		msg.Data)
}

// scanFilters reads hex encoded committed filter messages, one per line, from
// r and writes the hash of every block whose filter matches any of the watched
// elements to w.  Up to workers filters are parsed and matched concurrently,
// however, the matching blocks are always written in input order.
func scanFilters(ctx context.Context, r io.Reader, w io.Writer, watch [][]byte, workers int, cache *blockcf.Cache) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}

	blockHashes := make([]chainhash.Hash, len(lines))
	matched := make([]bool, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bf, err := parseEnvelope(line, cache)
			if err != nil {
				return fmt.Errorf("filter on line %d: %w", i+1, err)
			}
			blockHashes[i] = bf.BlockHash()
			matched[i] = bf.MatchAny(watch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}

	var numMatched int
	bw := bufio.NewWriter(w)
	for i := range lines {
		if !matched[i] {
			continue
		}
		numMatched++
		fmt.Fprintln(bw, blockHashes[i])
	}
	log.Infof("Scanned %d filters, %d matched", len(lines), numMatched)
	return bw.Flush()
}
