// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs_test

import (
	"fmt"

	"github.com/lbryio/lbry-sdk/gcs"
)

// This example demonstrates building a filter with the default parameters,
// serializing it, and querying the parsed result.
func ExampleNewFilter() {
	items := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	filter, err := gcs.NewFilter(gcs.DefaultParams, items)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Serialized: %x\n", filter.Bytes())

	parsed, err := gcs.FromBytes(gcs.DefaultParams, filter.Bytes())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Match a:", parsed.Match([]byte("a")))
	fmt.Println("Match d:", parsed.Match([]byte("d")))
	fmt.Println("Match any of d, c:", parsed.MatchAny([][]byte{[]byte("d"),
		[]byte("c")}))

	// Output:
	// Serialized: 031d99b5122570562c80
	// Match a: true
	// Match d: false
	// Match any of d, c: true
}

// This example demonstrates lazily reading the hashed values of a serialized
// filter.
func ExampleDecoder() {
	filter, err := gcs.NewFilter(gcs.DefaultParams, [][]byte{[]byte("a"),
		[]byte("b"), []byte("c")})
	if err != nil {
		fmt.Println(err)
		return
	}

	dec, err := gcs.NewDecoder(gcs.DefaultParams, filter.Bytes())
	if err != nil {
		fmt.Println(err)
		return
	}
	values, err := dec.All()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(dec.N(), values)

	// Output:
	// 3 [242486 1852513 2945210]
}
