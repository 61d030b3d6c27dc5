// Copyright 2025 The Anagrams Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the anagrams command: multi-word anagram discovery
over a stream of words.

Words are read one at a time and every combination of words that uses exactly
the letters and digits of the target phrase is printed the moment its last
word arrives. Case, spaces and punctuation of the phrase are ignored.

# Usage

Stream a word list and print every anagram of a phrase:

	anagrams find words.txt "Best Secret"

Word lists are plain text (one word per line) or wordserve binary chunks,
either a single dict_0001.bin file or a directory of them. Use "-" to read
words from stdin:

	cat words.txt | anagrams find - "IT Crowd" --distinct

Feed words by hand:

	anagrams interactive Aschheim

Serve the stream over MessagePack on stdin/stdout for other processes:

	anagrams serve "Best Secret"

# Configuration

Defaults come from ~/.config/anagrams/config.toml, created on first run.
Flags override the file:

	--config string   Path to a config file
	-d, --debug       Toggle debug logging
	--min-word int    Words this long or shorter are ignored (default 2)
	--workers int     Parallel candidate evaluation (0 = GOMAXPROCS)
	--distinct        Print each set of words once, in any order
	--dedupe          Drop repeated words from the input

Logs go to stderr; stdout only carries results.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "anagrams"
	gh      = "https://github.com/bastiangx/anagrams"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// a second signal falls back to the default handler and kills the process
		<-ctx.Done()
		stop()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "\nExiting...\n")
			return
		}
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
