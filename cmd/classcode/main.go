package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"classcode/internal/classcode"
	"classcode/internal/logger"
	"classcode/internal/wordlist"
)

func main() {
	url := flag.String("url", "", "Fetch the forbidden word list from this URL")
	file := flag.String("file", "", "Read the forbidden word list from this file (.txt or .yaml)")
	count := flag.Int("n", 1, "Number of codes to print")
	seed := flag.Uint64("seed", 0, "Seed for reproducible output (0 picks one from the clock)")
	dump := flag.Bool("dump", false, "Print the forbidden patterns after generating")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	timeout := flag.Duration("timeout", 30*time.Second, "Timeout for fetching the word list")

	flag.Parse()

	if *url != "" && *file != "" {
		fmt.Fprintln(os.Stderr, "Cannot use both -url and -file")
		os.Exit(1)
	}

	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid log level:", err)
		os.Exit(1)
	}
	log := logger.New(logger.WithLevel(level), logger.WithFormat(logger.FormatText), logger.WithOutput(os.Stderr))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var words []string
	switch {
	case *url != "":
		words, err = wordlist.Fetch(ctx, *url)
	case *file != "":
		words, err = wordlist.Load(*file)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading words:", err)
		os.Exit(1)
	}

	randSource := rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Nanosecond()))
	if *seed != 0 {
		randSource = rand.NewPCG(*seed, *seed)
	}

	gen, err := classcode.New(words, classcode.WithRand(rand.New(randSource)), classcode.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building generator:", err)
		os.Exit(1)
	}

	fmt.Println(gen.Code())
	for i := 1; i < *count; i++ {
		code, err := gen.Generate()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error generating code:", err)
			os.Exit(1)
		}
		fmt.Println(code)
	}

	if *dump {
		fmt.Fprintf(os.Stderr, "--- %d forbidden patterns, %d learned\n", len(gen.Patterns()), gen.Learned())
		for _, p := range gen.Patterns() {
			fmt.Fprintln(os.Stderr, p)
		}
	}
}
