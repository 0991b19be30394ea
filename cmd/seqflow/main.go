// Command seqflow runs the lazy sequence and stream pipelines from the command line.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"
)

const (
	Version = "0.1.0"
)

const (
	argConfigFile = "config"
	argEnvFile    = "env-file"

	argNumber     = "number"
	argFirst      = "first"
	argThen       = "then"
	argSecond     = "second"
	argSeed       = "seed"
	argCount      = "count"
	argSkip       = "skip"
	argSize       = "size"
	argWords      = "words"
	argPrefix     = "prefix"
	argFile       = "file"
	argLongerThan = "longer-than"
	argParallel   = "parallel"
	argWorkers    = "workers"
	argWatch      = "watch"
	argRedis      = "redis"
	argLow        = "low"
	argHigh       = "high"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "seqflow:", err)
		os.Exit(1)
	}
}

// commonFlags are accepted by every command.
func commonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  argConfigFile,
			Usage: "seqflow YAML configuration file path",
		},
		&cli.StringFlag{
			Name:  argEnvFile,
			Usage: ".env file loaded before reading SEQFLOW_* variables",
		},
	}, flags...)
}

func newApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:    "seqflow",
		Version: Version,
		Usage:   "Lazy sequences and stream pipelines",
		Writer:  out,
		Commands: []*cli.Command{
			{
				Name:   "digits",
				Usage:  "Average the digits of a number in two consecutive bounded runs",
				Action: action(out, runDigits),
				Flags: commonFlags(
					&cli.IntFlag{Name: argNumber, Usage: "non-negative number whose digits are averaged", Value: 1729},
					&cli.IntFlag{Name: argFirst, Usage: "digits averaged by the first run", Value: 10},
					&cli.IntFlag{Name: argThen, Usage: "digits averaged by the second run", Value: 3},
				),
			},
			{
				Name:   "squares",
				Usage:  "Print the first squares of the counter started at seed",
				Action: action(out, runSquares),
				Flags: commonFlags(
					&cli.IntFlag{Name: argSeed, Usage: "counter seed", Value: 0},
					&cli.IntFlag{Name: argCount, Usage: "number of squares", Value: 4},
				),
			},
			{
				Name:   "evens",
				Usage:  "Print the first even numbers of an infinite stream",
				Action: action(out, runEvens),
				Flags: commonFlags(
					&cli.IntFlag{Name: argCount, Usage: "number of evens", Value: 100},
				),
			},
			{
				Name:   "page",
				Usage:  "Print a page of an infinite stream of random numbers",
				Action: action(out, runPage),
				Flags: commonFlags(
					&cli.IntFlag{Name: argSkip, Usage: "elements skipped", Value: 10},
					&cli.IntFlag{Name: argSize, Usage: "page size", Value: 10},
					&cli.IntFlag{Name: argSeed, Usage: "random seed, 0 for a time based seed", Value: 0},
				),
			},
			{
				Name:   "letters",
				Usage:  "Print the letters of two words from a concatenated stream",
				Action: action(out, runLetters),
				Flags: commonFlags(
					&cli.StringFlag{Name: argFirst, Usage: "first word", Value: "Hello"},
					&cli.StringFlag{Name: argSecond, Usage: "second word", Value: "World"},
				),
			},
			{
				Name:   "reductions",
				Usage:  "Run distinct, max and find-first reductions over a word list",
				Action: action(out, runReductions),
				Flags: commonFlags(
					&cli.StringFlag{Name: argWords, Usage: "comma separated words", Value: "merrily,merrily,gently,softly"},
					&cli.StringFlag{Name: argPrefix, Usage: "prefix searched by find-first", Value: "Q"},
				),
			},
			{
				Name:   "sort-by-length",
				Usage:  "Sort words by length, ascending then descending",
				Action: action(out, runSortByLength),
				Flags: commonFlags(
					&cli.StringFlag{Name: argWords, Usage: "comma separated words", Value: "Peter,Paul,Mary"},
				),
			},
			{
				Name:   "wordcount",
				Usage:  "Count the words of a text and its long words by loop, stream and parallel stream",
				Action: action(out, runWordCount),
				Flags: commonFlags(
					&cli.StringFlag{Name: argFile, Usage: "text file, defaults to words.file"},
					&cli.IntFlag{Name: argLongerThan, Usage: "letters a long word exceeds, defaults to words.longer_than", Value: -1},
					&cli.BoolFlag{Name: argParallel, Usage: "also count long words in parallel"},
					&cli.IntFlag{Name: argWorkers, Usage: "parallel workers, defaults to parallel.workers", Value: 0},
					&cli.StringFlag{Name: argWatch, Usage: "cron expression re-running the count, defaults to watch.schedule"},
					&cli.BoolFlag{Name: argRedis, Usage: "read words from the configured Redis list instead of a file"},
				),
			},
			{
				Name:   "load-words",
				Usage:  "Store the words of a text file in the configured Redis list",
				Action: action(out, runLoadWords),
				Flags: commonFlags(
					&cli.StringFlag{Name: argFile, Usage: "text file, defaults to words.file"},
				),
			},
			{
				Name:   "randint",
				Usage:  "Print a random integer between low and high inclusive",
				Action: action(out, runRandInt),
				Flags: commonFlags(
					&cli.IntFlag{Name: argLow, Usage: "lower bound", Value: 5},
					&cli.IntFlag{Name: argHigh, Usage: "upper bound", Value: 10},
					&cli.IntFlag{Name: argSeed, Usage: "random seed, 0 for a time based seed", Value: 0},
				),
			},
		},
	}

	for _, c := range app.Commands {
		sort.Sort(cli.FlagsByName(c.Flags))
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	return app
}
