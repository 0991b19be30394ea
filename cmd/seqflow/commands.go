package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	goredis "github.com/redis/go-redis/v9"
	"gopkg.in/urfave/cli.v2"

	"github.com/vnykmshr/seqflow/internal/config"
	"github.com/vnykmshr/seqflow/internal/logger"
	"github.com/vnykmshr/seqflow/pkg/metrics"
	"github.com/vnykmshr/seqflow/pkg/scheduling/scheduler"
	"github.com/vnykmshr/seqflow/pkg/scheduling/workerpool"
	"github.com/vnykmshr/seqflow/pkg/sequence"
	"github.com/vnykmshr/seqflow/pkg/streaming/redislist"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
	"github.com/vnykmshr/seqflow/pkg/streaming/words"
)

// runner carries what every command needs.
type runner struct {
	out      *printer
	log      *logger.Logger
	cfg      *config.Config
	redis    goredis.Cmdable
	registry *metrics.Registry

	// owned is the client opened by redisClient, closed by close.
	owned *goredis.Client
}

// printer remembers the first write error so commands can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(v interface{}) {
	p.printf("%v\n", v)
}

func newRunner(out io.Writer, cfg *config.Config, log *logger.Logger) *runner {
	return &runner{
		out:      &printer{w: out},
		log:      log,
		cfg:      cfg,
		registry: metrics.DefaultRegistry,
	}
}

// redisClient lazily connects to the configured Redis server.
func (r *runner) redisClient() goredis.Cmdable {
	if r.redis == nil {
		r.owned = goredis.NewClient(&goredis.Options{Addr: r.cfg.Redis.Addr})
		r.redis = r.owned
	}
	return r.redis
}

// close releases the Redis client opened by redisClient. Injected clients are left open.
func (r *runner) close() error {
	if r.owned == nil {
		return nil
	}
	err := r.owned.Close()
	r.owned = nil
	r.redis = nil
	return err
}

func (r *runner) redisList() redislist.Config {
	return redislist.Config{Key: r.cfg.Redis.Key, PageSize: r.cfg.Redis.PageSize}
}

// action loads the configuration named by the common flags and runs fn.
func action(out io.Writer, fn func(ctx context.Context, r *runner, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		var opts []config.Option
		if path := c.String(argConfigFile); path != "" {
			opts = append(opts, config.WithConfigFile(path))
		}
		if path := c.String(argEnvFile); path != "" {
			opts = append(opts, config.WithEnvFile(path))
		}

		cfg, err := config.Load(opts...)
		if err != nil {
			return err
		}

		log := logger.New(cfg.Log, "seqflow").WithComponent("cli")
		r := newRunner(out, cfg, log)
		defer func() {
			if err := r.close(); err != nil {
				log.WithError(err).Warn("closing redis client failed")
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := fn(ctx, r, c); err != nil {
			log.WithError(err).Debug("command failed")
			return err
		}
		return r.out.err
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func runDigits(_ context.Context, r *runner, c *cli.Context) error {
	return r.digits(c.Int(argNumber), c.Int(argFirst), c.Int(argThen))
}

// digits averages two consecutive runs over the digits of number, then prints what is left.
func (r *runner) digits(number, first, then int) error {
	digits, err := sequence.DigitsOf(number)
	if err != nil {
		return err
	}

	for _, n := range []int{first, then} {
		avg, err := sequence.BoundedAverage[int](digits, n)
		if err != nil {
			return err
		}
		r.out.println(formatFloat(avg))
	}
	r.out.println(digits.Rest())
	return r.out.err
}

func runSquares(_ context.Context, r *runner, c *cli.Context) error {
	return r.squares(c.Int(argSeed), c.Int(argCount))
}

func (r *runner) squares(seed, count int) error {
	values, err := sequence.Take[int](sequence.NewSquares(seed), count)
	if err != nil {
		return err
	}
	for _, v := range values {
		r.out.println(v)
	}
	return r.out.err
}

func runEvens(ctx context.Context, r *runner, c *cli.Context) error {
	return r.evens(ctx, int64(c.Int(argCount)))
}

func (r *runner) evens(ctx context.Context, count int64) error {
	evens := stream.Iterate(0, func(n int) int { return n + 2 }).Limit(count)
	if err := evens.ForEach(ctx, func(n int) { r.out.println(n) }); err != nil {
		return err
	}
	return r.out.err
}

func runPage(ctx context.Context, r *runner, c *cli.Context) error {
	rng := newRand(int64(c.Int(argSeed)))
	return r.page(ctx, rng.Float64, int64(c.Int(argSkip)), int64(c.Int(argSize)))
}

func (r *runner) page(ctx context.Context, random func() float64, skip, size int64) error {
	page := stream.Generate(random).Skip(skip).Limit(size)
	if err := page.ForEach(ctx, func(f float64) { r.out.println(formatFloat(f)) }); err != nil {
		return err
	}
	return r.out.err
}

func runLetters(ctx context.Context, r *runner, c *cli.Context) error {
	return r.letters(ctx, c.String(argFirst), c.String(argSecond))
}

func letters(word string) stream.Stream[string] {
	return stream.MapTo(stream.FromSlice([]rune(word)), func(c rune) string { return string(c) })
}

func (r *runner) letters(ctx context.Context, first, second string) error {
	combined := stream.Concat(letters(first), letters(second))
	if err := combined.ForEach(ctx, func(s string) { r.out.println(s) }); err != nil {
		return err
	}
	return r.out.err
}

func runReductions(ctx context.Context, r *runner, c *cli.Context) error {
	return r.reductions(ctx, splitList(c.String(argWords)), c.String(argPrefix))
}

func compareIgnoreCase(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func (r *runner) reductions(ctx context.Context, list []string, prefix string) error {
	distinct := stream.FromSlice(list).Distinct()

	largest, err := distinct.Max(ctx, compareIgnoreCase)
	if err != nil {
		return err
	}
	r.out.printf("largest: %s\n", largest.OrElse(""))

	found, err := stream.FromSlice(list).Distinct().FindFirstMatch(ctx, func(s string) bool {
		return strings.HasPrefix(s, prefix)
	})
	if err != nil {
		return err
	}
	r.out.println(found.OrElse("NOT FOUND"))
	return r.out.err
}

func runSortByLength(ctx context.Context, r *runner, c *cli.Context) error {
	return r.sortByLength(ctx, splitList(c.String(argWords)))
}

func byLength(a, b string) int {
	return words.Length(a) - words.Length(b)
}

func (r *runner) sortByLength(ctx context.Context, list []string) error {
	ascending, err := stream.FromSlice(list).Sorted(byLength).ToSlice(ctx)
	if err != nil {
		return err
	}
	for _, w := range ascending {
		r.out.println(w)
	}

	descending, err := stream.FromSlice(list).
		Sorted(func(a, b string) int { return byLength(b, a) }).
		ToSlice(ctx)
	if err != nil {
		return err
	}
	r.out.printf("%v\n", descending)
	return r.out.err
}

func runRandInt(_ context.Context, r *runner, c *cli.Context) error {
	return r.randInt(newRand(int64(c.Int(argSeed))), c.Int(argLow), c.Int(argHigh))
}

func (r *runner) randInt(rng *rand.Rand, low, high int) error {
	n, err := sequence.RandomInt(rng, low, high)
	if err != nil {
		return err
	}
	r.out.println(n)
	return r.out.err
}

func runLoadWords(ctx context.Context, r *runner, c *cli.Context) error {
	file := c.String(argFile)
	if file == "" {
		file = r.cfg.Words.File
	}
	return r.loadWords(ctx, file)
}

func (r *runner) loadWords(ctx context.Context, file string) error {
	if file == "" {
		return fmt.Errorf("no words file given, use --%s or words.file", argFile)
	}
	list, err := words.ReadFile(file)
	if err != nil {
		return err
	}

	cfg := r.redisList()
	if err := redislist.Store(ctx, r.redisClient(), cfg, list); err != nil {
		return err
	}
	r.out.printf("stored %s words in %s\n", humanize.Comma(int64(len(list))), cfg.Key)
	return r.out.err
}

// wordCountOptions holds the resolved wordcount flags.
type wordCountOptions struct {
	file       string
	longerThan int
	parallel   bool
	workers    int
	watch      string
	redis      bool
}

func runWordCount(ctx context.Context, r *runner, c *cli.Context) error {
	opts := wordCountOptions{
		file:       c.String(argFile),
		longerThan: c.Int(argLongerThan),
		parallel:   c.Bool(argParallel),
		workers:    c.Int(argWorkers),
		watch:      c.String(argWatch),
		redis:      c.Bool(argRedis),
	}
	if opts.file == "" {
		opts.file = r.cfg.Words.File
	}
	if opts.longerThan < 0 {
		opts.longerThan = r.cfg.Words.LongerThan
	}
	if opts.workers <= 0 {
		opts.workers = r.cfg.Parallel.Workers
	}
	if opts.watch == "" {
		opts.watch = r.cfg.Watch.Schedule
	}

	if opts.watch != "" {
		return r.watchWordCount(ctx, opts)
	}
	return r.wordCount(ctx, opts)
}

// wordSource opens a fresh word stream per call.
func (r *runner) wordSource(opts wordCountOptions) (func() (stream.Stream[string], error), error) {
	if opts.redis {
		client := r.redisClient()
		cfg := r.redisList()
		return func() (stream.Stream[string], error) {
			s, err := redislist.New(client, cfg)
			if err != nil {
				return nil, err
			}
			return stream.Instrument(s, "redis_words", r.registry), nil
		}, nil
	}

	if opts.file == "" {
		return nil, fmt.Errorf("no words file given, use --%s, words.file or --%s", argFile, argRedis)
	}
	list, err := words.ReadFile(opts.file)
	if err != nil {
		return nil, err
	}
	return func() (stream.Stream[string], error) {
		return stream.Instrument(stream.FromSlice(list), "file_words", r.registry), nil
	}, nil
}

func (r *runner) wordCount(ctx context.Context, opts wordCountOptions) error {
	source, err := r.wordSource(opts)
	if err != nil {
		return err
	}
	long := words.LongerThan(opts.longerThan)

	all, err := source()
	if err != nil {
		return err
	}
	list, err := all.ToSlice(ctx)
	if err != nil {
		return err
	}
	r.out.printf("%s words\n", humanize.Comma(int64(len(list))))

	count := 0
	for _, w := range list {
		if long(w) {
			count++
		}
	}
	r.out.printf("longer than %d (loop): %s\n", opts.longerThan, humanize.Comma(int64(count)))

	filtered, err := source()
	if err != nil {
		return err
	}
	streamed, err := filtered.Filter(long).Count(ctx)
	if err != nil {
		return err
	}
	r.out.printf("longer than %d (stream): %s\n", opts.longerThan, humanize.Comma(streamed))

	if opts.parallel {
		parallel, err := stream.ParallelCount(ctx, list, stream.ParallelConfig{
			Workers:  opts.workers,
			Registry: r.registry,
		}, long)
		if err != nil {
			return err
		}
		r.out.printf("longer than %d (parallel): %s\n", opts.longerThan, humanize.Comma(parallel))
	}

	r.log.Debug("word count finished", map[string]interface{}{"words": len(list), "long": streamed})
	return r.out.err
}

// watchWordCount counts once, then again on every tick of opts.watch until ctx is done.
func (r *runner) watchWordCount(ctx context.Context, opts wordCountOptions) error {
	s := scheduler.New(scheduler.Config{
		Logger: r.log,
		OnError: func(id string, err error) {
			r.log.WithError(err).Warn("scheduled word count failed", map[string]interface{}{"task_id": id})
		},
	})

	job := workerpool.TaskFunc(func(ctx context.Context) error {
		r.out.printf("-- %s\n", time.Now().Format(time.RFC3339))
		return r.wordCount(ctx, opts)
	})
	if err := s.ScheduleCron("wordcount", opts.watch, job); err != nil {
		return err
	}
	if err := s.Trigger(ctx, "wordcount"); err != nil {
		return err
	}

	if err := s.Start(); err != nil {
		return err
	}
	r.log.Info("watching", map[string]interface{}{"schedule": opts.watch})

	<-ctx.Done()
	<-s.Stop()
	return r.out.err
}
