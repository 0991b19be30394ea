// Package redislist streams the elements of a Redis list page by page.
package redislist

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

const module = "redislist"

// DefaultPageSize is the number of elements fetched per LRANGE call.
const DefaultPageSize = 500

// Config selects the list to read and how many elements each round trip fetches.
type Config struct {
	Key      string `mapstructure:"key" validate:"required"`
	PageSize int64  `mapstructure:"page_size" validate:"gte=1"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(module, c)
}

// New returns a stream over the list at cfg.Key. Pages are fetched lazily,
// so a Limit or short-circuiting terminal operation stops the round trips.
// Each traversal starts again from the head of the list.
func New(client goredis.Cmdable, cfg Config) (stream.Stream[string], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotNil(module, "client", client); err != nil {
		return nil, err
	}

	return stream.New(func() stream.Source[string] {
		return &pageSource{client: client, cfg: cfg}
	}), nil
}

// pageSource buffers one LRANGE page at a time.
type pageSource struct {
	client goredis.Cmdable
	cfg    Config
	page   []string
	offset int64
	done   bool
}

func (s *pageSource) Next(ctx context.Context) (string, bool, error) {
	if len(s.page) == 0 {
		if s.done {
			return "", false, nil
		}
		if err := s.fetch(ctx); err != nil {
			return "", false, err
		}
		if len(s.page) == 0 {
			return "", false, nil
		}
	}

	value := s.page[0]
	s.page = s.page[1:]
	return value, true, nil
}

func (s *pageSource) fetch(ctx context.Context) error {
	page, err := s.client.LRange(ctx, s.cfg.Key, s.offset, s.offset+s.cfg.PageSize-1).Result()
	if err != nil {
		return gferrors.NewOperationError(module, "LRange", err).WithContext("key " + s.cfg.Key)
	}
	s.offset += int64(len(page))
	s.page = page
	s.done = int64(len(page)) < s.cfg.PageSize
	return nil
}

func (s *pageSource) Close() error {
	s.page = nil
	return nil
}

// Store replaces the list at cfg.Key with values in one transaction,
// pushing at most cfg.PageSize values per RPUSH.
func Store(ctx context.Context, client goredis.Cmdable, cfg Config, values []string) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	_, err := client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, cfg.Key)
		for start := int64(0); start < int64(len(values)); start += cfg.PageSize {
			end := min(start+cfg.PageSize, int64(len(values)))
			batch := make([]interface{}, 0, end-start)
			for _, v := range values[start:end] {
				batch = append(batch, v)
			}
			pipe.RPush(ctx, cfg.Key, batch...)
		}
		return nil
	})
	if err != nil {
		return gferrors.NewOperationError(module, "Store", err).WithContext("key " + cfg.Key)
	}
	return nil
}

// Len returns the number of elements in the list at key.
func Len(ctx context.Context, client goredis.Cmdable, key string) (int64, error) {
	n, err := client.LLen(ctx, key).Result()
	if err != nil {
		return 0, gferrors.NewOperationError(module, "LLen", err).WithContext("key " + key)
	}
	return n, nil
}
