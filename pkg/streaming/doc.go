/*
Package streaming groups the lazy stream pipeline and its sources.

  - stream: single-use lazy pipelines with stage combinators and terminal operations
  - redislist: a stream over a Redis list, fetched page by page
  - words: splitting text into words for word count pipelines

Basic usage:

	list, err := words.ReadFile("alice.txt")
	if err != nil {
		return err
	}

	long, err := stream.FromSlice(list).
		Filter(words.LongerThan(12)).
		Count(ctx)

Nothing is evaluated until a terminal operation such as Count runs, and every
terminal operation checks ctx between elements.
*/
package streaming
