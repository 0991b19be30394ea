package stream_test

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// Example demonstrates basic stream usage.
func Example() {
	result, err := stream.FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}).
		Filter(func(x int) bool { return x%2 == 0 }).
		Map(func(x int) int { return x * 2 }).
		Limit(3).
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Result: %v\n", result)
	// Output: Result: [4 8 12]
}

// ExampleIterate builds an infinite stream of even numbers and keeps a prefix.
func ExampleIterate() {
	evens, _ := stream.Iterate(0, func(x int) int { return x + 2 }).
		Limit(5).
		ToSlice(context.Background())

	fmt.Println(evens)
	// Output: [0 2 4 6 8]
}

// ExampleGenerate pages through an infinite random stream.
func ExampleGenerate() {
	rng := rand.New(rand.NewSource(1))
	page, _ := stream.Generate(rng.Float64).
		Skip(10).
		Limit(10).
		Count(context.Background())

	fmt.Println(page)
	// Output: 10
}

// ExampleConcat joins the letters of two words.
func ExampleConcat() {
	letters := func(word string) stream.Stream[string] {
		return stream.FromSlice(strings.Split(word, ""))
	}

	result, _ := stream.Concat(letters("Hello"), letters("World")).ToSlice(context.Background())
	fmt.Println(strings.Join(result, " "))
	// Output: H e l l o W o r l d
}

// Example_reductions shows terminal operations returning optional results.
func Example_reductions() {
	ctx := context.Background()
	words := []string{"merrily", "merrily", "gently", "softly"}
	caseInsensitive := func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}

	distinct, _ := stream.FromSlice(words).Distinct().ToSlice(ctx)
	fmt.Println(distinct)

	largest, _ := stream.FromSlice(words).Max(ctx, caseInsensitive)
	fmt.Println(largest.OrElse("NONE"))

	q, _ := stream.FromSlice(words).FindFirstMatch(ctx, func(s string) bool {
		return strings.HasPrefix(s, "Q")
	})
	fmt.Println(q.OrElse("NOT FOUND"))

	// Output:
	// [merrily gently softly]
	// softly
	// NOT FOUND
}

// ExampleMapTo converts element types.
func ExampleMapTo() {
	labels, _ := stream.MapTo(stream.Of(1, 2, 3), strconv.Itoa).ToSlice(context.Background())
	fmt.Printf("%q\n", labels)
	// Output: ["1" "2" "3"]
}

// ExampleParallelCount counts long words on two workers.
func ExampleParallelCount() {
	words := []string{"internationalization", "go", "characteristically", "seq"}

	n, err := stream.ParallelCount(context.Background(), words, stream.ParallelConfig{Workers: 2},
		func(w string) bool { return len(w) >= 12 })
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(n)
	// Output: 2
}

// Example_reuse shows that a consumed stream cannot be traversed again.
func Example_reuse() {
	s := stream.Of(1, 2, 3)
	n, _ := s.Count(context.Background())
	fmt.Println(n)

	_, err := s.Count(context.Background())
	fmt.Println(err)

	// Output:
	// 3
	// stream is closed: resource is closed
}
