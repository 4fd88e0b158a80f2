package llm

type Source string

const (
	SourceOK       Source = "ok"
	SourceFallback Source = "fallback"
)

// Result is either the collaborator's answer or the local fallback. Err records why the
// fallback was used and is never returned to HTTP callers.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value, Source: SourceOK}
}

func Fallback[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Source: SourceFallback, Err: err}
}

func (r Result[T]) IsFallback() bool {
	return r.Source == SourceFallback
}
