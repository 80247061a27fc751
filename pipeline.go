package ndsprite

import (
	"context"
	"sync"
)

// Result is the outcome of converting one subject. Err is nil on success.
type Result struct {
	Subject Subject
	Err     error
}

type job struct {
	index   int
	subject Subject
}

type result struct {
	index int
	err   error
}

func feedSubjects(ctx context.Context, subjects []Subject) <-chan job {
	out := make(chan job)
	go func() {
		defer close(out)
		for i, s := range subjects {
			select {
			case out <- job{i, s}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (c *Converter) subjectWorker(in <-chan job) <-chan result {
	out := make(chan result)
	go func() {
		defer close(out)
		for j := range in {
			err := c.Convert(j.subject)
			if err != nil {
				c.logger.Printf("Error processing \"%s\": %v\n", j.subject.Name, err)
			}
			out <- result{j.index, err}
		}
	}()
	return out
}

func mergeResults(cs ...<-chan result) <-chan result {
	var wg sync.WaitGroup
	out := make(chan result, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan result) {
			for r := range c {
				out <- r
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Run converts subjects using the given number of concurrent workers and
// returns one Result per subject in the same order. A failing subject does
// not affect the others. If ctx is cancelled, subjects not yet started
// report the context error.
func (c *Converter) Run(ctx context.Context, subjects []Subject, workers int) []Result {
	if workers < 1 {
		workers = 1
	}

	jobs := feedSubjects(ctx, subjects)

	var resultList []<-chan result
	for i := 0; i < workers; i++ {
		resultList = append(resultList, c.subjectWorker(jobs))
	}

	results := make([]Result, len(subjects))
	done := make([]bool, len(subjects))
	for r := range mergeResults(resultList...) {
		results[r.index] = Result{subjects[r.index], r.err}
		done[r.index] = true
	}

	for i, s := range subjects {
		if !done[i] {
			results[i] = Result{s, ctx.Err()}
		}
	}

	return results
}
