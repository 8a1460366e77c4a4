package eventlog

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/doublemarked/unload-test/internal/kv/memory"
)

// TestLogMatchesModel drives random append/clear sequences and compares the
// stored log with a slice model: newest first, never above Capacity.
// Property: after any sequence, Read == model and len(Read) <= Capacity
func TestLogMatchesModel(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.MaxSize = 160
	properties := gopter.NewProperties(parameters)

	properties.Property("bounded newest-first log", prop.ForAll(
		func(ops []int) bool {
			ctx := context.Background()
			l := New(memory.New(), Options{})
			var model []string
			for i, op := range ops {
				if op == 0 {
					if _, err := l.Clear(ctx); err != nil {
						return false
					}
					model = nil
					continue
				}
				id := fmt.Sprintf("op%d", i)
				got, err := l.Append(ctx, ev(id))
				if err != nil {
					return false
				}
				model = append([]string{id}, model...)
				if len(model) > Capacity {
					model = model[:Capacity]
				}
				if len(got) > Capacity || !equalStrings(instances(got), model) {
					return false
				}
			}
			events, err := l.Read(ctx)
			if err != nil {
				return false
			}
			return equalStrings(instances(events), model)
		},
		gen.SliceOf(gen.IntRange(0, 15)),
	))

	properties.TestingRun(t)
}
