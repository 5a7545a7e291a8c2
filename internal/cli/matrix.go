package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/architeacher/fieldcompare/pkg/validation/conformance"
	"github.com/architeacher/fieldcompare/pkg/validation/native"
	"github.com/architeacher/fieldcompare/pkg/validation/script"
)

// MatrixResult reports how each runtime fares against the verdict table and
// where the two disagree.
type MatrixResult struct {
	Native        []string `json:"native"`
	Script        []string `json:"script"`
	Disagreements []string `json:"disagreements"`
}

func (r MatrixResult) ok() bool {
	return len(r.Native) == 0 && len(r.Script) == 0 && len(r.Disagreements) == 0
}

func newMatrixCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Run the verdict table against both runtimes",
		Long: `Matrix evaluates the verdict table with the native and the script runtime,
then compares both runtimes on a grid of boundary inputs. It fails when a
runtime misses an expected verdict or the runtimes disagree.`,
		Args: cobra.NoArgs,
		RunE: a.runE(func(ctx context.Context, _ *cobra.Command, _ []string) error {
			return a.runMatrix(ctx, time.Now())
		}),
	}
}

func (a *app) runMatrix(ctx context.Context, now time.Time) error {
	nativePolicy, scriptPolicy := native.New(), script.New()

	result := MatrixResult{
		Native:        describeMismatches(conformance.Check(nativePolicy, now)),
		Script:        describeMismatches(conformance.Check(scriptPolicy, now)),
		Disagreements: describeMismatches(conformance.Disagreements(nativePolicy, scriptPolicy, now)),
	}

	a.log.WithContext(ctx).Debug().
		Int("native", len(result.Native)).
		Int("script", len(result.Script)).
		Int("disagreements", len(result.Disagreements)).
		Msg("matrix evaluated")

	return a.output.emit(result.ok(), result, func(w io.Writer) {
		section := func(title string, lines []string) {
			_, _ = fmt.Fprintf(w, "%s: %d\n", title, len(lines))

			for _, line := range lines {
				_, _ = fmt.Fprintf(w, "  %s\n", line)
			}
		}

		section("native mismatches", result.Native)
		section("script mismatches", result.Script)
		section("disagreements", result.Disagreements)
	})
}

func describeMismatches(mismatches []conformance.Mismatch) []string {
	out := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		out = append(out, m.String())
	}

	return out
}
