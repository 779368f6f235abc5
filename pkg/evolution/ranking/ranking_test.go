package ranking_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/evolution/ranking"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

var minimize = []evolution.Sense{evolution.Minimize}

// evalsOf builds an [N, M] evaluation tensor from rows.
func evalsOf(t *testing.T, rows [][]float64) *tensor.Tensor {
	t.Helper()
	n, m := len(rows), len(rows[0])
	data := make([]float64, 0, n*m)
	for _, r := range rows {
		data = append(data, r...)
	}
	ev, err := tensor.New([]int{n, m}, data)
	require.NoError(t, err)
	return ev
}

// popOf pairs evaluations with decision vectors holding each candidate's
// original index, so survivors can be identified after selection.
func popOf(t *testing.T, rows [][]float64) evolution.Population {
	t.Helper()
	n := len(rows)
	vals := tensor.Zeros(n, 1)
	for i := 0; i < n; i++ {
		vals.Set(float64(i), i, 0)
	}
	pop, err := evolution.NewPopulation(vals, evalsOf(t, rows))
	require.NoError(t, err)
	return pop
}

// ids reads back the original indices of a population built by popOf.
func ids(pop evolution.Population) []int {
	v3, _ := pop.Canonical()
	out := make([]int, 0, v3.Dim(0)*v3.Dim(1))
	for b := 0; b < v3.Dim(0); b++ {
		for i := 0; i < v3.Dim(1); i++ {
			out = append(out, int(v3.At(b, i, 0)))
		}
	}
	return out
}

// The layered population used throughout: candidate 0 dominates everyone,
// candidates 1, 3 and 4 are mutually non-dominated, and candidate 2 is
// dominated by all of them.
var layered = [][]float64{
	{0, 0},
	{1, 1},
	{2, 2},
	{0, 2},
	{2, 0},
}

func TestDominationCounts(t *testing.T) {
	counts, err := ranking.DominationCounts(evalsOf(t, layered), minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, counts.Shape())
	assert.Equal(t, []int{0, 1, 4, 1, 1}, counts.Data())
}

func TestDominatesAntisymmetry(t *testing.T) {
	for i, a := range layered {
		for j, b := range layered {
			if i == j {
				continue
			}
			ab, err := ranking.Dominates(a, b, minimize)
			require.NoError(t, err)
			ba, err := ranking.Dominates(b, a, minimize)
			require.NoError(t, err)
			assert.False(t, ab && ba, "candidates %d and %d dominate each other", i, j)
		}
	}

	// Exactly equal rows dominate neither way.
	eq, err := ranking.Dominates([]float64{1, 2}, []float64{1, 2}, minimize)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestMixedSenses(t *testing.T) {
	senses := []evolution.Sense{evolution.Minimize, evolution.Maximize}
	dom, err := ranking.Dominates([]float64{0, 5}, []float64{1, 3}, senses)
	require.NoError(t, err)
	assert.True(t, dom)

	dom, err = ranking.Dominates([]float64{1, 3}, []float64{0, 5}, senses)
	require.NoError(t, err)
	assert.False(t, dom)
}

func TestFrontPartition(t *testing.T) {
	ranks, err := ranking.FrontRanks(evalsOf(t, layered), minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 1, 1}, ranks.Data())

	fronts, err := ranking.Fronts(evalsOf(t, layered), minimize)
	require.NoError(t, err)
	want := [][][]int{{{0}, {1, 3, 4}, {2}}}
	if diff := cmp.Diff(want, fronts); diff != "" {
		t.Errorf("fronts mismatch (-want +got):\n%s", diff)
	}
}

func TestFrontZeroEqualsZeroCounts(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	rows := make([][]float64, 20)
	for i := range rows {
		rows[i] = []float64{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	senses := []evolution.Sense{evolution.Minimize, evolution.Maximize, evolution.Minimize}

	counts, err := ranking.DominationCounts(evalsOf(t, rows), senses)
	require.NoError(t, err)
	ranks, err := ranking.FrontRanks(evalsOf(t, rows), senses)
	require.NoError(t, err)

	for i := range rows {
		assert.Equal(t, counts.Data()[i] == 0, ranks.Data()[i] == 0, "candidate %d", i)
	}

	// Partition completeness: ranks are contiguous from 0.
	maxRank := 0
	seen := map[int]int{}
	for _, r := range ranks.Data() {
		seen[r]++
		if r > maxRank {
			maxRank = r
		}
	}
	for r := 0; r <= maxRank; r++ {
		assert.Greater(t, seen[r], 0, "empty front %d", r)
	}
}

func TestAllEqualPopulationIsOneFront(t *testing.T) {
	rows := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	ranks, err := ranking.FrontRanks(evalsOf(t, rows), minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, ranks.Data())

	dist, err := ranking.CrowdingDistances(evalsOf(t, rows), ranks, minimize)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, dist.Data())
}

func TestSingleCandidatePopulation(t *testing.T) {
	rows := [][]float64{{3, 4}}
	counts, err := ranking.DominationCounts(evalsOf(t, rows), minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, counts.Data())

	ranks, err := ranking.FrontRanks(evalsOf(t, rows), minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, ranks.Data())
}

func TestCrowdingBoundaryAndInterior(t *testing.T) {
	// One front of three mutually non-dominated candidates.
	rows := [][]float64{{0, 3}, {1, 2}, {3, 0}}
	ev := evalsOf(t, rows)
	ranks, err := ranking.FrontRanks(ev, minimize)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 0}, ranks.Data())

	dist, err := ranking.CrowdingDistances(ev, ranks, minimize)
	require.NoError(t, err)
	d := dist.Data()
	assert.True(t, math.IsInf(d[0], 1))
	assert.True(t, math.IsInf(d[2], 1))
	// Interior member: (3-0)/3 per objective.
	assert.InDelta(t, 2.0, d[1], 1e-12)
}

func TestCrowdingTwoMemberFrontIsInfinite(t *testing.T) {
	rows := [][]float64{{0, 1}, {1, 0}}
	ev := evalsOf(t, rows)
	ranks, err := ranking.FrontRanks(ev, minimize)
	require.NoError(t, err)

	dist, err := ranking.CrowdingDistances(ev, ranks, minimize)
	require.NoError(t, err)
	for _, d := range dist.Data() {
		assert.True(t, math.IsInf(d, 1))
	}
}

func TestCrowdingNaNFrontScoresZero(t *testing.T) {
	// Both NaN candidates sink into one trailing front; its size must not
	// matter, so even a two-member NaN front scores 0 rather than +Inf.
	rows := [][]float64{{1, 1}, {math.NaN(), 0}, {0, math.NaN()}}
	ev := evalsOf(t, rows)
	ranks, err := ranking.FrontRanks(ev, minimize)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 1}, ranks.Data())

	dist, err := ranking.CrowdingDistances(ev, ranks, minimize)
	require.NoError(t, err)
	d := dist.Data()
	assert.True(t, math.IsInf(d[0], 1))
	assert.Equal(t, 0.0, d[1])
	assert.Equal(t, 0.0, d[2])
}

func TestTakeBestReturnsExactlyK(t *testing.T) {
	pop := popOf(t, layered)
	for k := 0; k <= 5; k++ {
		out, err := ranking.TakeBest(pop, k, minimize, true)
		require.NoError(t, err)
		assert.Equal(t, k, out.Size(), "k=%d", k)
	}
}

func TestTakeBestSplitsFrontByCrowding(t *testing.T) {
	// Fronts sized [1, 1, 3]: candidate 3 is a boundary member of the
	// last front, candidate 2 its interior.
	rows := [][]float64{
		{0, 0},
		{1, 1},
		{3, 3},
		{2, 4},
		{4, 2},
	}
	pop := popOf(t, rows)

	out, err := ranking.TakeBest(pop, 3, minimize, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, ids(out))

	// With crowd-sort disabled the split falls back to index order.
	out, err = ranking.TakeBest(pop, 3, minimize, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids(out))
}

func TestTakeBestFullPopulationIsReordered(t *testing.T) {
	out, err := ranking.TakeBest(popOf(t, layered), 5, minimize, true)
	require.NoError(t, err)
	// Front order with crowding ties broken toward boundary members.
	assert.Equal(t, []int{0, 3, 4, 1, 2}, ids(out))
}

func TestTakeBestOverflowRejected(t *testing.T) {
	pop := popOf(t, layered)
	_, err := ranking.TakeBest(pop, 6, minimize, true)
	assert.ErrorIs(t, err, evolution.ErrTruncationOverflow)

	_, err = ranking.TakeBest(pop, -1, minimize, true)
	assert.ErrorIs(t, err, evolution.ErrInvalidParam)

	_, err = ranking.TakeBest(pop, 3, []evolution.Sense{evolution.Minimize, evolution.Minimize, evolution.Minimize}, true)
	assert.ErrorIs(t, err, evolution.ErrInvalidSense)
}

func TestTakeBestSingleObjective(t *testing.T) {
	rows := [][]float64{{3}, {1}, {2}, {1}, {math.NaN()}}
	pop := popOf(t, rows)

	out, err := ranking.TakeBest(pop, 3, minimize, true)
	require.NoError(t, err)
	// Ties broken by original index; NaN sinks to the end.
	assert.Equal(t, []int{1, 3, 2}, ids(out))

	out, err = ranking.TakeBest(pop, 5, minimize, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 0, 4}, ids(out))

	// Maximize flips the order.
	out, err = ranking.TakeBest(pop, 2, []evolution.Sense{evolution.Maximize}, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, ids(out))
}

func TestSingleObjectiveDegeneratesToValueOrder(t *testing.T) {
	// With one objective the pairwise engine must reduce to rank-minus-ties
	// counts, with front order equal to value order.
	rows := [][]float64{{3}, {1}, {2}, {1}}
	ev := evalsOf(t, rows)

	counts, err := ranking.DominationCounts(ev, minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 2, 0}, counts.Data())

	ranks, err := ranking.FrontRanks(ev, minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1, 0}, ranks.Data())

	fronts, err := ranking.Fronts(ev, minimize)
	require.NoError(t, err)
	want := [][][]int{{{1, 3}, {2}, {0}}}
	if diff := cmp.Diff(want, fronts); diff != "" {
		t.Errorf("fronts mismatch (-want +got):\n%s", diff)
	}

	// The selector's dedicated single-objective path must agree with the
	// flattened front order.
	out, err := ranking.TakeBest(popOf(t, rows), 4, minimize, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 0}, ids(out))
}

func TestSingleObjectiveScalarAndMatrixFormsAgree(t *testing.T) {
	values := []float64{3, 1, 2, 1, 5}
	n := len(values)

	vals := tensor.Zeros(n, 1)
	for i := 0; i < n; i++ {
		vals.Set(float64(i), i, 0)
	}
	scalarEvals, err := tensor.New([]int{n}, append([]float64(nil), values...))
	require.NoError(t, err)
	matrixEvals, err := tensor.New([]int{n, 1}, append([]float64(nil), values...))
	require.NoError(t, err)

	scalarPop, err := evolution.NewPopulation(vals, scalarEvals)
	require.NoError(t, err)
	matrixPop, err := evolution.NewPopulation(vals, matrixEvals)
	require.NoError(t, err)

	a, err := ranking.TakeBest(scalarPop, 3, minimize, true)
	require.NoError(t, err)
	b, err := ranking.TakeBest(matrixPop, 3, minimize, true)
	require.NoError(t, err)

	assert.Equal(t, ids(b), ids(a))
	assert.Equal(t, []int{3}, a.Evals().Shape())
	assert.Equal(t, []int{3, 1}, b.Evals().Shape())
}

func TestNaNCandidatesAreMaximallyDominated(t *testing.T) {
	rows := [][]float64{{1, 1}, {math.NaN(), 0}, {0, 0}}
	counts, err := ranking.DominationCounts(evalsOf(t, rows), minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, counts.Data())

	ranks, err := ranking.FrontRanks(evalsOf(t, rows), minimize)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, ranks.Data())

	out, err := ranking.TakeBest(popOf(t, rows), 2, minimize, true)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, ids(out))
}

func TestBatchIndependence(t *testing.T) {
	sliceA := layered
	sliceB := [][]float64{
		{5, 5},
		{0, 1},
		{1, 0},
		{0, 0},
		{2, 3},
	}

	stacked := tensor.Zeros(2, 5, 2)
	for i, row := range sliceA {
		for m, v := range row {
			stacked.Set(v, 0, i, m)
		}
	}
	for i, row := range sliceB {
		for m, v := range row {
			stacked.Set(v, 1, i, m)
		}
	}

	batched, err := ranking.FrontRanks(stacked, minimize)
	require.NoError(t, err)
	soloA, err := ranking.FrontRanks(evalsOf(t, sliceA), minimize)
	require.NoError(t, err)
	soloB, err := ranking.FrontRanks(evalsOf(t, sliceB), minimize)
	require.NoError(t, err)

	assert.Equal(t, soloA.Data(), batched.Row(0))
	assert.Equal(t, soloB.Data(), batched.Row(1))
}

func TestTakeBestBatched(t *testing.T) {
	// Two independent slices selected in one call; the values tensor
	// tags candidates with slice*10 + index.
	vals := tensor.Zeros(2, 5, 1)
	evals := tensor.Zeros(2, 5, 2)
	rows := [][][]float64{
		layered,
		{{5, 5}, {0, 1}, {1, 0}, {0, 0}, {2, 3}},
	}
	for b := range rows {
		for i, row := range rows[b] {
			vals.Set(float64(b*10+i), b, i, 0)
			for m, v := range row {
				evals.Set(v, b, i, m)
			}
		}
	}
	pop, err := evolution.NewPopulation(vals, evals)
	require.NoError(t, err)

	out, err := ranking.TakeBest(pop, 2, minimize, true)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, out.Values().Shape())
	got := ids(out)
	// Slice 0: candidate 0, then a boundary member of front {1,3,4}.
	assert.Equal(t, []int{0, 3}, got[:2])
	// Slice 1: candidate 3 dominates 1, 2 and 4; front {1,2} splits by
	// crowding with both boundary, so index order.
	assert.Equal(t, []int{13, 11}, got[2:])
}
