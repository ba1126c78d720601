package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/bank"
)

type fakeAnswer struct {
	cat     bank.Category
	correct bool
}

func (a fakeAnswer) AnswerCategory() bank.Category { return a.cat }
func (a fakeAnswer) IsCorrect() bool { return a.correct }

func TestWeaknessWeight_Anchors(t *testing.T) {
	tests := []struct {
		name string
		stat CategoryStat
		want float64
	}{
		{"no history", CategoryStat{}, 1.3},
		{"perfect", CategoryStat{Correct: 10, Total: 10}, 0.8},
		{"all wrong", CategoryStat{Correct: 0, Total: 10}, 1.6},
		{"half", CategoryStat{Correct: 5, Total: 10}, 1.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeaknessWeight(tt.stat), 1e-9)
		})
	}
}

func TestWeaknessWeight_BoundedAndMonotone(t *testing.T) {
	for total := 1; total <= 20; total++ {
		prev := WeaknessWeight(CategoryStat{Correct: 0, Total: total})
		for correct := 0; correct <= total; correct++ {
			w := WeaknessWeight(CategoryStat{Correct: correct, Total: total})
			if w < MinWeight || w > MaxWeight {
				t.Fatalf("weight %v out of bounds for %d/%d", w, correct, total)
			}
			if w > prev+1e-12 {
				t.Fatalf("weight increased from %v to %v at %d/%d", prev, w, correct, total)
			}
			prev = w
		}
	}
}

func TestWeights_CoversListedCategories(t *testing.T) {
	p := Profile{"a": {Correct: 1, Total: 4}}
	w := p.Weights([]bank.Category{"a", "b"})
	require.Len(t, w, 2)
	assert.InDelta(t, 1.55, w["a"], 1e-9)
	assert.InDelta(t, 1.3, w["b"], 1e-9)
}

func TestRecordAnswers_CreatesAndIncrements(t *testing.T) {
	p := Profile{"a": {Correct: 2, Total: 3}}
	RecordAnswers(p, []fakeAnswer{
		{cat: "a", correct: true},
		{cat: "b", correct: false},
		{cat: "b", correct: true},
	})

	assert.Equal(t, CategoryStat{Correct: 3, Total: 4}, p["a"])
	assert.Equal(t, CategoryStat{Correct: 1, Total: 2}, p["b"])
}

func TestBaselineFromBank_FallsBack(t *testing.T) {
	assert.Equal(t, DefaultBaseline(), BaselineFromBank(nil))

	b, err := bank.Default()
	require.NoError(t, err)
	p := BaselineFromBank(b)
	for c, s := range b.Baseline {
		assert.Equal(t, CategoryStat{Correct: s.Correct, Total: s.Total}, p[c])
	}
}

func TestStats_RecordBest(t *testing.T) {
	s := DefaultStats(nil)
	assert.True(t, s.RecordBest(3, 5))
	assert.False(t, s.RecordBest(2, 10), "lower score must not replace best")
	assert.False(t, s.RecordBest(3, 5), "identical result is not better")
	assert.True(t, s.RecordBest(3, 8), "equal score over more questions is better")
	assert.Equal(t, &Best{Score: 3, Total: 8}, s.Best)
	assert.False(t, s.RecordBest(0, 0), "empty sessions never count")
}

func TestStats_CloneIsIndependent(t *testing.T) {
	s := DefaultStats(nil)
	s.RecordBest(1, 2)
	c := s.Clone()
	c.Best.Score = 99
	c.PerCategory["network"] = CategoryStat{}
	c.History = append(c.History, Attempt{ID: "x"})

	assert.Equal(t, 1, s.Best.Score)
	assert.NotEqual(t, CategoryStat{}, s.PerCategory["network"])
	assert.Empty(t, s.History)
}

func TestStats_Recent(t *testing.T) {
	s := DefaultStats(nil)
	for _, id := range []string{"a", "b", "c"} {
		s.History = append(s.History, Attempt{ID: id})
	}
	got := s.Recent(2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestEncodeDecode(t *testing.T) {
	s := DefaultStats(nil)
	s.RecordBest(4, 5)
	data, err := Encode(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"perCategory"`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s.Best, got.Best)
	assert.Equal(t, s.PerCategory, got.PerCategory)
}

func TestDecode_RejectsInconsistentData(t *testing.T) {
	_, err := Decode([]byte(`{"perCategory":{"a":{"correct":5,"total":2}}}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)

	for _, blob := range []string{`{}`, `null`, `{"perCategory":null}`} {
		_, err = Decode([]byte(blob))
		assert.Error(t, err, "blob %s has no per-category stats", blob)
	}

	s, err := Decode([]byte(`{"perCategory":{}}`))
	require.NoError(t, err)
	assert.NotNil(t, s.PerCategory)
	assert.NotNil(t, s.History)
}
