package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/llm"
)

func sampleQuestion() bank.Question {
	return bank.Question{
		ID:          "net-001",
		Category:    "network",
		Difficulty:  bank.DifficultyEasy,
		Text:        "Which port does HTTPS use by default?",
		Choices:     []string{"80", "443", "22", "25"},
		AnswerIndex: 1,
		Explanation: "HTTPS listens on 443.",
	}
}

func waitResult(t *testing.T, e *Explainer) Result {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if res, ok := e.Consume(); ok {
			return res
		}
		select {
		case <-deadline:
			t.Fatal("explanation did not complete in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestExplainer_AsyncRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"HTTPS uses TLS on 443.","why_wrong":"80 is plain HTTP.","key_point":"443 = HTTPS"}`),
	})
	e := NewExplainer(mock, DefaultExplainConfig(), nil)
	require.True(t, e.Available())

	e.Request(t.Context(), ExplainInput{Question: sampleQuestion(), CategoryLabel: "Networking", ChosenIndex: 0})
	res := waitResult(t, e)

	require.NoError(t, res.Err)
	require.NotNil(t, res.Explanation)
	assert.Equal(t, "net-001", res.Explanation.QuestionID)
	assert.Equal(t, "80 is plain HTTP.", res.Explanation.WhyWrong)
	assert.Equal(t, "443 = HTTPS", res.Explanation.KeyPoint)
	assert.False(t, e.Busy())

	_, again := e.Consume()
	assert.False(t, again, "slot is cleared after consumption")

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls()[0]
	require.NotNil(t, req.Schema)
	assert.Equal(t, "answer-explanation", req.Schema.Name)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "Learner chose: 1. 80")
	assert.Contains(t, prompt, "Correct: 2. 443")
}

func TestExplainer_UnansweredPrompt(t *testing.T) {
	msg := buildExplainUserMessage(ExplainInput{Question: sampleQuestion(), ChosenIndex: -1})
	assert.Contains(t, msg, "Learner chose: (no answer)")
}

func TestExplainer_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	e := NewExplainer(mock, DefaultExplainConfig(), nil)

	e.Request(t.Context(), ExplainInput{Question: sampleQuestion(), ChosenIndex: 2})
	res := waitResult(t, e)

	require.Error(t, res.Err)
	assert.Nil(t, res.Explanation)
}

func TestExplainer_NoProvider(t *testing.T) {
	e := NewExplainer(nil, DefaultExplainConfig(), nil)
	assert.False(t, e.Available())

	_, err := e.Explain(context.Background(), ExplainInput{Question: sampleQuestion()})
	require.Error(t, err)
}

func TestExplainer_NothingRequested(t *testing.T) {
	e := NewExplainer(llm.NewMockProvider(), DefaultExplainConfig(), nil)
	_, ok := e.Consume()
	assert.False(t, ok)
	assert.False(t, e.Busy())
}

func draftJSON(items ...string) json.RawMessage {
	return json.RawMessage(`{"questions":[` + strings.Join(items, ",") + `]}`)
}

const (
	goodDraft      = `{"question":"What does DNS resolve?","choices":["Names to addresses","MACs to IPs","Ports to PIDs","Users to groups"],"answer_index":0,"explanation":"DNS maps names to IP addresses."}`
	secondDraft    = `{"question":"Which layer does a router operate at?","choices":["Layer 1","Layer 2","Layer 3","Layer 7"],"answer_index":2,"explanation":"Routers forward by IP."}`
	outOfRange     = `{"question":"Broken index?","choices":["a","b","c","d"],"answer_index":7,"explanation":""}`
	duplicateOpts  = `{"question":"Dup choices?","choices":["a","A","c","d"],"answer_index":0,"explanation":""}`
	repeatExisting = `{"question":"which port does HTTPS use by default?","choices":["1","2","3","4"],"answer_index":0,"explanation":""}`
)

func TestDrafter_AcceptsValidAndRejectsBad(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: draftJSON(goodDraft, outOfRange, duplicateOpts, repeatExisting, secondDraft),
	})
	d := NewDrafter(mock, DefaultDraftConfig(), nil)

	res, err := d.Draft(t.Context(), DraftInput{
		Category:      "network",
		CategoryLabel: "Networking",
		Difficulty:    bank.DifficultyHard,
		Count:         3,
		Existing:      []string{sampleQuestion().Text},
	})
	require.NoError(t, err)

	require.Len(t, res.Questions, 2)
	require.Len(t, res.Rejected, 3)
	for _, q := range res.Questions {
		assert.Equal(t, bank.Category("network"), q.Category)
		assert.Equal(t, bank.DifficultyHard, q.Difficulty)
		assert.True(t, strings.HasPrefix(q.ID, "network-ai-"), q.ID)
		assert.Empty(t, bank.ValidateQuestion(q, map[bank.Category]bool{"network": true}))
	}
	assert.Contains(t, res.Rejected[0], "answer_index")
	assert.Contains(t, res.Rejected[1], "duplicate choices")
	assert.Contains(t, res.Rejected[2], "repeats an existing question")

	req := mock.Calls()[0]
	assert.Equal(t, "question-drafts", req.Schema.Name)
	assert.Equal(t, DefaultDraftConfig().MaxTokens*3, req.MaxTokens)
}

func TestDrafter_StopsAtCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: draftJSON(goodDraft, secondDraft)})
	d := NewDrafter(mock, DefaultDraftConfig(), nil)

	res, err := d.Draft(t.Context(), DraftInput{Category: "network", Count: 1})
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, bank.DifficultyMedium, res.Questions[0].Difficulty)
}

func TestDrafter_RejectsBadInput(t *testing.T) {
	d := NewDrafter(llm.NewMockProvider(), DefaultDraftConfig(), nil)

	_, err := d.Draft(t.Context(), DraftInput{Category: "network", Count: 0})
	require.Error(t, err)
	_, err = d.Draft(t.Context(), DraftInput{Category: "network", Count: MaxDraftCount + 1})
	require.Error(t, err)
	_, err = d.Draft(t.Context(), DraftInput{Count: 2})
	require.Error(t, err)
}

func TestDrafter_MalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	d := NewDrafter(mock, DefaultDraftConfig(), nil)

	_, err := d.Draft(t.Context(), DraftInput{Category: "network", Count: 2})
	require.Error(t, err)
}

func TestTimeoutBoundsSlowProvider(t *testing.T) {
	slow := func() *llm.MockProvider {
		return llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{}`), Delay: time.Minute})
	}

	ecfg := DefaultExplainConfig()
	ecfg.Timeout = 20 * time.Millisecond
	_, err := NewExplainer(slow(), ecfg, nil).Explain(t.Context(), ExplainInput{Question: sampleQuestion(), ChosenIndex: -1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	dcfg := DefaultDraftConfig()
	dcfg.Timeout = 20 * time.Millisecond
	_, err = NewDrafter(slow(), dcfg, nil).Draft(t.Context(), DraftInput{Category: "network", Count: 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
