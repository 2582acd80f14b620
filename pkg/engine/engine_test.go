package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/reactor/pkg/dispatch"
	"github.com/arthur-debert/reactor/pkg/engine"
	"github.com/arthur-debert/reactor/pkg/errors"
	_ "github.com/arthur-debert/reactor/pkg/matchers"
	"github.com/arthur-debert/reactor/pkg/resolver"
	"github.com/arthur-debert/reactor/pkg/rules"
	"github.com/arthur-debert/reactor/pkg/state"
	"github.com/arthur-debert/reactor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures dispatched messages in order.
type recordingSink struct {
	mu       sync.Mutex
	messages []types.Message
	fail     func(msg types.Message) error
}

func (s *recordingSink) Dispatch(_ context.Context, msg types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		if err := s.fail(msg); err != nil {
			return err
		}
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *recordingSink) dispatched() []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func newEngine(sink dispatch.Sink) *engine.Engine {
	return engine.New(resolver.NewExprResolver(), sink, state.New())
}

func TestOnEvent_PrefixRuleDispatchesOnce(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	n := e.RegisterRules([]types.RuleConfig{{
		PatternKind: types.KindStartsWith,
		Pattern:     "minion/",
		Actions:     []types.Message{{Hook: "echo", Args: []interface{}{"hello"}}},
	}})
	require.Equal(t, 1, n)

	e.OnEvent(context.Background(), types.NewEvent("minion/refresh", nil))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 1)
	assert.Equal(t, types.Message{Hook: "echo", Args: []interface{}{"hello"}}, dispatched[0])
}

func TestOnEvent_NoConditionAlwaysFires(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		EndsWith: "/done",
		Actions:  []types.Message{{Hook: "echo"}},
	}})

	for _, tag := range []string{"a/done", "b/done", "c/done"} {
		e.OnEvent(context.Background(), types.NewEvent(tag, nil))
	}

	assert.Len(t, sink.dispatched(), 3)
}

func TestOnEvent_ConditionFalseSkipsActions(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Condition:  `event.severity == 'high'`,
		Actions:    []types.Message{{Hook: "echo"}},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/alert", map[string]interface{}{
		"severity": "low",
	}))

	assert.Empty(t, sink.dispatched())
}

func TestOnEvent_ConditionTrueFiresActions(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Condition:  `event.severity == 'high'`,
		Actions:    []types.Message{{Hook: "echo"}},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/alert", map[string]interface{}{
		"severity": "high",
	}))

	assert.Len(t, sink.dispatched(), 1)
}

func TestOnEvent_ConditionErrorBehavesLikeFalse(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Condition:  `event.severity ==`,
		Actions:    []types.Message{{Hook: "echo"}},
	}})

	// Must not panic and must not dispatch
	e.OnEvent(context.Background(), types.NewEvent("minion/alert", nil))

	assert.Empty(t, sink.dispatched())
}

func TestOnEvent_UnresolvedRuleDispatchesTemplateVerbatim(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	template := types.Message{
		Hook:   "echo",
		Args:   []interface{}{"${ event.severity }"},
		Kwargs: map[string]interface{}{"static": true},
	}
	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Actions:    []types.Message{template},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/alert", map[string]interface{}{
		"severity": "high",
	}))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 1)
	// keyword_resolve defaults to false: placeholders pass through untouched
	assert.Equal(t, template, dispatched[0])
}

func TestOnEvent_ResolvedRuleNeverMutatesStoredTemplate(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith:     "minion/",
		KeywordResolve: true,
		Actions: []types.Message{{
			Hook: "echo",
			Args: []interface{}{"severity is ${ event.severity }"},
		}},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/a", map[string]interface{}{"severity": "high"}))
	e.OnEvent(context.Background(), types.NewEvent("minion/b", map[string]interface{}{"severity": "low"}))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 2)
	// Each firing starts from the pristine template
	assert.Equal(t, "severity is high", dispatched[0].Args[0])
	assert.Equal(t, "severity is low", dispatched[1].Args[0])
}

func TestOnEvent_RegexCapturesReachTemplates(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		Regex:          `minion/(?P<minion>[^/]+)/job/(?P<jid>\d+)`,
		KeywordResolve: true,
		Actions: []types.Message{{
			Hook:   "echo",
			Kwargs: map[string]interface{}{"minion": "${ match.minion }", "jid": "${ match.jid }"},
		}},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/web-01/job/42", nil))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 1)
	assert.Equal(t, "web-01", dispatched[0].Kwargs["minion"])
	assert.Equal(t, "42", dispatched[0].Kwargs["jid"])
}

func TestRegisterRules_EachBindingOwnsItsRule(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	// Five rules registered in one loop, each with a distinct prefix
	// and a distinguishing action. Firing rule #3's pattern must run
	// rule #3's actions, not the last rule registered.
	cfgs := make([]types.RuleConfig, 5)
	for i := range cfgs {
		prefix := string(rune('a'+i)) + "/"
		cfgs[i] = types.RuleConfig{
			StartsWith: prefix,
			Actions:    []types.Message{{Hook: "echo", Args: []interface{}{prefix}}},
		}
	}
	require.Equal(t, 5, e.RegisterRules(cfgs))

	e.OnEvent(context.Background(), types.NewEvent("c/fire", nil))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 1)
	assert.Equal(t, []interface{}{"c/"}, dispatched[0].Args)
}

func TestRegisterRules_BadRuleDoesNotBlockOthers(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	n := e.RegisterRules([]types.RuleConfig{
		{StartsWith: "a/", Actions: []types.Message{{Hook: "echo", Args: []interface{}{"a"}}}},
		{PatternKind: "contains", Pattern: "x", Actions: []types.Message{{Hook: "echo"}}},
		{StartsWith: "b/", Actions: []types.Message{{Hook: "echo", Args: []interface{}{"b"}}}},
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"startswith:a/", "startswith:b/"}, e.Rules())

	e.OnEvent(context.Background(), types.NewEvent("a/x", nil))
	e.OnEvent(context.Background(), types.NewEvent("b/x", nil))
	assert.Len(t, sink.dispatched(), 2)
}

func TestOnEvent_ActionsDispatchInDeclaredOrder(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Actions: []types.Message{
			{Hook: "echo", Args: []interface{}{"first"}},
			{Hook: "echo", Args: []interface{}{"second"}},
			{Hook: "echo", Args: []interface{}{"third"}},
		},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/x", nil))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 3)
	assert.Equal(t, []interface{}{"first"}, dispatched[0].Args)
	assert.Equal(t, []interface{}{"second"}, dispatched[1].Args)
	assert.Equal(t, []interface{}{"third"}, dispatched[2].Args)
}

func TestOnEvent_DispatchFailureDoesNotBlockSiblingActions(t *testing.T) {
	sink := &recordingSink{
		fail: func(msg types.Message) error {
			if len(msg.Args) > 0 && msg.Args[0] == "first" {
				return errors.New(errors.ErrDispatch, "sink rejected message")
			}
			return nil
		},
	}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Actions: []types.Message{
			{Hook: "echo", Args: []interface{}{"first"}},
			{Hook: "echo", Args: []interface{}{"second"}},
		},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/x", nil))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 1)
	assert.Equal(t, []interface{}{"second"}, dispatched[0].Args)
}

func TestOnEvent_ResolutionFailureSkipsOnlyThatAction(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith:     "minion/",
		KeywordResolve: true,
		Actions: []types.Message{
			{Hook: "echo", Args: []interface{}{"${ ) }"}},
			{Hook: "echo", Args: []interface{}{"fine"}},
		},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/x", nil))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 1)
	assert.Equal(t, []interface{}{"fine"}, dispatched[0].Args)
}

func TestOnEvent_PanickingCallbackDoesNotBlockOtherRules(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	m, err := rules.CompileMatcher(types.KindStartsWith, "minion/")
	require.NoError(t, err)

	e.Register("panicky", m, func(ctx context.Context, evt types.Event, match types.MatchResult) {
		panic("boom")
	})
	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Actions:    []types.Message{{Hook: "echo"}},
	}})

	e.OnEvent(context.Background(), types.NewEvent("minion/x", nil))

	assert.Len(t, sink.dispatched(), 1)
}

func TestOnEvent_MultipleRulesMatchSameEvent(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{
		{StartsWith: "minion/", Actions: []types.Message{{Hook: "echo", Args: []interface{}{"prefix"}}}},
		{EndsWith: "/refresh", Actions: []types.Message{{Hook: "echo", Args: []interface{}{"suffix"}}}},
		{Fnmatch: "minion/*", Actions: []types.Message{{Hook: "echo", Args: []interface{}{"glob"}}}},
	})

	e.OnEvent(context.Background(), types.NewEvent("minion/refresh", nil))

	dispatched := sink.dispatched()
	require.Len(t, dispatched, 3)
}

func TestRun_ConsumesUntilChannelCloses(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(sink)

	e.RegisterRules([]types.RuleConfig{{
		StartsWith: "minion/",
		Actions:    []types.Message{{Hook: "echo"}},
	}})

	events := make(chan types.Event)
	done := make(chan error, 1)
	go func() {
		done <- e.Run(context.Background(), events, 4)
	}()

	for i := 0; i < 10; i++ {
		events <- types.NewEvent("minion/x", nil)
	}
	close(events)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after channel close")
	}

	assert.Len(t, sink.dispatched(), 10)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	e := newEngine(&recordingSink{})

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan types.Event)
	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx, events, 2)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
