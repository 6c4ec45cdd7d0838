package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleFor_AdvanceChain(t *testing.T) {
	cases := []struct {
		stage   Stage
		outcome string
		next    Stage
	}{
		{StageFresh, OutcomeInterested, StageFollowUp},
		{StageFollowUp, OutcomeInterestedForDemo, StageDemo},
		{StageDemo, OutcomeInterestedForProposal, StageProposal},
		{StageProposal, OutcomeInterestedForNegotiation, StageNegotiation},
	}

	for _, c := range cases {
		rule, ok := RuleFor(c.stage, c.outcome)
		assert.True(t, ok, "%s deve aceitar %q", c.stage, c.outcome)
		assert.Equal(t, EffectAdvance, rule.Effect)
		assert.Equal(t, c.next, rule.Next)
	}
}

func TestRuleFor_AdvanceLabelsAreStageSpecific(t *testing.T) {
	// "Interested" só vale em fresh; nos estágios seguintes o rótulo de
	// avanço muda junto.
	_, ok := RuleFor(StageFollowUp, OutcomeInterested)
	assert.False(t, ok)

	_, ok = RuleFor(StageFresh, OutcomeInterestedForDemo)
	assert.False(t, ok)

	_, ok = RuleFor(StageDemo, OutcomeInterestedForNegotiation)
	assert.False(t, ok)
}

func TestRuleFor_NegotiationHasNoAdvance(t *testing.T) {
	for _, rule := range funnelRules[StageNegotiation] {
		assert.NotEqual(t, EffectAdvance, rule.Effect)
	}

	rule, ok := RuleFor(StageNegotiation, OutcomeJoinedConverted)
	assert.True(t, ok)
	assert.Equal(t, EffectConvert, rule.Effect)
}

func TestRuleFor_TerminalStagesAcceptNothing(t *testing.T) {
	for _, stage := range []Stage{StageClosure, StageConverted} {
		assert.True(t, stage.Terminal())
		assert.Empty(t, OutcomesFor(stage))
	}
}

func TestRuleFor_SharedOutcomesInEveryActiveStage(t *testing.T) {
	active := []Stage{StageFresh, StageFollowUp, StageDemo, StageProposal, StageNegotiation}
	shared := []string{
		OutcomeRingingNoResponse, OutcomeSwitchOff, OutcomeNumberNotInUse,
		OutcomeLineBusy, OutcomeJoinedConverted, OutcomeNotInterested,
	}

	for _, stage := range active {
		for _, outcome := range shared {
			_, ok := RuleFor(stage, outcome)
			assert.True(t, ok, "%s deve aceitar %q", stage, outcome)
		}
	}
}

func TestRuleFor_LookupIsExactMatch(t *testing.T) {
	_, ok := RuleFor(StageFresh, "interested")
	assert.False(t, ok)

	_, ok = RuleFor(StageFresh, "Joined/Converted")
	assert.False(t, ok)
}

func TestInRingingGroup(t *testing.T) {
	assert.True(t, InRingingGroup(OutcomeRingingNoResponse))
	assert.True(t, InRingingGroup(OutcomeSwitchOff))
	assert.True(t, InRingingGroup(OutcomeNumberNotInUse))
	assert.True(t, InRingingGroup(OutcomeLineBusy))

	assert.False(t, InRingingGroup(OutcomeInterested))
	assert.False(t, InRingingGroup(OutcomeNotInterested))
	assert.False(t, InRingingGroup(OutcomeJoinedConverted))
}
