package entity

// Rótulos de disposição. As strings fazem parte do contrato com o front:
// o lookup na tabela é por igualdade exata, pontuação inclusa
// ("Joined / Converted" tem espaços em volta da barra).
const (
	OutcomeInterested               = "Interested"
	OutcomeInterestedForDemo        = "Interested for Demo"
	OutcomeInterestedForProposal    = "Interested for Proposal"
	OutcomeInterestedForNegotiation = "Interested for Negotiation"

	OutcomeRingingNoResponse = "Ringing Number But No Response"
	OutcomeSwitchOff         = "SwitchOff"
	OutcomeNumberNotInUse    = "Number Not in Use"
	OutcomeLineBusy          = "Line Busy"

	OutcomeJoinedConverted = "Joined / Converted"
	OutcomeNotInterested   = "Not Interested"
)

// RingingGroupKey é a chave do agregado do bucket não-produtivo, exposta
// no endpoint de contagens e usada pelo gatilho de auto-fechamento.
const RingingGroupKey = "ringing_group"

var ringingGroup = map[string]bool{
	OutcomeRingingNoResponse: true,
	OutcomeSwitchOff:         true,
	OutcomeNumberNotInUse:    true,
	OutcomeLineBusy:          true,
}

// InRingingGroup diz se o rótulo pertence ao bucket de não-avanço.
func InRingingGroup(outcome string) bool {
	return ringingGroup[outcome]
}

type Effect int

const (
	// EffectAdvance move o lead para Rule.Next e exige data agendada.
	EffectAdvance Effect = iota
	// EffectStay não muda o estágio; conta no bucket de repetição.
	EffectStay
	// EffectConvert encerra o lead como converted.
	EffectConvert
	// EffectClose encerra o lead como closure.
	EffectClose
)

type Rule struct {
	Effect Effect
	Next   Stage // só para EffectAdvance
}

// Tabela única de regras: estágio → rótulos legais → efeito.
// Centralizada aqui para não repetir listas de strings em cada handler.
var funnelRules = map[Stage]map[string]Rule{
	StageFresh: {
		OutcomeInterested:        {Effect: EffectAdvance, Next: StageFollowUp},
		OutcomeRingingNoResponse: {Effect: EffectStay},
		OutcomeSwitchOff:         {Effect: EffectStay},
		OutcomeNumberNotInUse:    {Effect: EffectStay},
		OutcomeLineBusy:          {Effect: EffectStay},
		OutcomeJoinedConverted:   {Effect: EffectConvert},
		OutcomeNotInterested:     {Effect: EffectClose},
	},
	StageFollowUp: {
		OutcomeInterestedForDemo: {Effect: EffectAdvance, Next: StageDemo},
		OutcomeRingingNoResponse: {Effect: EffectStay},
		OutcomeSwitchOff:         {Effect: EffectStay},
		OutcomeNumberNotInUse:    {Effect: EffectStay},
		OutcomeLineBusy:          {Effect: EffectStay},
		OutcomeJoinedConverted:   {Effect: EffectConvert},
		OutcomeNotInterested:     {Effect: EffectClose},
	},
	StageDemo: {
		OutcomeInterestedForProposal: {Effect: EffectAdvance, Next: StageProposal},
		OutcomeRingingNoResponse:     {Effect: EffectStay},
		OutcomeSwitchOff:             {Effect: EffectStay},
		OutcomeNumberNotInUse:        {Effect: EffectStay},
		OutcomeLineBusy:              {Effect: EffectStay},
		OutcomeJoinedConverted:       {Effect: EffectConvert},
		OutcomeNotInterested:         {Effect: EffectClose},
	},
	StageProposal: {
		OutcomeInterestedForNegotiation: {Effect: EffectAdvance, Next: StageNegotiation},
		OutcomeRingingNoResponse:        {Effect: EffectStay},
		OutcomeSwitchOff:                {Effect: EffectStay},
		OutcomeNumberNotInUse:           {Effect: EffectStay},
		OutcomeLineBusy:                 {Effect: EffectStay},
		OutcomeJoinedConverted:          {Effect: EffectConvert},
		OutcomeNotInterested:            {Effect: EffectClose},
	},
	// negotiation não tem avanço "interested": ou fecha, ou converte.
	StageNegotiation: {
		OutcomeRingingNoResponse: {Effect: EffectStay},
		OutcomeSwitchOff:         {Effect: EffectStay},
		OutcomeNumberNotInUse:    {Effect: EffectStay},
		OutcomeLineBusy:          {Effect: EffectStay},
		OutcomeJoinedConverted:   {Effect: EffectConvert},
		OutcomeNotInterested:     {Effect: EffectClose},
	},
	StageClosure:   {},
	StageConverted: {},
}

// RuleFor resolve a regra de uma disposição no estágio atual do lead.
func RuleFor(stage Stage, outcome string) (Rule, bool) {
	rules, ok := funnelRules[stage]
	if !ok {
		return Rule{}, false
	}
	r, ok := rules[outcome]
	return r, ok
}

// OutcomesFor lista os rótulos legais de um estágio (para o dropdown do front).
func OutcomesFor(stage Stage) []string {
	rules := funnelRules[stage]
	out := make([]string, 0, len(rules))
	for label := range rules {
		out = append(out, label)
	}
	return out
}
