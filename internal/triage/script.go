package triage

import "fmt"

// AnswerKind tags what kind of input a question expects. The machine does
// not validate against it; the scorer knows how to read each answer.
type AnswerKind string

const (
	KindText   AnswerKind = "texto"
	KindTime   AnswerKind = "tempo"
	KindNumber AnswerKind = "numero"
	KindYesNo  AnswerKind = "sim_nao"
)

type Question struct {
	ID   int
	Text string
	Kind AnswerKind
}

// Script is the fixed triage protocol AMÉLIA walks every patient through.
var Script = []Question{
	{
		ID:   1,
		Text: "Olá! Sou a AMÉLIA 🤖💙\n\nVou fazer algumas perguntas para entender melhor como você está se sentindo.\n\nQual é o seu principal sintoma ou queixa hoje?",
		Kind: KindText,
	},
	{
		ID:   2,
		Text: "Há quanto tempo você está sentindo isso?\n(Digite: horas, dias ou semanas)",
		Kind: KindTime,
	},
	{
		ID:   3,
		Text: "Em uma escala de 0 a 10, qual é o seu nível de dor ou desconforto?\n(0 = sem dor, 10 = dor insuportável)",
		Kind: KindNumber,
	},
	{
		ID:   4,
		Text: "Você está com algum destes sintomas?\n\n• Febre alta\n• Dificuldade para respirar\n• Dor no peito\n• Sangramento\n• Vômitos intensos\n• Desmaios\n\n(Responda: sim ou não)",
		Kind: KindYesNo,
	},
}

// PromptAt returns the prompt text for a given step. Callers on the
// finalization path must compare step against len(Script) themselves; this
// only answers for steps that have a question.
func PromptAt(step int) (string, error) {
	if step < 0 || step >= len(Script) {
		return "", fmt.Errorf("no question at step %d", step)
	}
	return Script[step].Text, nil
}
