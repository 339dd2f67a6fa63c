package triage

import "fmt"

// collectingVitalsMsg is returned on the turn right after the last
// question; the patient confirms once more before finalization runs.
const collectingVitalsMsg = "Agora vou verificar seus sinais vitais...\n\n📊 Medindo temperatura...\n💓 Medindo batimentos cardíacos...\n\n(Clique em 'Enviar' para continuar)"

func estimatedWait(priority string) string {
	switch priority {
	case PriorityUrgent:
		return "Atendimento imediato"
	case PriorityHigh:
		return "Aproximadamente 15-30 minutos"
	case PriorityMedium:
		return "Aproximadamente 30-60 minutos"
	case PriorityLow:
		return "Aproximadamente 1-2 horas"
	default:
		return "Aguarde a chamada"
	}
}

func guidance(priority string) string {
	switch priority {
	case PriorityUrgent:
		return "Permaneça próximo ao balcão de atendimento. Em caso de piora, avise imediatamente a equipe."
	case PriorityHigh:
		return "Permaneça na sala de espera. Se sentir piora dos sintomas, avise a recepção."
	default:
		return "Aguarde confortavelmente na sala de espera. Mantenha-se hidratado."
	}
}

// composeSummary renders the closing message of a triage. Pure formatting.
func composeSummary(priority, ticket string, v Vitals, painLevel int, mainComplaint string) string {
	if mainComplaint == "" {
		mainComplaint = "Não informado"
	}

	return fmt.Sprintf(`✅ Triagem concluída com sucesso!

📋 **RESUMO DA TRIAGEM**

%s **Prioridade: %s**
🎫 **Senha de chamada: %s**

📊 **Sinais Vitais:**
• Temperatura: %.1f°C
• Batimentos: %d bpm
• Pressão: %d/%d mmHg
• Nível de dor: %d/10

📝 **Queixa principal:**
%s

⏱️ **Tempo estimado de espera:**
%s

💡 **Orientações:**
%s

Aguarde a chamada da sua senha no painel. Obrigada por usar a AMÉLIA! 💙`,
		Emoji(priority), priority, ticket,
		v.Temperature, v.HeartRate, v.Systolic, v.Diastolic, painLevel,
		mainComplaint,
		estimatedWait(priority),
		guidance(priority),
	)
}
