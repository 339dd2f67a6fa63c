package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/signintech/gopdf"

	"github.com/AmeliaCVPS/amelia/internal/encounter"
	"github.com/AmeliaCVPS/amelia/internal/patient"
	"github.com/AmeliaCVPS/amelia/internal/triage"
)

// TelegramClient is the piece of the bot client this service needs.
type TelegramClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Service struct {
	tgClient    TelegramClient
	staffChatID int64
}

func NewService(tg TelegramClient, staffChatID int64) *Service {
	return &Service{
		tgClient:    tg,
		staffChatID: staffChatID,
	}
}

var _ triage.Notifier = (*Service)(nil)

// TriageCompleted pushes an alert to the staff chat. The machine only
// forwards urgent cases here.
func (s *Service) TriageCompleted(ctx context.Context, rec triage.Record) error {
	if s.staffChatID == 0 {
		return nil
	}
	text := fmt.Sprintf(
		"🔴 Triagem URGENTE\n\nSenha: %s\nDor: %d/10\nTemperatura: %.1f°C\nBatimentos: %d bpm\nPressão: %d/%d mmHg\n\nPaciente aguardando no painel.",
		rec.Ticket, rec.PainLevel,
		rec.Vitals.Temperature, rec.Vitals.HeartRate,
		rec.Vitals.Systolic, rec.Vitals.Diastolic,
	)
	return s.tgClient.SendMessage(ctx, s.staffChatID, text)
}

// RecordPDF renders the patient's clinical record (every encounter,
// newest first) as an A4 document.
func (s *Service) RecordPDF(p *patient.Patient, encounters []encounter.Encounter) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// DejaVuSans covers the accented characters in the Portuguese text.
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Prontuário do Paciente — AMÉLIA")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Paciente: %s", p.Name))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("CPF: %s  |  Cartão SUS: %s", p.CPF, p.SUS))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Emitido em: %s", time.Now().Format("02/01/2006 15:04")))
	pdf.Br(25)

	if len(encounters) == 0 {
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Nenhum atendimento registrado.")
	}

	for _, e := range encounters {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, fmt.Sprintf("%s — %s (senha %s)", e.Date.Format("02/01/2006 15:04"), e.Priority, e.Ticket))
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		pdf.Cell(nil, fmt.Sprintf("Sinais vitais: %.1f°C, %d bpm, %d/%d mmHg  |  Dor: %d/10  |  Status: %s",
			e.Temperature, e.HeartRate, e.Systolic, e.Diastolic, e.PainLevel, e.Status))
		pdf.Br(12)

		lines, _ := pdf.SplitText("Sintomas: "+e.Symptoms, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(10)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
