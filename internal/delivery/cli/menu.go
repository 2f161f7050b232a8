package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"patient-register/internal/delivery/cli/handler"
	"patient-register/pkg/response"
)

type menuItem struct {
	label string
	run   func(ctx context.Context, p *handler.Prompter) error
}

// Menu is the interactive session. It ends on the exit option or when the
// input is exhausted.
type Menu struct {
	items []menuItem
}

func NewMenu(
	patientHandler *handler.PatientHandler,
	reportHandler *handler.ReportHandler,
	auditLogHandler *handler.AuditLogHandler,
) *Menu {
	return &Menu{
		items: []menuItem{
			{"Admit patient", patientHandler.AdmitInteractive},
			{"List patients", patientHandler.ListInteractive},
			{"Search patient by ID", patientHandler.SearchInteractive},
			{"Discharge patient", patientHandler.DischargeInteractive},
			{"Back up patient records", patientHandler.BackupInteractive},
			{"Restore patient records", patientHandler.RestoreInteractive},
			{"Admission report", reportHandler.AdmissionsInteractive},
			{"Discharge report", reportHandler.DischargesInteractive},
			{"Room usage report", reportHandler.RoomsInteractive},
			{"Audit trail", auditLogHandler.GetAllInteractive},
		},
	}
}

func (m *Menu) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	p := handler.NewPrompter(in, out)
	exit := len(m.items) + 1

	for {
		m.print(out, exit)
		line, err := p.Line("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil || choice < 1 || choice > exit:
			response.Line(out, "Invalid choice. Enter a number between 1 and %d.", exit)
			continue
		case choice == exit:
			response.Line(out, "Exiting program.")
			return nil
		}

		if err := m.items[choice-1].run(ctx, p); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (m *Menu) print(out io.Writer, exit int) {
	response.Line(out, "")
	response.Line(out, "--- Hospital Patient Register ---")
	for i, item := range m.items {
		response.Line(out, "%d. %s", i+1, item.label)
	}
	response.Line(out, "%d. Exit", exit)
}
