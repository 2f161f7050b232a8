package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"patient-register/internal/delivery/dto"
	"patient-register/internal/usecase"
	"patient-register/pkg/response"
	"patient-register/pkg/validator"

	"github.com/spf13/cobra"
)

const timestampLayout = "2006-01-02 15:04:05"

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Admit handles `admit --name --age --diagnosis --room`
func (h *PatientHandler) Admit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	req := dto.AdmitPatientRequest{}
	req.Name, _ = flags.GetString("name")
	req.AgeInYears, _ = flags.GetInt("age")
	req.Diagnosis, _ = flags.GetString("diagnosis")
	req.RoomNumber, _ = flags.GetInt("room")

	return h.admit(cmd.Context(), cmd.OutOrStdout(), &req)
}

// AdmitInteractive asks for each field until it is valid, then admits
func (h *PatientHandler) AdmitInteractive(ctx context.Context, p *Prompter) error {
	v := h.validator
	name, err := p.Text("Enter patient name: ", func(s string) bool {
		return v.ValidName(validator.NormalizeText(s))
	}, v.NameMessage())
	if err != nil {
		return err
	}
	age, err := p.IntIn("Enter patient age: ", v.ValidAge, v.AgeMessage())
	if err != nil {
		return err
	}
	diagnosis, err := p.Text("Enter diagnosis: ", func(s string) bool {
		return v.ValidDiagnosis(validator.NormalizeText(s))
	}, v.DiagnosisMessage())
	if err != nil {
		return err
	}

	var room int
	for {
		room, err = p.IntIn("Enter room number: ", v.ValidRoom, v.RoomMessage())
		if err != nil {
			return err
		}
		if !h.patientUsecase.IsRoomOccupied(ctx, room) {
			break
		}
		fmt.Fprintf(p.Out(), "Room %d is already occupied. Please choose another room.\n", room)
	}

	// admission failures are already reported to the operator
	_ = h.admit(ctx, p.Out(), &dto.AdmitPatientRequest{
		Name:       name,
		AgeInYears: age,
		Diagnosis:  diagnosis,
		RoomNumber: room,
	})
	return nil
}

func (h *PatientHandler) admit(ctx context.Context, w io.Writer, req *dto.AdmitPatientRequest) error {
	resp, err := h.patientUsecase.AdmitPatient(ctx, req)
	if err != nil {
		return writeError(w, err, "Failed to admit patient")
	}

	response.Success(w, fmt.Sprintf("Patient admitted successfully with ID %d.", resp.Patient.ID))
	response.Warnings(w, resp.Warnings)
	return nil
}

// List handles `list`
func (h *PatientHandler) List(cmd *cobra.Command, args []string) error {
	return h.list(cmd.Context(), cmd.OutOrStdout())
}

func (h *PatientHandler) ListInteractive(ctx context.Context, p *Prompter) error {
	_ = h.list(ctx, p.Out())
	return nil
}

func (h *PatientHandler) list(ctx context.Context, w io.Writer) error {
	resp, err := h.patientUsecase.GetAllPatients(ctx)
	if err != nil {
		return writeError(w, err, "Failed to list patients")
	}

	if resp.Total == 0 {
		response.Success(w, "No patients currently admitted.")
		return nil
	}

	response.Line(w, "--- Admitted Patients (%d) ---", resp.Total)
	for _, patient := range resp.Patients {
		writePatient(w, patient)
	}
	return nil
}

// Show handles `show <id>`
func (h *PatientHandler) Show(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	id, err := parseID(w, args[0])
	if err != nil {
		return err
	}
	return h.show(cmd.Context(), w, id)
}

func (h *PatientHandler) SearchInteractive(ctx context.Context, p *Prompter) error {
	id, err := p.Int("Enter patient ID to search: ")
	if err != nil {
		return err
	}
	_ = h.show(ctx, p.Out(), id)
	return nil
}

func (h *PatientHandler) show(ctx context.Context, w io.Writer, id int) error {
	patient, err := h.patientUsecase.GetPatient(ctx, id)
	if err != nil {
		return writeError(w, err, "Failed to look up patient")
	}
	writePatient(w, *patient)
	return nil
}

// Discharge handles `discharge <id> [--yes]`
func (h *PatientHandler) Discharge(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	id, err := parseID(w, args[0])
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		p := NewPrompter(cmd.InOrStdin(), w)
		confirmed, err := h.confirmDischarge(cmd.Context(), p, id)
		if errors.Is(err, io.EOF) {
			response.Line(w, "")
			response.Success(w, "Discharge cancelled. Pass --yes to discharge without a prompt.")
			return nil
		}
		if err != nil || !confirmed {
			return err
		}
	}
	return h.discharge(cmd.Context(), w, id)
}

func (h *PatientHandler) DischargeInteractive(ctx context.Context, p *Prompter) error {
	id, err := p.Int("Enter patient ID to discharge: ")
	if err != nil {
		return err
	}
	confirmed, err := h.confirmDischarge(ctx, p, id)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	if confirmed {
		_ = h.discharge(ctx, p.Out(), id)
	}
	return nil
}

// confirmDischarge shows the patient and asks the operator to confirm.
// An unknown ID is reported and returned as an error.
func (h *PatientHandler) confirmDischarge(ctx context.Context, p *Prompter, id int) (bool, error) {
	patient, err := h.patientUsecase.GetPatient(ctx, id)
	if err != nil {
		return false, writeError(p.Out(), err, "Failed to look up patient")
	}

	confirmed, err := p.Confirm(fmt.Sprintf("Discharge patient %d (%s)?", patient.ID, patient.Name))
	if err != nil {
		return false, err
	}
	if !confirmed {
		response.Success(p.Out(), "Discharge cancelled.")
	}
	return confirmed, nil
}

func (h *PatientHandler) discharge(ctx context.Context, w io.Writer, id int) error {
	resp, err := h.patientUsecase.DischargePatient(ctx, id)
	if err != nil {
		return writeError(w, err, "Failed to discharge patient")
	}

	response.Success(w, fmt.Sprintf("Patient %d (%s) discharged from room %d.", resp.Patient.ID, resp.Patient.Name, resp.Patient.RoomNumber))
	response.Warnings(w, resp.Warnings)
	return nil
}

// Backup handles `backup`
func (h *PatientHandler) Backup(cmd *cobra.Command, args []string) error {
	return h.backup(cmd.Context(), cmd.OutOrStdout())
}

func (h *PatientHandler) BackupInteractive(ctx context.Context, p *Prompter) error {
	_ = h.backup(ctx, p.Out())
	return nil
}

func (h *PatientHandler) backup(ctx context.Context, w io.Writer) error {
	resp, err := h.patientUsecase.BackupRecords(ctx)
	if err != nil {
		return writeError(w, err, "Failed to back up patient records")
	}
	response.Success(w, fmt.Sprintf("Backed up %d patient records to %s.", resp.Records, resp.File))
	return nil
}

// Restore handles `restore`
func (h *PatientHandler) Restore(cmd *cobra.Command, args []string) error {
	return h.restore(cmd.Context(), cmd.OutOrStdout())
}

func (h *PatientHandler) RestoreInteractive(ctx context.Context, p *Prompter) error {
	_ = h.restore(ctx, p.Out())
	return nil
}

func (h *PatientHandler) restore(ctx context.Context, w io.Writer) error {
	resp, err := h.patientUsecase.RestoreRecords(ctx)
	if err != nil {
		return writeError(w, err, "Failed to restore patient records")
	}
	response.Success(w, fmt.Sprintf("Restored %d patient records. Next patient ID is %d.", resp.Records, resp.NextID))
	response.Warnings(w, resp.Warnings)
	return nil
}

func writePatient(w io.Writer, p dto.PatientResponse) {
	response.Line(w, "ID: %d | Name: %s | Age: %d | Diagnosis: %s | Room: %d | Admitted: %s",
		p.ID, p.Name, p.AgeInYears, p.Diagnosis, p.RoomNumber, p.AdmittedAt.Format(timestampLayout))
}

func parseID(w io.Writer, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		response.Error(w, fmt.Sprintf("Invalid patient ID %q", arg))
		return 0, &ReportedError{Err: fmt.Errorf("parse patient id: %w", err)}
	}
	return id, nil
}
