package handler

import (
	"context"
	"fmt"
	"io"

	"patient-register/internal/delivery/dto"
	"patient-register/internal/domain/entity"
	"patient-register/internal/usecase"
	"patient-register/pkg/response"

	"github.com/spf13/cobra"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// Admissions handles `report admissions --timeframe`
func (h *ReportHandler) Admissions(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	tf, err := timeframeFlag(cmd)
	if err != nil {
		response.Error(w, err.Error())
		return &ReportedError{Err: err}
	}
	return h.print(w, func() (*dto.ReportResponse, error) {
		return h.reportUsecase.AdmissionReport(cmd.Context(), tf)
	})
}

// Discharges handles `report discharges --timeframe`
func (h *ReportHandler) Discharges(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	tf, err := timeframeFlag(cmd)
	if err != nil {
		response.Error(w, err.Error())
		return &ReportedError{Err: err}
	}
	return h.print(w, func() (*dto.ReportResponse, error) {
		return h.reportUsecase.DischargeReport(cmd.Context(), tf)
	})
}

// Rooms handles `report rooms`
func (h *ReportHandler) Rooms(cmd *cobra.Command, args []string) error {
	return h.print(cmd.OutOrStdout(), func() (*dto.ReportResponse, error) {
		return h.reportUsecase.RoomUsageReport(cmd.Context())
	})
}

func (h *ReportHandler) AdmissionsInteractive(ctx context.Context, p *Prompter) error {
	tf, err := promptTimeframe(p)
	if err != nil {
		return err
	}
	_ = h.print(p.Out(), func() (*dto.ReportResponse, error) {
		return h.reportUsecase.AdmissionReport(ctx, tf)
	})
	return nil
}

func (h *ReportHandler) DischargesInteractive(ctx context.Context, p *Prompter) error {
	tf, err := promptTimeframe(p)
	if err != nil {
		return err
	}
	_ = h.print(p.Out(), func() (*dto.ReportResponse, error) {
		return h.reportUsecase.DischargeReport(ctx, tf)
	})
	return nil
}

func (h *ReportHandler) RoomsInteractive(ctx context.Context, p *Prompter) error {
	_ = h.print(p.Out(), func() (*dto.ReportResponse, error) {
		return h.reportUsecase.RoomUsageReport(ctx)
	})
	return nil
}

func (h *ReportHandler) print(w io.Writer, generate func() (*dto.ReportResponse, error)) error {
	resp, err := generate()
	if err != nil {
		return writeError(w, err, "Failed to generate report")
	}

	fmt.Fprint(w, resp.Body)
	if resp.Transcript != "" {
		response.Success(w, fmt.Sprintf("Report saved to %s.", resp.Transcript))
	}
	response.Warnings(w, resp.Warnings)
	return nil
}

func timeframeFlag(cmd *cobra.Command) (entity.Timeframe, error) {
	value, _ := cmd.Flags().GetString("timeframe")
	return entity.ParseTimeframe(value)
}

// promptTimeframe re-prompts until a listed timeframe is chosen
func promptTimeframe(p *Prompter) (entity.Timeframe, error) {
	for _, tf := range entity.Timeframes {
		response.Line(p.Out(), "%d. %s", int(tf), tf)
	}
	for {
		line, err := p.Line("Select timeframe: ")
		if err != nil {
			return 0, err
		}
		tf, err := entity.ParseTimeframe(line)
		if err == nil {
			return tf, nil
		}
		response.Line(p.Out(), "Invalid choice. Enter 1, 2 or 3.")
	}
}
