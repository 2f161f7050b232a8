package cli

import (
	"patient-register/internal/delivery/cli/handler"

	"github.com/spf13/cobra"
)

type Router struct {
	patientHandler  *handler.PatientHandler
	reportHandler   *handler.ReportHandler
	auditLogHandler *handler.AuditLogHandler
	menu            *Menu
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	reportHandler *handler.ReportHandler,
	auditLogHandler *handler.AuditLogHandler,
) *Router {
	return &Router{
		patientHandler:  patientHandler,
		reportHandler:   reportHandler,
		auditLogHandler: auditLogHandler,
		menu:            NewMenu(patientHandler, reportHandler, auditLogHandler),
	}
}

// Setup builds the command tree. Running the root without a subcommand
// starts the interactive menu.
func (r *Router) Setup() *cobra.Command {
	root := &cobra.Command{
		Use:           "patient-register",
		Short:         "Single-user hospital patient register",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          r.runMenu,
	}
	// parsed during bootstrap, declared here for help output
	root.PersistentFlags().String("config", ".env", "env-style config file")
	root.PersistentFlags().String("data-dir", ".", "directory holding the register files")

	root.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE:  r.runMenu,
	})

	// Patients
	admit := &cobra.Command{
		Use:   "admit",
		Short: "Admit a patient",
		Args:  cobra.NoArgs,
		RunE:  r.patientHandler.Admit,
	}
	admit.Flags().String("name", "", "patient name")
	admit.Flags().Int("age", -1, "age in years")
	admit.Flags().String("diagnosis", "", "diagnosis")
	admit.Flags().Int("room", 0, "room number")
	for _, name := range []string{"name", "age", "diagnosis", "room"} {
		_ = admit.MarkFlagRequired(name)
	}

	discharge := &cobra.Command{
		Use:   "discharge <id>",
		Short: "Discharge a patient",
		Args:  cobra.ExactArgs(1),
		RunE:  r.patientHandler.Discharge,
	}
	discharge.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	root.AddCommand(
		admit,
		&cobra.Command{Use: "list", Short: "List admitted patients", Args: cobra.NoArgs, RunE: r.patientHandler.List},
		&cobra.Command{Use: "show <id>", Short: "Show one patient", Args: cobra.ExactArgs(1), RunE: r.patientHandler.Show},
		discharge,
		&cobra.Command{Use: "backup", Short: "Rewrite the patient file from memory", Args: cobra.NoArgs, RunE: r.patientHandler.Backup},
		&cobra.Command{Use: "restore", Short: "Reload patients from the patient file", Args: cobra.NoArgs, RunE: r.patientHandler.Restore},
	)

	// Reports
	report := &cobra.Command{
		Use:   "report",
		Short: "Print a report",
	}
	admissions := &cobra.Command{
		Use:   "admissions",
		Short: "Patients admitted within a timeframe",
		Args:  cobra.NoArgs,
		RunE:  r.reportHandler.Admissions,
	}
	admissions.Flags().StringP("timeframe", "t", "daily", "daily, weekly or monthly")
	discharges := &cobra.Command{
		Use:   "discharges",
		Short: "Patients discharged within a timeframe",
		Args:  cobra.NoArgs,
		RunE:  r.reportHandler.Discharges,
	}
	discharges.Flags().StringP("timeframe", "t", "daily", "daily, weekly or monthly")
	report.AddCommand(
		admissions,
		discharges,
		&cobra.Command{Use: "rooms", Short: "Discharges logged per room", Args: cobra.NoArgs, RunE: r.reportHandler.Rooms},
	)
	root.AddCommand(report)

	// Audit
	root.AddCommand(&cobra.Command{
		Use:   "audit",
		Short: "Print the audit trail",
		Args:  cobra.NoArgs,
		RunE:  r.auditLogHandler.GetAll,
	})

	return root
}

func (r *Router) runMenu(cmd *cobra.Command, args []string) error {
	return r.menu.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
