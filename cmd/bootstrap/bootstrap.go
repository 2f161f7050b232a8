package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"patient-register/config"
	"patient-register/internal/delivery/cli"
	"patient-register/internal/delivery/cli/handler"
	"patient-register/internal/domain/entity"
	"patient-register/internal/infrastructure/filesystem"
	"patient-register/internal/repository"
	"patient-register/internal/service"
	"patient-register/internal/usecase"
	"patient-register/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds all dependencies for the application
type App struct {
	Config  *config.Config
	Fs      afero.Fs
	Store   *service.RecordStore
	Command *cobra.Command
	args    []string
}

// New creates a new App instance with all dependencies initialized.
// args are the command-line arguments without the program name.
func New(args []string) (*App, error) {
	app := &App{args: args}

	// Setup logger with defaults until the configuration is known
	setupLogger(config.LogConfig{Level: "info", Format: "text"})

	// Load configuration
	flags := globalFlags()
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	configFile, _ := flags.GetString("config")
	cfg, err := config.LoadConfig(configFile, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	setupLogger(cfg.Log)
	logrus.Debugf("Configuration loaded successfully (env=%s, durability=%s)", cfg.App.Env, cfg.App.DurabilityMode)

	// Initialize data directory
	fs, err := filesystem.NewDataFs(cfg.Storage)
	if err != nil {
		return nil, err
	}
	app.Fs = fs

	// Initialize all layers
	if err := app.initialize(); err != nil {
		return nil, err
	}

	return app, nil
}

// globalFlags parses only the flags bootstrap needs; everything else is
// left to the command tree.
func globalFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("patient-register", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Usage = func() {}
	flags.String("config", ".env", "env-style config file")
	flags.String("data-dir", ".", "directory holding the register files")
	flags.BoolP("help", "h", false, "")
	return flags
}

// setupLogger configures the logrus logger. Logs go to stderr so they never
// mix with report text on stdout.
func setupLogger(cfg config.LogConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// initialize wires repositories, services, usecases and the command tree
func (app *App) initialize() error {
	cfg := app.Config
	fs := app.Fs

	// Initialize logger
	log := logrus.StandardLogger()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	now := func() time.Time { return time.Now().In(loc) }

	// Initialize validator
	rules := validator.DefaultPatientRules()
	rules.NameMin, rules.NameMax = cfg.Rules.NameMin, cfg.Rules.NameMax
	rules.AgeMin, rules.AgeMax = cfg.Rules.AgeMin, cfg.Rules.AgeMax
	rules.DiagnosisMin, rules.DiagnosisMax = cfg.Rules.DiagnosisMin, cfg.Rules.DiagnosisMax
	rules.RoomMax = cfg.Rules.RoomMax
	customValidator := validator.NewValidator(rules)

	// Initialize repositories
	s := cfg.Storage
	patientRepo := repository.NewPatientRecordRepository(fs, s.PatientsFile, s.PatientsTempFile)
	dischargeRepo := repository.NewDischargeRecordRepository(fs, s.DischargedFile)
	roomUsageRepo := repository.NewRoomUsageRepository(fs, s.RoomUsageFile, rules.RoomMin, rules.RoomMax)
	admissionTranscript := repository.NewReportTranscriptRepository(fs, s.PatientReportFile)
	dischargeTranscript := repository.NewReportTranscriptRepository(fs, s.DischargeReportFile)
	auditLogRepo := repository.NewAuditLogRepository(fs, s.AuditLogFile)

	// Initialize services
	mode := entity.DurabilityLenient
	if cfg.IsStrict() {
		mode = entity.DurabilityStrict
	}
	store := service.NewRecordStore(log, patientRepo, dischargeRepo, roomUsageRepo, mode, now)
	if _, err := store.Load(context.Background()); err != nil {
		return fmt.Errorf("failed to load patient records: %w", err)
	}
	app.Store = store
	auditService := service.NewAuditService(log, auditLogRepo, now)

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(log, customValidator, store, auditService, s.PatientsFile)
	reportUsecase := usecase.NewReportUsecase(log, store, dischargeRepo, roomUsageRepo, admissionTranscript, dischargeTranscript, rules.RoomMax)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize router
	router := cli.NewRouter(patientHandler, reportHandler, auditLogHandler)
	app.Command = router.Setup()

	return nil
}

// Run executes the requested command and returns the process exit code
func (app *App) Run() int {
	app.Command.SetArgs(app.args)
	if err := app.Command.ExecuteContext(context.Background()); err != nil {
		var reported *handler.ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(app.Command.ErrOrStderr(), "Error: %v\n", err)
		}
		logrus.Debugf("Command failed: %v", err)
		return 1
	}
	return 0
}
