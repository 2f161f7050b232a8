package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// MaxTextRunes is the largest name or diagnosis length the record file layout can hold.
const MaxTextRunes = 100

type Config struct {
	App     AppConfig
	Log     LogConfig
	Storage StorageConfig
	Rules   RulesConfig
}

type AppConfig struct {
	Env            string `mapstructure:"APP_ENV"`
	DurabilityMode string `mapstructure:"DURABILITY_MODE"`
	Timezone       string `mapstructure:"TIMEZONE"`
}

type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type StorageConfig struct {
	DataDir             string `mapstructure:"DATA_DIR"`
	PatientsFile        string `mapstructure:"PATIENTS_FILE"`
	PatientsTempFile    string `mapstructure:"PATIENTS_TEMP_FILE"`
	DischargedFile      string `mapstructure:"DISCHARGED_FILE"`
	RoomUsageFile       string `mapstructure:"ROOM_USAGE_FILE"`
	PatientReportFile   string `mapstructure:"PATIENT_REPORT_FILE"`
	DischargeReportFile string `mapstructure:"DISCHARGE_REPORT_FILE"`
	AuditLogFile        string `mapstructure:"AUDIT_LOG_FILE"`
}

type RulesConfig struct {
	NameMin      int `mapstructure:"NAME_MIN"`
	NameMax      int `mapstructure:"NAME_MAX"`
	AgeMin       int `mapstructure:"AGE_MIN"`
	AgeMax       int `mapstructure:"AGE_MAX"`
	DiagnosisMin int `mapstructure:"DIAGNOSIS_MIN"`
	DiagnosisMax int `mapstructure:"DIAGNOSIS_MAX"`
	RoomMax      int `mapstructure:"ROOM_MAX"`
}

var defaults = map[string]interface{}{
	"APP_ENV":               "development",
	"DURABILITY_MODE":       "lenient",
	"TIMEZONE":              "Local",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "text",
	"DATA_DIR":              ".",
	"PATIENTS_FILE":         "patients.dat",
	"PATIENTS_TEMP_FILE":    "patients.tmp",
	"DISCHARGED_FILE":       "discharged_patients.dat",
	"ROOM_USAGE_FILE":       "room_usage.txt",
	"PATIENT_REPORT_FILE":   "patient_reports.txt",
	"DISCHARGE_REPORT_FILE": "discharged_reports.txt",
	"AUDIT_LOG_FILE":        "audit_log.jsonl",
	"NAME_MIN":              2,
	"NAME_MAX":              100,
	"AGE_MIN":               0,
	"AGE_MAX":               149,
	"DIAGNOSIS_MIN":         2,
	"DIAGNOSIS_MAX":         100,
	"ROOM_MAX":              50,
}

// LoadConfig reads configuration from defaults, an optional env-style file,
// the environment, and finally the data-dir flag when it was set.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine, everything has a default.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", configFile, err)
			}
		}
	}

	if flags != nil {
		if flag := flags.Lookup("data-dir"); flag != nil && flag.Changed {
			if err := v.BindPFlag("DATA_DIR", flag); err != nil {
				return nil, fmt.Errorf("bind data-dir flag: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(&cfg.App); err != nil {
		return nil, fmt.Errorf("unmarshal app config: %w", err)
	}
	if err := v.Unmarshal(&cfg.Log); err != nil {
		return nil, fmt.Errorf("unmarshal log config: %w", err)
	}
	if err := v.Unmarshal(&cfg.Storage); err != nil {
		return nil, fmt.Errorf("unmarshal storage config: %w", err)
	}
	if err := v.Unmarshal(&cfg.Rules); err != nil {
		return nil, fmt.Errorf("unmarshal rules config: %w", err)
	}

	cfg.App.DurabilityMode = strings.ToLower(strings.TrimSpace(cfg.App.DurabilityMode))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the record store cannot honour.
func (c *Config) Validate() error {
	switch c.App.DurabilityMode {
	case "lenient", "strict":
	default:
		return fmt.Errorf("DURABILITY_MODE must be \"lenient\" or \"strict\", got %q", c.App.DurabilityMode)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a known location: %w", c.App.Timezone, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", c.Log.Format)
	}

	r := c.Rules
	if r.NameMin < 1 || r.NameMin > r.NameMax {
		return fmt.Errorf("NAME_MIN/NAME_MAX out of order: %d..%d", r.NameMin, r.NameMax)
	}
	if r.NameMax > MaxTextRunes {
		return fmt.Errorf("NAME_MAX must not exceed %d, got %d", MaxTextRunes, r.NameMax)
	}
	if r.AgeMin < 0 || r.AgeMin > r.AgeMax {
		return fmt.Errorf("AGE_MIN/AGE_MAX out of order: %d..%d", r.AgeMin, r.AgeMax)
	}
	if r.DiagnosisMin < 1 || r.DiagnosisMin > r.DiagnosisMax {
		return fmt.Errorf("DIAGNOSIS_MIN/DIAGNOSIS_MAX out of order: %d..%d", r.DiagnosisMin, r.DiagnosisMax)
	}
	if r.DiagnosisMax > MaxTextRunes {
		return fmt.Errorf("DIAGNOSIS_MAX must not exceed %d, got %d", MaxTextRunes, r.DiagnosisMax)
	}
	if r.RoomMax < 1 {
		return fmt.Errorf("ROOM_MAX must be at least 1, got %d", r.RoomMax)
	}

	s := c.Storage
	if s.DataDir == "" {
		return errors.New("DATA_DIR is required")
	}
	if s.PatientsFile == s.PatientsTempFile {
		return errors.New("PATIENTS_FILE and PATIENTS_TEMP_FILE must differ")
	}
	return nil
}

// Location resolves the configured time zone used for calendar reports.
func (c *Config) Location() (*time.Location, error) {
	switch c.App.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.App.Timezone)
	}
}

// IsStrict reports whether persistence failures must abort mutations.
func (c *Config) IsStrict() bool {
	return c.App.DurabilityMode == "strict"
}
