// Package config loads the kiosk configuration: the YAML config file, the
// slot and group JSON snapshots, and environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the kiosk-wide configuration. Zero values fall back to Default().
type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	CameraIndex  int    `yaml:"camera_index"`
	CameraDevice string `yaml:"camera_device"`

	ScanTimeoutSeconds   int     `yaml:"scan_timeout_seconds"`
	EnrollTimeoutSeconds int     `yaml:"enroll_timeout_seconds"`
	MatchThreshold       float64 `yaml:"match_threshold"`

	SlotsFile     string `yaml:"slots_file"`
	GroupsFile    string `yaml:"groups_file"`
	StoreFile     string `yaml:"store_file"`
	RosterFile    string `yaml:"roster_file"`
	AttendanceDir string `yaml:"attendance_dir"`
	FaceModelsDir string `yaml:"face_models_dir"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Default() Config {
	return Config{
		ListenAddr:           ":5000",
		CameraIndex:          0,
		CameraDevice:         "/dev/video0",
		ScanTimeoutSeconds:   60,
		EnrollTimeoutSeconds: 30,
		MatchThreshold:       0.4,
		SlotsFile:            "slots.json",
		GroupsFile:           "groups.json",
		StoreFile:            "attendance.db",
		AttendanceDir:        "subject_attendance",
		FaceModelsDir:        "models",
		AllowedOrigins:       []string{"http://localhost:3000"},
	}
}

// Load reads the YAML config at path, merged over Default(). A missing file
// is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// AdminPassword comes from the environment, never from the config file.
func AdminPassword() string {
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		return pw
	}
	return "adminpass"
}
