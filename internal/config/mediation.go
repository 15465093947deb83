package config

import (
	"time"
)

// MediationConfig carries the tunable policy knobs of the dispute
// mediation workflow. Defaults mirror the platform's terms of service.
type MediationConfig struct {
	MinReasoningLength          int           `yaml:"min_reasoning_length"`
	MinCloseReasonLength        int           `yaml:"min_close_reason_length"`
	DefaultResponseDeadlineDays int           `yaml:"default_response_deadline_days"`
	MaxResponseDeadlineDays     int           `yaml:"max_response_deadline_days"`
	ExportEligibilityThreshold  int           `yaml:"export_eligibility_threshold"`
	MaxEvidenceItems            int           `yaml:"max_evidence_items"`
	ExportDocumentURLTTL        time.Duration `yaml:"export_document_url_ttl"`
}

func loadMediationConfig() *MediationConfig {
	return &MediationConfig{
		MinReasoningLength:          getEnvAsInt("MEDIATION_MIN_REASONING_LENGTH", 50),
		MinCloseReasonLength:        getEnvAsInt("MEDIATION_MIN_CLOSE_REASON_LENGTH", 10),
		DefaultResponseDeadlineDays: getEnvAsInt("MEDIATION_DEFAULT_DEADLINE_DAYS", 7),
		MaxResponseDeadlineDays:     getEnvAsInt("MEDIATION_MAX_DEADLINE_DAYS", 30),
		ExportEligibilityThreshold:  getEnvAsInt("MEDIATION_EXPORT_THRESHOLD", 2),
		MaxEvidenceItems:            getEnvAsInt("MEDIATION_MAX_EVIDENCE_ITEMS", 50),
		ExportDocumentURLTTL:        getEnvAsDuration("MEDIATION_EXPORT_URL_TTL", 24*time.Hour),
	}
}
