package validator

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PatientRules holds the inclusive bounds for admission fields
type PatientRules struct {
	NameMin      int
	NameMax      int
	AgeMin       int
	AgeMax       int
	DiagnosisMin int
	DiagnosisMax int
	RoomMin      int
	RoomMax      int
}

func DefaultPatientRules() PatientRules {
	return PatientRules{
		NameMin:      2,
		NameMax:      100,
		AgeMin:       0,
		AgeMax:       149,
		DiagnosisMin: 2,
		DiagnosisMax: 100,
		RoomMin:      1,
		RoomMax:      50,
	}
}

// NormalizeText trims surrounding space and composes the text to NFC so
// that length checks count what the operator sees.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func (cv *CustomValidator) ValidName(name string) bool {
	return cv.validator.Var(name, fmt.Sprintf("storable,min=%d,max=%d", cv.rules.NameMin, cv.rules.NameMax)) == nil
}

func (cv *CustomValidator) ValidAge(age int) bool {
	return cv.validator.Var(age, fmt.Sprintf("gte=%d,lte=%d", cv.rules.AgeMin, cv.rules.AgeMax)) == nil
}

func (cv *CustomValidator) ValidDiagnosis(diagnosis string) bool {
	return cv.validator.Var(diagnosis, fmt.Sprintf("storable,min=%d,max=%d", cv.rules.DiagnosisMin, cv.rules.DiagnosisMax)) == nil
}

func (cv *CustomValidator) ValidRoom(room int) bool {
	return cv.validator.Var(room, fmt.Sprintf("gte=%d,lte=%d", cv.rules.RoomMin, cv.rules.RoomMax)) == nil
}

func (cv *CustomValidator) NameMessage() string {
	return fmt.Sprintf("Patient name must be between %d and %d printable characters long", cv.rules.NameMin, cv.rules.NameMax)
}

func (cv *CustomValidator) AgeMessage() string {
	return fmt.Sprintf("Patient age must be a number between %d and %d", cv.rules.AgeMin, cv.rules.AgeMax)
}

func (cv *CustomValidator) DiagnosisMessage() string {
	return fmt.Sprintf("Patient diagnosis must be between %d and %d printable characters long", cv.rules.DiagnosisMin, cv.rules.DiagnosisMax)
}

func (cv *CustomValidator) RoomMessage() string {
	return fmt.Sprintf("Room number must be between %d and %d", cv.rules.RoomMin, cv.rules.RoomMax)
}

// ValidateAdmission checks every admission field and reports all failures
// at once. Text fields are expected to be normalized already.
func (cv *CustomValidator) ValidateAdmission(name string, age int, diagnosis string, room int) error {
	fields := make(map[string]string)
	if !cv.ValidName(name) {
		fields["name"] = cv.NameMessage()
	}
	if !cv.ValidAge(age) {
		fields["age"] = cv.AgeMessage()
	}
	if !cv.ValidDiagnosis(diagnosis) {
		fields["diagnosis"] = cv.DiagnosisMessage()
	}
	if !cv.ValidRoom(room) {
		fields["room"] = cv.RoomMessage()
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
