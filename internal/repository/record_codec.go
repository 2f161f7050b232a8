package repository

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"patient-register/internal/domain/entity"
	domainRepo "patient-register/internal/domain/repository"
)

// Fixed on-disk layout, little-endian:
//
//	id int32 | name [400]byte | age int32 | diagnosis [400]byte | room int32 | admitted int64
//
// A discharge record is a patient record followed by the discharge time (int64).
// Text slots hold UTF-8 padded with NUL bytes; 400 bytes fit 100 runes of any width.
const (
	textSlotSize        = 400
	PatientRecordSize   = 4 + textSlotSize + 4 + textSlotSize + 4 + 8
	DischargeRecordSize = PatientRecordSize + 8
)

const (
	offID        = 0
	offName      = offID + 4
	offAge       = offName + textSlotSize
	offDiagnosis = offAge + 4
	offRoom      = offDiagnosis + textSlotSize
	offAdmitted  = offRoom + 4
	offDischarge = PatientRecordSize
)

// ErrRecordTooLarge is returned when a field cannot be encoded in its slot.
var ErrRecordTooLarge = errors.New("record field does not fit the file layout")

var le = binary.LittleEndian

func encodePatientRecord(buf []byte, rec entity.PatientRecord) error {
	if len(buf) < PatientRecordSize {
		return fmt.Errorf("encode patient %d: buffer of %d bytes is too small", rec.ID, len(buf))
	}
	if rec.ID <= 0 || rec.ID > math.MaxInt32 {
		return fmt.Errorf("%w: id %d", ErrRecordTooLarge, rec.ID)
	}
	if rec.AgeInYears < 0 || rec.AgeInYears > math.MaxInt32 {
		return fmt.Errorf("%w: age %d", ErrRecordTooLarge, rec.AgeInYears)
	}
	if rec.RoomNumber < 0 || rec.RoomNumber > math.MaxInt32 {
		return fmt.Errorf("%w: room %d", ErrRecordTooLarge, rec.RoomNumber)
	}

	le.PutUint32(buf[offID:], uint32(rec.ID))
	if err := putText(buf[offName:offName+textSlotSize], rec.Name); err != nil {
		return fmt.Errorf("patient %d name: %w", rec.ID, err)
	}
	le.PutUint32(buf[offAge:], uint32(rec.AgeInYears))
	if err := putText(buf[offDiagnosis:offDiagnosis+textSlotSize], rec.Diagnosis); err != nil {
		return fmt.Errorf("patient %d diagnosis: %w", rec.ID, err)
	}
	le.PutUint32(buf[offRoom:], uint32(rec.RoomNumber))
	le.PutUint64(buf[offAdmitted:], uint64(rec.AdmittedAt.Unix()))
	return nil
}

func decodePatientRecord(buf []byte) (entity.PatientRecord, error) {
	id := int32(le.Uint32(buf[offID:]))
	age := int32(le.Uint32(buf[offAge:]))
	room := int32(le.Uint32(buf[offRoom:]))
	if id <= 0 {
		return entity.PatientRecord{}, fmt.Errorf("%w: id %d", domainRepo.ErrCorruptRecord, id)
	}
	if age < 0 || room < 0 {
		return entity.PatientRecord{}, fmt.Errorf("%w: patient %d has age %d room %d", domainRepo.ErrCorruptRecord, id, age, room)
	}
	name, err := getText(buf[offName : offName+textSlotSize])
	if err != nil {
		return entity.PatientRecord{}, fmt.Errorf("patient %d name: %w", id, err)
	}
	diagnosis, err := getText(buf[offDiagnosis : offDiagnosis+textSlotSize])
	if err != nil {
		return entity.PatientRecord{}, fmt.Errorf("patient %d diagnosis: %w", id, err)
	}
	return entity.PatientRecord{
		ID:         int(id),
		Name:       name,
		AgeInYears: int(age),
		Diagnosis:  diagnosis,
		RoomNumber: int(room),
		AdmittedAt: time.Unix(int64(le.Uint64(buf[offAdmitted:])), 0),
	}, nil
}

func encodeDischargeRecord(buf []byte, rec entity.DischargeRecord) error {
	if len(buf) < DischargeRecordSize {
		return fmt.Errorf("encode discharge %d: buffer of %d bytes is too small", rec.Patient.ID, len(buf))
	}
	if err := encodePatientRecord(buf, rec.Patient); err != nil {
		return err
	}
	le.PutUint64(buf[offDischarge:], uint64(rec.DischargedAt.Unix()))
	return nil
}

func decodeDischargeRecord(buf []byte) (entity.DischargeRecord, error) {
	patient, err := decodePatientRecord(buf[:PatientRecordSize])
	if err != nil {
		return entity.DischargeRecord{}, err
	}
	return entity.DischargeRecord{
		Patient:      patient,
		DischargedAt: time.Unix(int64(le.Uint64(buf[offDischarge:])), 0),
	}, nil
}

func putText(slot []byte, s string) error {
	if len(s) > len(slot) {
		return fmt.Errorf("%w: %d bytes, slot holds %d", ErrRecordTooLarge, len(s), len(slot))
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w: text contains a NUL byte", ErrRecordTooLarge)
	}
	n := copy(slot, s)
	clear(slot[n:])
	return nil
}

func getText(slot []byte) (string, error) {
	if i := bytes.IndexByte(slot, 0); i >= 0 {
		slot = slot[:i]
	}
	if !utf8.Valid(slot) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", domainRepo.ErrCorruptRecord)
	}
	return string(slot), nil
}

// readRecords decodes fixed-size records until EOF. It stops at the first
// short or undecodable record and returns what it decoded before it.
func readRecords[T any](r io.Reader, size int, decode func([]byte) (T, error)) ([]T, error) {
	br := bufio.NewReader(r)
	buf := make([]byte, size)
	var out []T
	for i := 0; ; i++ {
		n, err := io.ReadFull(br, buf)
		switch {
		case errors.Is(err, io.EOF):
			return out, nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			return out, fmt.Errorf("%w: record %d has %d of %d bytes", domainRepo.ErrTruncatedRecord, i+1, n, size)
		case err != nil:
			return out, fmt.Errorf("read record %d: %w", i+1, err)
		}
		rec, err := decode(buf)
		if err != nil {
			return out, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
}
