package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/docutrack/internal/validate"
)

// FormData is the typed payload of a certificate request. Each certificate
// type has its own variant with its own field set.
type FormData interface {
	CertificateType() CertificateType
}

// BirthForm carries the fields of a birth certificate request.
type BirthForm struct {
	FullName       string `json:"fullName" validate:"required,max=200"`
	DateOfBirth    string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth   string `json:"placeOfBirth,omitempty" validate:"max=200"`
	MotherName     string `json:"motherName,omitempty" validate:"max=200"`
	FatherName     string `json:"fatherName,omitempty" validate:"max=200"`
	AdditionalInfo string `json:"additionalInfo,omitempty" validate:"max=2000"`
}

func (BirthForm) CertificateType() CertificateType { return CertificateBirth }

func (f *BirthForm) trim() {
	trimAll(&f.FullName, &f.DateOfBirth, &f.PlaceOfBirth, &f.MotherName, &f.FatherName, &f.AdditionalInfo)
}

// EducationForm carries the fields of an education certificate request.
type EducationForm struct {
	FullName        string     `json:"fullName" validate:"required,max=200"`
	DocumentID      string     `json:"documentId,omitempty" validate:"max=50"`
	InstitutionName string     `json:"institutionName,omitempty" validate:"max=200"`
	DegreeType      string     `json:"degreeType,omitempty" validate:"omitempty,oneof=bachillerato tecnico licenciatura maestria doctorado"`
	GraduationYear  FlexString `json:"graduationYear,omitempty" validate:"omitempty,number,len=4"`
	FieldOfStudy    string     `json:"fieldOfStudy,omitempty" validate:"max=200"`
	AdditionalInfo  string     `json:"additionalInfo,omitempty" validate:"max=2000"`
}

func (EducationForm) CertificateType() CertificateType { return CertificateEducation }

func (f *EducationForm) trim() {
	year := string(f.GraduationYear)
	trimAll(&f.FullName, &f.DocumentID, &f.InstitutionName, &f.DegreeType, &year, &f.FieldOfStudy, &f.AdditionalInfo)
	f.GraduationYear = FlexString(year)
}

// FlexString accepts either a JSON string or a JSON number. Browser forms
// send numeric inputs both ways.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number")
	}
	*s = FlexString(n.String())
	return nil
}

// ErrFormMissing is returned when a request carries no form payload.
var ErrFormMissing = errors.New("formData is required")

// ParseForm decodes raw into the variant selected by t, rejecting unknown
// fields, and validates it. It is used for client input.
func ParseForm(t CertificateType, raw json.RawMessage) (FormData, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrFormMissing
	}
	if raw[0] != '{' {
		return nil, errors.New("formData must be an object")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var form FormData
	switch t {
	case CertificateBirth:
		var f BirthForm
		if err := dec.Decode(&f); err != nil {
			return nil, decodeError(err)
		}
		f.trim()
		form = f
	case CertificateEducation:
		var f EducationForm
		if err := dec.Decode(&f); err != nil {
			return nil, decodeError(err)
		}
		f.trim()
		form = f
	default:
		return nil, fmt.Errorf("unsupported certificate type %q", t)
	}

	if err := validate.Struct(form); err != nil {
		return nil, err
	}
	return form, nil
}

// DecodeStoredForm decodes a persisted payload. Unknown fields are ignored
// and no validation runs, so rows written by older versions still load.
func DecodeStoredForm(t CertificateType, raw []byte) (FormData, error) {
	switch t {
	case CertificateBirth:
		var f BirthForm
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode birth form: %w", err)
		}
		return f, nil
	case CertificateEducation:
		var f EducationForm
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode education form: %w", err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("unsupported certificate type %q", t)
}

func decodeError(err error) error {
	return fmt.Errorf("invalid formData: %s", strings.TrimPrefix(err.Error(), "json: "))
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
