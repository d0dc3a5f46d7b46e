package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm(t *testing.T) {
	tests := []struct {
		name    string
		typ     CertificateType
		raw     string
		want    FormData
		wantErr string
	}{
		{
			name: "birth minimal",
			typ:  CertificateBirth,
			raw:  `{"fullName":"Jane Doe"}`,
			want: BirthForm{FullName: "Jane Doe"},
		},
		{
			name: "birth trims whitespace",
			typ:  CertificateBirth,
			raw:  `{"fullName":"  Jane Doe ","dateOfBirth":"1990-05-01","placeOfBirth":"Lima"}`,
			want: BirthForm{FullName: "Jane Doe", DateOfBirth: "1990-05-01", PlaceOfBirth: "Lima"},
		},
		{
			name:    "birth bad date",
			typ:     CertificateBirth,
			raw:     `{"fullName":"Jane","dateOfBirth":"01/05/1990"}`,
			wantErr: "dateOfBirth must be a date in YYYY-MM-DD format",
		},
		{
			name:    "birth blank name",
			typ:     CertificateBirth,
			raw:     `{"fullName":"   "}`,
			wantErr: "fullName is required",
		},
		{
			name:    "birth rejects education fields",
			typ:     CertificateBirth,
			raw:     `{"fullName":"Jane","institutionName":"UNI"}`,
			wantErr: `invalid formData: unknown field "institutionName"`,
		},
		{
			name: "education numeric year",
			typ:  CertificateEducation,
			raw:  `{"fullName":"Jane","degreeType":"maestria","graduationYear":2015}`,
			want: EducationForm{FullName: "Jane", DegreeType: "maestria", GraduationYear: "2015"},
		},
		{
			name: "education string year",
			typ:  CertificateEducation,
			raw:  `{"fullName":"Jane","graduationYear":"2015","institutionName":"UNI"}`,
			want: EducationForm{FullName: "Jane", GraduationYear: "2015", InstitutionName: "UNI"},
		},
		{
			name:    "education bad degree",
			typ:     CertificateEducation,
			raw:     `{"fullName":"Jane","degreeType":"phd"}`,
			wantErr: "degreeType must be one of: bachillerato, tecnico, licenciatura, maestria, doctorado",
		},
		{
			name:    "education bad year",
			typ:     CertificateEducation,
			raw:     `{"fullName":"Jane","graduationYear":"15"}`,
			wantErr: "graduationYear has an invalid format",
		},
		{
			name:    "education negative year",
			typ:     CertificateEducation,
			raw:     `{"fullName":"Jane","graduationYear":"-201"}`,
			wantErr: "graduationYear has an invalid format",
		},
		{
			name:    "education signed numeric year",
			typ:     CertificateEducation,
			raw:     `{"fullName":"Jane","graduationYear":-201}`,
			wantErr: "graduationYear has an invalid format",
		},
		{
			name:    "education plus-prefixed year",
			typ:     CertificateEducation,
			raw:     `{"fullName":"Jane","graduationYear":"+999"}`,
			wantErr: "graduationYear has an invalid format",
		},
		{
			name:    "null payload",
			typ:     CertificateBirth,
			raw:     `null`,
			wantErr: ErrFormMissing.Error(),
		},
		{
			name:    "empty payload",
			typ:     CertificateBirth,
			raw:     ``,
			wantErr: ErrFormMissing.Error(),
		},
		{
			name:    "array payload",
			typ:     CertificateBirth,
			raw:     `["Jane"]`,
			wantErr: "formData must be an object",
		},
		{
			name:    "unknown type",
			typ:     CertificateType("marriage"),
			raw:     `{"fullName":"Jane"}`,
			wantErr: `unsupported certificate type "marriage"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseForm(tt.typ, json.RawMessage(tt.raw))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.typ, got.CertificateType())
		})
	}
}

func TestDecodeStoredForm_IgnoresUnknownFields(t *testing.T) {
	got, err := DecodeStoredForm(CertificateBirth, []byte(`{"fullName":"Jane","legacy":true}`))
	require.NoError(t, err)
	assert.Equal(t, BirthForm{FullName: "Jane"}, got)

	_, err = DecodeStoredForm(CertificateEducation, []byte(`not json`))
	assert.Error(t, err)
}

func TestFormData_MarshalsCamelCase(t *testing.T) {
	b, err := json.Marshal(FormData(EducationForm{FullName: "Jane", GraduationYear: "2015"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"fullName":"Jane","graduationYear":"2015"}`, string(b))
}

func TestStatusAndTypeValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())

	assert.True(t, CertificateBirth.Valid())
	assert.True(t, CertificateEducation.Valid())
	assert.False(t, CertificateType("Birth").Valid())

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}
