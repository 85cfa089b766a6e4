package access_test

import (
	"context"
	"errors"
	"medimate/internal/domains/profile/access"
	"medimate/shared/caller"
	"medimate/shared/role"
	"testing"

	"github.com/stretchr/testify/assert"
)

type linker struct {
	linked bool
	err    error
}

func (l linker) Linked(context.Context, string, string) (bool, error) {
	return l.linked, l.err
}

var (
	staff   = caller.Caller{UserID: "s1", Role: role.Staff}
	doctor  = caller.Caller{UserID: "d1", Role: role.Doctor}
	patient = caller.Caller{UserID: "p1", Role: role.Patient}
)

func TestDoctorProfiles(t *testing.T) {
	assert.NoError(t, access.CanViewDoctor(staff, "d1"))
	assert.NoError(t, access.CanViewDoctor(patient, "d1"))
	assert.NoError(t, access.CanViewDoctor(doctor, "d1"))
	assert.ErrorIs(t, access.CanViewDoctor(doctor, "d2"), access.ErrNotYourProfile)

	assert.NoError(t, access.CanEditDoctor(staff, "d2"))
	assert.NoError(t, access.CanEditDoctor(doctor, "d1"))
	assert.ErrorIs(t, access.CanEditDoctor(doctor, "d2"), access.ErrNotYourProfile)
	assert.Error(t, access.CanEditDoctor(patient, "d1"))
}

func TestCanViewPatient(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("db down")

	tests := []struct {
		name    string
		caller  caller.Caller
		userID  string
		linker  linker
		wantErr error
	}{
		{name: "staff", caller: staff, userID: "p1"},
		{name: "patient self", caller: patient, userID: "p1"},
		{name: "other patient", caller: patient, userID: "p2", wantErr: access.ErrNotYourProfile},
		{name: "doctor with a booking", caller: doctor, userID: "p1", linker: linker{linked: true}},
		{name: "doctor without a booking", caller: doctor, userID: "p1", wantErr: access.ErrNotYourPatient},
		{name: "doctor lookup fails", caller: doctor, userID: "p1", linker: linker{err: storeErr}, wantErr: storeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := access.CanViewPatient(ctx, tt.caller, tt.userID, tt.linker)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCanEditPatient(t *testing.T) {
	assert.NoError(t, access.CanEditPatient(staff, "p1"))
	assert.NoError(t, access.CanEditPatient(patient, "p1"))
	assert.ErrorIs(t, access.CanEditPatient(patient, "p2"), access.ErrNotYourProfile)
	assert.Error(t, access.CanEditPatient(doctor, "p1"))
}
