package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

type stubAppointmentRepo struct {
	appts  map[int64]*domain.Appointment
	nextID int64
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appts: make(map[int64]*domain.Appointment), nextID: 1}
}

func (r *stubAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (int64, error) {
	id := r.nextID
	r.nextID++
	copy := *appt
	copy.ID = id
	r.appts[id] = &copy
	return id, nil
}

func (r *stubAppointmentRepo) List(context.Context) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(r.appts))
	for _, a := range r.appts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, appt *domain.Appointment) error {
	if _, ok := r.appts[appt.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	copy := *appt
	r.appts[appt.ID] = &copy
	return nil
}

func (r *stubAppointmentRepo) Delete(_ context.Context, id int64) error {
	delete(r.appts, id)
	return nil
}

func TestAppointmentService_Create_Success(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := NewAppointmentService(repo, zerolog.Nop())

	appt, err := svc.Create(context.Background(), ports.AppointmentInput{
		PatientID:       1,
		DoctorID:        2,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
		Reason:          "checkup",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if appt.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if got, err := svc.Get(context.Background(), appt.ID); err != nil || got.Reason != "checkup" {
		t.Fatalf("Get after Create: %+v, %v", got, err)
	}
}

func TestAppointmentService_Create_MissingFields(t *testing.T) {
	svc := NewAppointmentService(newStubAppointmentRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.AppointmentInput{PatientID: 1, DoctorID: 2})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAppointmentService_Get_NotFound(t *testing.T) {
	svc := NewAppointmentService(newStubAppointmentRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestAppointmentService_Update_NotFound(t *testing.T) {
	svc := NewAppointmentService(newStubAppointmentRepo(), zerolog.Nop())

	_, err := svc.Update(context.Background(), 99, ports.AppointmentInput{
		PatientID: 1, DoctorID: 2, AppointmentDate: "2026-09-15", AppointmentTime: "10:30",
	})
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
