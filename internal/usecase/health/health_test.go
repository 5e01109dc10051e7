package health

import (
	"context"
	"errors"
	"testing"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type checker struct{ err error }

func (c checker) HealthCheck(context.Context) error { return c.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(pinger{}, checker{})
	rep := svc.Check(context.Background())

	if rep.Status != Healthy {
		t.Errorf("status = %q, want %q", rep.Status, Healthy)
	}
	if rep.Checks["database"] != CheckOK || rep.Checks["embedding"] != CheckOK {
		t.Errorf("checks = %v", rep.Checks)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(pinger{err: errors.New("refused")}, checker{})
	rep := svc.Check(context.Background())

	if rep.Status != Degraded {
		t.Errorf("status = %q, want %q", rep.Status, Degraded)
	}
	if rep.Checks["database"] != CheckError {
		t.Errorf("database check = %q", rep.Checks["database"])
	}
	if rep.Checks["embedding"] != CheckOK {
		t.Errorf("embedding check = %q", rep.Checks["embedding"])
	}
}

func TestCheck_ProviderDown(t *testing.T) {
	svc := New(pinger{}, checker{err: errors.New("401")})
	rep := svc.Check(context.Background())

	if rep.Status != Degraded {
		t.Errorf("status = %q, want %q", rep.Status, Degraded)
	}
}

func TestCheck_NilProviderSkipped(t *testing.T) {
	svc := New(pinger{}, nil)
	rep := svc.Check(context.Background())

	if rep.Status != Healthy {
		t.Errorf("status = %q, want %q", rep.Status, Healthy)
	}
	if _, ok := rep.Checks["embedding"]; ok {
		t.Error("embedding check must be skipped without a checker")
	}
}
