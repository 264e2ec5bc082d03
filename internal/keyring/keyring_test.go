package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/daypad/internal/constants"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	old := lookupEnv
	lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = old })
}

func TestVault_SetGetDelete(t *testing.T) {
	gokeyring.MockInit()
	v := Default()
	conn := "postgres://planner@localhost:5432/daypad?sslmode=disable"

	if err := v.Set("  " + conn + "\n"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := v.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != conn {
		t.Errorf("Get() = %q, want %q", got, conn)
	}

	if err := v.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := v.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() = %v, want ErrNotFound", err)
	}
	if err := v.Delete(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestVault_SetEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := Default().Set("   "); !errors.Is(err, ErrEmptyConnString) {
		t.Errorf("Set(blank) = %v, want ErrEmptyConnString", err)
	}
}

func TestVault_Status(t *testing.T) {
	gokeyring.MockInit()
	v := Vault{Service: constants.AppName, User: "status-test"}

	if st := v.Status(); !st.Available || st.Stored {
		t.Errorf("empty Status() = %+v", st)
	}
	if err := v.Set("postgres://x@localhost/db"); err != nil {
		t.Fatal(err)
	}
	if st := v.Status(); !st.Available || !st.Stored {
		t.Errorf("stored Status() = %+v", st)
	}
}

func TestVault_Unavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))
	t.Cleanup(gokeyring.MockInit)
	v := Default()

	if _, err := v.Get(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Get() = %v, want ErrKeyringUnavailable", err)
	}
	if st := v.Status(); st.Available {
		t.Errorf("Status() = %+v, want unavailable", st)
	}
}

func TestResolve(t *testing.T) {
	gokeyring.MockInit()
	v := Default()
	if err := v.Set("postgres://from-keyring@localhost/db"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantSrc Source
	}{
		{"env wins", map[string]string{constants.EnvDBConnection: "postgres://from-env@localhost/db"}, "postgres://from-env@localhost/db", SourceEnv},
		{"blank env falls through", map[string]string{constants.EnvDBConnection: "  "}, "postgres://from-keyring@localhost/db", SourceKeyring},
		{"keyring only", nil, "postgres://from-keyring@localhost/db", SourceKeyring},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.env)
			got, src, err := v.Resolve()
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want || src != tt.wantSrc {
				t.Errorf("Resolve() = (%q, %q), want (%q, %q)", got, src, tt.want, tt.wantSrc)
			}
		})
	}
}

func TestResolve_NothingConfigured(t *testing.T) {
	gokeyring.MockInit()
	withEnv(t, nil)
	v := Vault{Service: constants.AppName, User: "nobody"}
	if _, _, err := v.Resolve(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() = %v, want ErrNotFound", err)
	}
}
