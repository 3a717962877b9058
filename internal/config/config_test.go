package config

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bornholm/compass/pkg/help"
	"github.com/pkg/errors"
)

func TestInterpolateDefaultConfig(t *testing.T) {
	env := map[string]string{
		"COMPASS_HTTP_ADDRESS": ":9090",
		"COMPASS_DOCS_DIR":     "/srv/help",
	}

	getEnv = func(key string) string {
		return env[key]
	}
	defer func() { getEnv = os.Getenv }()

	conf := NewDefaultConfig()

	if err := Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":9090", string(conf.HTTP.Address); e != g {
		t.Errorf("conf.HTTP.Address: expected '%s', got '%s'", e, g)
	}

	if e, g := "compass_session", string(conf.HTTP.Session.Name); e != g {
		t.Errorf("conf.HTTP.Session.Name: expected '%s', got '%s'", e, g)
	}

	if e, g := 24*time.Hour, time.Duration(conf.HTTP.Session.Cookie.MaxAge); e != g {
		t.Errorf("conf.HTTP.Session.Cookie.MaxAge: expected '%v', got '%v'", e, g)
	}

	if e, g := "local", string(conf.Docs.Type); e != g {
		t.Errorf("conf.Docs.Type: expected '%s', got '%s'", e, g)
	}

	if e, g := "/srv/help", conf.Docs.Options.Data["dir"]; e != g {
		t.Errorf("conf.Docs.Options.Data[\"dir\"]: expected '%v', got '%v'", e, g)
	}

	if e, g := 5, len(conf.Navigation.Links); e != g {
		t.Fatalf("len(conf.Navigation.Links): expected %d, got %d", e, g)
	}

	if e, g := "loggedIn", string(conf.Navigation.Links[4].Visible); e != g {
		t.Errorf("conf.Navigation.Links[4].Visible: expected '%s', got '%s'", e, g)
	}

	if e, g := len(help.DefaultMapping), len(conf.Help.Mapping); e != g {
		t.Errorf("len(conf.Help.Mapping): expected %d, got %d", e, g)
	}

	if e, g := "en", string(conf.Help.DefaultLanguage); e != g {
		t.Errorf("conf.Help.DefaultLanguage: expected '%s', got '%s'", e, g)
	}

	if e, g := 20, int(conf.RateLimit.Burst); e != g {
		t.Errorf("conf.RateLimit.Burst: expected %d, got %d", e, g)
	}
}

func TestDumpComments(t *testing.T) {
	var buff bytes.Buffer

	if err := Dump(&buff, NewDefaultConfig()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	dumped := buff.String()

	for _, expected := range []string{"# Navigation bar configuration", "# Help documents source", "${COMPASS_STORE_PATH:-data.db}"} {
		if !strings.Contains(dumped, expected) {
			t.Errorf("expected dumped config to contain '%s'", expected)
		}
	}
}
