package nav

import (
	"fmt"
	"slices"
	"testing"

	"github.com/pkg/errors"
)

var defaultTestLinks = []Link{
	{URL: "#/apps", Label: "nav_apps", SublinkPrefixes: []string{"#/services/", "#/servicesmap"}},
	{URL: "#/pools", Label: "nav_pools", SublinkPrefixes: []string{"#/pools/"}},
	{URL: "#/hosts", Label: "nav_hosts", SublinkPrefixes: []string{"#/hosts/", "#/hostsmap"}},
	{URL: "#/logs", Label: "nav_logs"},
	{URL: "#/backuprestore", Label: "nav_backuprestore"},
}

func TestRegistryResolveActive(t *testing.T) {
	type testCase struct {
		Path         string
		ExpectActive []string
	}

	testCases := []testCase{
		{Path: "#/services/42", ExpectActive: []string{"#/apps"}},
		{Path: "/services/42", ExpectActive: []string{"#/apps"}},
		{Path: "services/42", ExpectActive: []string{"#/apps"}},
		{Path: "#/apps", ExpectActive: []string{"#/apps"}},
		{Path: "#/servicesmap", ExpectActive: []string{"#/apps"}},
		{Path: "#/pools", ExpectActive: []string{"#/pools"}},
		{Path: "#/pools/default", ExpectActive: []string{"#/pools"}},
		{Path: "#/hostsmap", ExpectActive: []string{"#/hosts"}},
		{Path: "#/logs", ExpectActive: []string{"#/logs"}},
		{Path: "#/logs/today", ExpectActive: []string{}},
		{Path: "#/apps/", ExpectActive: []string{}},
		{Path: "#/entry", ExpectActive: []string{}},
		{Path: "", ExpectActive: []string{}},
	}

	registry, err := NewRegistry(defaultTestLinks)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d (%s)", idx, tc.Path), func(t *testing.T) {
			results := registry.ResolveActive(tc.Path)

			if e, g := len(defaultTestLinks), len(results); e != g {
				t.Fatalf("len(results): expected '%v', got '%v'", e, g)
			}

			active := make([]string, 0)
			for idx, r := range results {
				if e, g := defaultTestLinks[idx].URL, r.Link.URL; e != g {
					t.Errorf("results[%d].Link.URL: expected '%v', got '%v'", idx, e, g)
				}

				if r.Active {
					active = append(active, r.Link.URL)
				}
			}

			if e, g := tc.ExpectActive, active; !slices.Equal(e, g) {
				t.Errorf("active links: expected '%v', got '%v'", e, g)
			}

			// Resolution is idempotent
			again := registry.ResolveActive(tc.Path)
			for idx := range results {
				if e, g := results[idx].Active, again[idx].Active; e != g {
					t.Errorf("again[%d].Active: expected '%v', got '%v'", idx, e, g)
				}
			}
		})
	}
}

func TestRegistryActive(t *testing.T) {
	registry, err := NewRegistry([]Link{
		{URL: "#/apps", SublinkPrefixes: []string{"#/services/"}},
		{URL: "#/services", SublinkPrefixes: []string{"#/services/"}},
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	link, active := registry.Active("#/services/42")
	if !active {
		t.Fatalf("active: expected 'true', got 'false'")
	}

	// First matching link in registration order wins
	if e, g := "#/apps", link.URL; e != g {
		t.Errorf("link.URL: expected '%v', got '%v'", e, g)
	}

	// but both are reported active
	results := registry.ResolveActive("#/services/42")
	if !results[0].Active || !results[1].Active {
		t.Errorf("results: expected both links to be active, got %+v", results)
	}

	if e, g := "active", results[0].ItemClass(); e != g {
		t.Errorf("results[0].ItemClass(): expected '%v', got '%v'", e, g)
	}

	if _, active := registry.Active(""); active {
		t.Errorf("active: expected 'false' for empty path, got 'true'")
	}
}

func TestRegistryDelimiter(t *testing.T) {
	registry, err := NewRegistry([]Link{
		{URL: "/apps", SublinkPrefixes: []string{"/services/"}},
	}, WithDelimiter(""))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "/services/42", registry.Normalize("services/42"); e != g {
		t.Errorf("registry.Normalize(): expected '%v', got '%v'", e, g)
	}

	if _, active := registry.Active("/services/42"); !active {
		t.Errorf("active: expected 'true', got 'false'")
	}
}

func TestNewRegistryErrors(t *testing.T) {
	_, err := NewRegistry([]Link{{URL: "#/apps"}, {URL: "#/apps"}})
	if !errors.Is(err, ErrDuplicateURL) {
		t.Errorf("err: expected '%v', got '%v'", ErrDuplicateURL, err)
	}

	_, err = NewRegistry([]Link{{Label: "nav_apps"}})
	if !errors.Is(err, ErrEmptyURL) {
		t.Errorf("err: expected '%v', got '%v'", ErrEmptyURL, err)
	}
}

func TestRegistryImmutable(t *testing.T) {
	links := []Link{{URL: "#/apps", SublinkPrefixes: []string{"#/services/"}}}

	registry, err := NewRegistry(links)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	links[0].SublinkPrefixes[0] = "#/other/"

	returned := registry.Links()
	returned[0].URL = "#/changed"

	if _, active := registry.Active("#/services/1"); !active {
		t.Errorf("active: expected registry to keep its own copy of the links")
	}

	if e, g := "#/apps", registry.Links()[0].URL; e != g {
		t.Errorf("registry.Links()[0].URL: expected '%v', got '%v'", e, g)
	}
}

func TestRegistryVisible(t *testing.T) {
	boom := errors.New("boom")

	registry, err := NewRegistry([]Link{
		{URL: "#/apps"},
		{URL: "#/pools", Visible: RuleFunc(func(env map[string]any) (bool, error) {
			loggedIn, _ := env["loggedIn"].(bool)
			return loggedIn, nil
		})},
		{URL: "#/hosts", Visible: RuleFunc(func(env map[string]any) (bool, error) {
			return false, boom
		})},
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	failures := 0
	onError := func(l Link, err error) {
		if !errors.Is(err, boom) {
			t.Errorf("err: expected '%v', got '%v'", boom, err)
		}
		failures++
	}

	visible := slices.Collect(registry.Visible(map[string]any{"loggedIn": true}, onError))
	if e, g := 2, len(visible); e != g {
		t.Errorf("len(visible): expected '%v', got '%v'", e, g)
	}

	visible = slices.Collect(registry.Visible(map[string]any{"loggedIn": false}, onError))
	if e, g := 1, len(visible); e != g {
		t.Errorf("len(visible): expected '%v', got '%v'", e, g)
	}

	if e, g := 2, failures; e != g {
		t.Errorf("failures: expected '%v', got '%v'", e, g)
	}

	// Visibility does not change active resolution
	if _, active := registry.Active("#/hosts"); !active {
		t.Errorf("active: expected hidden link to still be resolvable")
	}
}
