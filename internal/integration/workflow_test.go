package integration

import (
	"reflect"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/discover"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/routes"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/testutil"
)

func TestWorkflow_FixtureLogs(t *testing.T) {
	env := testutil.NewTestEnv(t, "n", "y")
	env.AddFixtureSession("s1", "xcnetwork_cdn.log", "xcnetwork_mixed.log")

	outcome, err := env.Discover(discover.Options{
		URLs: []string{"https://www.example.test", "bad host name"},
	})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{"*.example.test", "static.cdn.test", "fonts.cdn.test", "metrics.example.test", "203.0.113.50"}
	if got := outcome.Routes.Entries(routes.SectionAdd); !reflect.DeepEqual(got, want) {
		t.Errorf("ip-add = %v, want %v", got, want)
	}
	if len(outcome.Skipped) != 1 {
		t.Errorf("Skipped = %v, want one invalid input", outcome.Skipped)
	}

	calls := env.Runtime.GetCalls()
	if len(calls) != 2 {
		t.Fatalf("runtime calls = %d, want 2", len(calls))
	}
	if calls[1].Options.ResumeID != "s1" {
		t.Errorf("second call ResumeID = %q, want s1", calls[1].Options.ResumeID)
	}
	if !reflect.DeepEqual(calls[0].Options.URLs, []string{"https://www.example.test"}) {
		t.Errorf("runtime URLs = %v", calls[0].Options.URLs)
	}
}

func TestWorkflow_ExistingRouteFile(t *testing.T) {
	env := testutil.NewTestEnv(t, "y")
	env.AddRouteFile("/work/routes.txt", "routes_existing.txt")
	env.AddFixtureSession("s1", "xcnetwork_mixed.log")

	outcome, err := env.Discover(discover.Options{
		URLs:        []string{"docs.example.test"},
		Destination: "/work/routes.txt",
	})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	rf := env.RouteFile("/work/routes.txt")
	if got := rf.Entries(routes.SectionAdd); !reflect.DeepEqual(got, []string{"*.example.test", "*.docs.example.test"}) {
		t.Errorf("ip-add = %v", got)
	}
	if got := rf.Entries(routes.SectionBlock); !reflect.DeepEqual(got, []string{"0.0.0.0", "198.51.100.4"}) {
		t.Errorf("ip-block = %v", got)
	}
	if got := rf.Entries("dns"); !reflect.DeepEqual(got, []string{"resolver.example.test"}) {
		t.Errorf("dns = %v", got)
	}
	if !reflect.DeepEqual(outcome.Unapplied, []string{"metrics.example.test", "203.0.113.50"}) {
		t.Errorf("Unapplied = %v", outcome.Unapplied)
	}
}
