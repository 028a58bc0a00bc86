package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/hostname"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/routes"
)

func TestRealRuntime_SinglePass(t *testing.T) {
	h := NewHarness(t)

	url := os.Getenv("FORAGE_ROUTES_TEST_URL")
	if url == "" {
		url = "https://example.com"
	}
	want, err := hostname.WildcardFor(url)
	if err != nil {
		t.Fatalf("bad FORAGE_ROUTES_TEST_URL: %v", err)
	}

	outcome, _, err := h.Discover(testContext(t), []string{url}, "", "y")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if outcome.Session == "" {
		t.Error("runtime reported no session")
	}

	entries := outcome.Routes.Entries(routes.SectionAdd)
	if len(entries) == 0 || entries[0] != want {
		t.Errorf("ip-add = %v, want %s first", entries, want)
	}
	t.Logf("unapplied after one pass: %s", strings.Join(outcome.Unapplied, ", "))
}
