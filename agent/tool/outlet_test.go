package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
	outletx "github.com/tanpawarit/kopibot/agent/outlet"
)

type failingOutletStore struct{}

func (failingOutletStore) Find(context.Context, string) (*outletx.Outlet, error) {
	return nil, errors.New("connection refused")
}

func newOutletLookup() *OutletLookup {
	return NewOutletLookup(outletx.NewStaticStore())
}

func TestOutletLookupOpeningHours(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{
		Location: contractx.OutletSS2,
		InfoType: contractx.InfoOpeningHours,
	})
	if got != "The SS2 outlet opens at 9:00 AM." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOutletLookupClosingHours(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{
		Location: contractx.OutletSS15,
		InfoType: contractx.InfoClosingHours,
	})
	if got != "The SS15 outlet closes at 9:00 PM." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOutletLookupFullHours(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{
		Location: contractx.OutletDamansara,
		InfoType: contractx.InfoHours,
	})
	if got != "The Damansara outlet opens at 7:00 AM and closes at 11:00 PM." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOutletLookupDescriptionFallback(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{
		Location: contractx.OutletSS2,
	})
	want := "The SS2 outlet is a bustling spot in Petaling Jaya with good vibes. Would you like to know its opening or closing hours?"
	if got != want {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOutletLookupGeneralAreaWithInfoType(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{
		Location: contractx.AreaPetalingJaya,
		InfoType: contractx.InfoOpeningHours,
	})
	if !strings.Contains(got, "We have several outlets in Petaling Jaya.") {
		t.Fatalf("unexpected reply: %q", got)
	}
	if !strings.Contains(got, "opening hours") {
		t.Fatalf("reply does not echo info type: %q", got)
	}
}

func TestOutletLookupGeneralAreaWithoutInfoType(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{
		Location: contractx.AreaKualaLumpur,
	})
	if !strings.Contains(got, "Yes, we have outlets in Kuala Lumpur") {
		t.Fatalf("unexpected reply: %q", got)
	}
	if !strings.Contains(got, "KLCC") {
		t.Fatalf("reply does not include area description: %q", got)
	}
}

func TestOutletLookupUnknownOutlet(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{Location: "Subang"})
	want := "I don't have detailed information for an outlet specifically called 'Subang'. Did you mean SS2, SS15, or Damansara?"
	if got != want {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOutletLookupMissingLocation(t *testing.T) {
	t.Parallel()

	got := newOutletLookup().Lookup(context.Background(), contractx.OutletQuery{InfoType: contractx.InfoHours})
	if got != "I need a specific outlet (like SS2, SS15, or Damansara) to give you information." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOutletLookupStoreFailureDegrades(t *testing.T) {
	t.Parallel()

	lookup := NewOutletLookup(failingOutletStore{})
	got := lookup.Lookup(context.Background(), contractx.OutletQuery{Location: contractx.OutletSS2})
	if got == "" {
		t.Fatal("expected degraded reply text")
	}
	if strings.Contains(got, "connection refused") {
		t.Fatalf("reply leaks internal error: %q", got)
	}
}

func TestToolsetRequiresAllCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := NewToolset(nil, newOutletLookup(), stubCompleter{}); err == nil {
		t.Fatal("expected error for nil calculator")
	}
	if _, err := NewToolset(NewCalculator(), nil, stubCompleter{}); err == nil {
		t.Fatal("expected error for nil outlet lookup")
	}
	if _, err := NewToolset(NewCalculator(), newOutletLookup(), nil); err == nil {
		t.Fatal("expected error for nil completer")
	}

	ts, err := NewToolset(NewCalculator(), newOutletLookup(), stubCompleter{})
	if err != nil {
		t.Fatalf("NewToolset() error = %v", err)
	}
	if ts.Calculator() == nil || ts.Outlets() == nil || ts.Completer() == nil {
		t.Fatal("toolset must expose its collaborators")
	}
}

type stubCompleter struct{}

func (stubCompleter) Complete(context.Context, []contractx.Turn, string) (string, error) {
	return "ok", nil
}
