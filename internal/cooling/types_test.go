package cooling

import (
	"errors"
	"testing"
)

func TestVariantValid(t *testing.T) {
	cases := []struct {
		v    Variant
		want bool
	}{
		{VariantUnknown, false},
		{VariantFlux, true},
		{VariantNewton, true},
		{Variant(999), false},
	}

	for _, tc := range cases {
		if got := tc.v.Valid(); got != tc.want {
			t.Fatalf("Variant(%d).Valid()=%v want %v", tc.v, got, tc.want)
		}
	}
}

func TestParseVariant_Table(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    Variant
		wantErr bool
	}{
		{"flux", "flux", VariantFlux, false},
		{"newton", "newton", VariantNewton, false},
		{"mixed case", " Newton ", VariantNewton, false},
		{"invalid", "nope", VariantUnknown, true},
		{"empty", "", VariantUnknown, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseVariant(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidVariant) {
					t.Fatalf("ParseVariant(%q) expected ErrInvalidVariant, got %v", tc.in, err)
				}
			} else if err != nil {
				t.Fatalf("ParseVariant(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseVariant(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestContainerSizeString_Table(t *testing.T) {
	cases := []struct {
		name   string
		in     ContainerSize
		want   string
		liters float64
	}{
		{"unknown (zero)", ContainerUnknown, "unknown", 0},
		{"330", Container330, "330ml", 0.33},
		{"500", Container500, "500ml", 0.5},
		{"unknown (out of range)", ContainerSize(999), "unknown", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Fatalf("ContainerSize(%d).String()=%q want %q", tc.in, got, tc.want)
			}
			if got := tc.in.Liters(); got != tc.liters {
				t.Fatalf("ContainerSize(%d).Liters()=%v want %v", tc.in, got, tc.liters)
			}
		})
	}
}

func TestParseContainerSize_Table(t *testing.T) {
	cases := []struct {
		in      string
		want    ContainerSize
		wantErr bool
	}{
		{"330ml", Container330, false},
		{"330 ml", Container330, false},
		{"0.33 L", Container330, false},
		{"500ml", Container500, false},
		{"0.5 L", Container500, false},
		{"1l", ContainerUnknown, true},
		{"", ContainerUnknown, true},
	}

	for _, tc := range cases {
		got, err := ParseContainerSize(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseContainerSize(%q) err=%v wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseContainerSize(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseIceProfile_Table(t *testing.T) {
	cases := []struct {
		in      string
		want    IceProfile
		wantErr bool
	}{
		{"large_cubes", IceLargeCubes, false},
		{"Small Cubes", IceSmallCubes, false},
		{"crushed", IceCrushed, false},
		{"Crushed Ice", IceCrushed, false},
		{"slush", IceCrushed, false},
		{"dry ice", IceUnknown, true},
	}

	for _, tc := range cases {
		got, err := ParseIceProfile(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseIceProfile(%q) err=%v wantErr %v", tc.in, err, tc.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidIceProfile) {
			t.Fatalf("ParseIceProfile(%q) expected ErrInvalidIceProfile, got %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseIceProfile(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, c := range Containers() {
		got, err := ParseContainerSize(c.String())
		if err != nil || got != c {
			t.Fatalf("container %v round trip: got %v, %v", c, got, err)
		}
	}
	for _, p := range IceProfiles() {
		got, err := ParseIceProfile(p.String())
		if err != nil || got != p {
			t.Fatalf("ice profile %v round trip: got %v, %v", p, got, err)
		}
	}
	for _, v := range Variants() {
		got, err := ParseVariant(v.String())
		if err != nil || got != v {
			t.Fatalf("variant %v round trip: got %v, %v", v, got, err)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeUnknown:              "unknown",
		OutcomeCooled:               "cooled",
		OutcomeUnreachableTarget:    "unreachable_target",
		OutcomeInvalidConfiguration: "invalid_configuration",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Fatalf("Outcome(%d).String()=%q want %q", o, got, want)
		}
	}
}

func TestTablesFor(t *testing.T) {
	ct := CanTable{Can330: 1, Can500: 2}
	if ct.For(Container500) != 2 || ct.For(ContainerUnknown) != 0 {
		t.Fatalf("CanTable.For mismatch: %+v", ct)
	}
	it := IceTable{LargeCubes: 1, SmallCubes: 2, Crushed: 3}
	if it.For(IceSmallCubes) != 2 || it.For(IceUnknown) != 0 {
		t.Fatalf("IceTable.For mismatch: %+v", it)
	}
}
