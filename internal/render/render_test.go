package render

import (
	"strings"
	"testing"
	"time"
)

func TestShortName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mari Tamm", "Mari"},
		{"Mari-Liis Tamm", "Mari-Liis"},
		{"Jaan Peeter Tamm", "Jaan Peeter"},
		{"Madis", "Madis"},
		{"  Mari   Tamm  ", "Mari"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ShortName(tc.in); got != tc.want {
			t.Fatalf("ShortName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestComitative(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Madis", "Madisega"},
		{"Kadri", "Kadriga"},
		{"Anne", "Ansega"},
		{"Kalev", "Kaleviga"},
		{"Mart", "Martiga"},
		{"Leelo", "Leeloga"},
		{"Ülo", "Üloga"},
	}
	for _, tc := range cases {
		if got := Comitative(tc.in); got != tc.want {
			t.Fatalf("Comitative(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderContactPlaceholders(t *testing.T) {
	data := Data{
		ContactName:    "Madis Org",
		ContactCompany: "Org OÜ",
		ContactEmail:   "madis@example.ee",
		ContactPhone:   "5123 456",
	}

	out := Render("Tere, [Kontaktisiku nimi]! Kas räägin [Kontaktisiku nimega] firmast [Kontakti ettevõte]?", data)
	want := "Tere, Madis! Kas räägin Madisega firmast Org OÜ?"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	out = Render("[E-post] / [Telefon]", data)
	if out != "madis@example.ee / 5123 456" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderMissingContactData(t *testing.T) {
	out := Render("Tere, [Kontaktisiku nimi]! [E-post]", Data{})
	if !strings.Contains(out, "[kontakti nimi puudub]") {
		t.Fatalf("expected missing-name marker, got %q", out)
	}
	if !strings.Contains(out, "[e-post puudub]") {
		t.Fatalf("expected missing-email marker, got %q", out)
	}
}

func TestRenderCallerPlaceholdersLeftWithoutData(t *testing.T) {
	out := Render("Kohtume [Nädalapäev], [Kuupäev] kell [Kellaaeg]. [Ettevõtte nimi]", Data{})
	want := "Kohtume [Nädalapäev], [Kuupäev] kell [Kellaaeg]. [Ettevõtte nimi]"
	if out != want {
		t.Fatalf("placeholders without data must stay put, got %q", out)
	}
}

func TestRenderMeetingPlaceholders(t *testing.T) {
	// 2026-09-07 is a Monday.
	meeting := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	data := Data{
		CompanyName: "Näidisfirma",
		MeetingDate: &meeting,
		MeetingTime: "10:30",
	}

	out := Render("Kohtume [Nädalapäev], [Kuupäev] kell [Kellaaeg]. Tervitades [Ettevõtte nimi]", data)
	want := "Kohtume Esmaspäeval, 7. september kell 10:30. Tervitades Näidisfirma"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRenderTodayAlwaysResolves(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	out := Render("Saadetud [Tänane kuupäev]", Data{Now: now})
	if out != "Saadetud 5. märts" {
		t.Fatalf("got %q", out)
	}

	// Even with a completely empty Data the placeholder resolves.
	out = Render("[Tänane kuupäev]", Data{})
	if strings.Contains(out, "[") {
		t.Fatalf("today placeholder left unexpanded: %q", out)
	}
}

func TestRenderReplacesEveryOccurrence(t *testing.T) {
	out := Render("[Kontaktisiku nimi], [Kontaktisiku nimi]", Data{ContactName: "Mari Tamm"})
	if out != "Mari, Mari" {
		t.Fatalf("got %q", out)
	}
}
