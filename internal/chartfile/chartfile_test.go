package chartfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"AstroEngine/internal/model"
)

const sample = `
birth: 1990-03-15T12:00:00Z
is_day: true
points:
  Sun: {sign: Pisces, degree: 24.5, speed: 0.99}
  Moon: {sign: Cancer, degree: 3.2, speed: 13.1}
  Mercury: {sign: Aquarius, degree: 28.0, retrograde: true}
  ASC: {sign: Cancer, degree: 15.0}
  MC: {sign: Pisces, degree: 10.0}
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	chart, birth, err := Load(writeTemp(t, sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := time.Date(1990, time.March, 15, 12, 0, 0, 0, time.UTC)
	if !birth.Equal(want) {
		t.Errorf("birth = %s, want %s", birth, want)
	}
	if !chart.IsDay {
		t.Error("is_day not carried over")
	}
	sun, ok := chart.Point(string(model.Sun))
	if !ok || sun.Sign != model.Pisces || sun.Degree != 24.5 {
		t.Errorf("Sun = %+v, want Pisces 24.5", sun)
	}
	mercury, _ := chart.Point(string(model.Mercury))
	if !mercury.Retrograde {
		t.Error("Mercury retrograde flag lost")
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad sign name", `
birth: 1990-03-15T12:00:00Z
points:
  Sun: {sign: Ophiuchus, degree: 5}
  Moon: {sign: Cancer, degree: 3}
  ASC: {sign: Cancer, degree: 15}
  MC: {sign: Pisces, degree: 10}
`},
		{"missing birth", `
points:
  Sun: {sign: Pisces, degree: 5}
  Moon: {sign: Cancer, degree: 3}
  ASC: {sign: Cancer, degree: 15}
  MC: {sign: Pisces, degree: 10}
`},
		{"missing required point", `
birth: 1990-03-15T12:00:00Z
points:
  Sun: {sign: Pisces, degree: 5}
  ASC: {sign: Cancer, degree: 15}
  MC: {sign: Pisces, degree: 10}
`},
		{"degree out of range", `
birth: 1990-03-15T12:00:00Z
points:
  Sun: {sign: Pisces, degree: 31}
  Moon: {sign: Cancer, degree: 3}
  ASC: {sign: Cancer, degree: 15}
  MC: {sign: Pisces, degree: 10}
`},
	}
	for _, c := range cases {
		if _, _, err := Load(writeTemp(t, c.content)); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}
}
