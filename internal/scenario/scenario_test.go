package scenario

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	nbody "github.com/Kolaer/ecs-nbody"
)

func TestRandom(t *testing.T) {
	a := Random(rand.New(rand.NewSource(3)), 500, DefaultExtent)
	b := Random(rand.New(rand.NewSource(3)), 500, DefaultExtent)
	if len(a.Bodies) != 500 {
		t.Fatalf("expected 500 bodies, got %d", len(a.Bodies))
	}
	for i, body := range a.Bodies {
		if body != b.Bodies[i] {
			t.Fatalf("body %d differs for the same seed: %+v vs %+v", i, body, b.Bodies[i])
		}
		for _, c := range body.Pos {
			if c < 0 || c >= DefaultExtent {
				t.Errorf("body %d: coordinate %v outside [0, %v)", i, c, DefaultExtent)
			}
		}
		if body.Vel != [2]float32{} || body.Mass != 1 {
			t.Errorf("body %d: expected rest and unit mass, got %+v", i, body)
		}
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `{
		"name": "binary",
		"dt": 0.5,
		"cutoff": 400,
		"bodies": [
			{"pos": [0, 0], "mass": 2},
			{"pos": [10, 0], "vel": [0, 0.1], "mass": 1}
		]
	}`)
	sc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "binary" || sc.Delta != 0.5 || sc.Gravity != 0 {
		t.Errorf("unexpected header %+v", sc)
	}
	if sc.Cutoff == nil || *sc.Cutoff != 400 {
		t.Errorf("expected cutoff 400, got %v", sc.Cutoff)
	}
	if len(sc.Bodies) != 2 || sc.Bodies[1].Vel[1] != 0.1 || sc.Bodies[0].Mass != 2 {
		t.Errorf("unexpected bodies %+v", sc.Bodies)
	}

	cfg := sc.Apply(nbody.Config{Entities: 1, Delta: 0.1, Gravity: 1e-5})
	if cfg.Delta != 0.5 || cfg.Gravity != 1e-5 || cfg.Entities != 2 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Cutoff == nil || *cfg.Cutoff != 400 {
		t.Errorf("expected cutoff 400 in config, got %v", cfg.Cutoff)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if _, err := Load(writeFile(t, `{"bodies": [`)); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(writeFile(t, `{"name": "empty", "bodies": []}`)); err == nil {
		t.Error("expected error for a scenario without bodies")
	}
}

func TestPopulate(t *testing.T) {
	sc := Scenario{Bodies: []Body{
		{Pos: [2]float32{1, 2}, Vel: [2]float32{3, 4}, Mass: 5},
		{Mass: 0},
		{Pos: [2]float32{-1, -1}, Mass: 1},
		{Mass: -2},
	}}
	w := nbody.NewWorld(len(sc.Bodies))
	ents, err := sc.Populate(w)
	if !errors.Is(err, nbody.ErrInvalidMass) {
		t.Errorf("expected ErrInvalidMass, got %v", err)
	}
	if len(ents) != 2 || w.Len() != 2 {
		t.Fatalf("expected 2 entities, got %d (world %d)", len(ents), w.Len())
	}
	b, ok := w.Get(ents[0])
	if !ok {
		t.Fatal("expected entity to be alive")
	}
	if b.Position != (nbody.Position{X: 1, Y: 2}) || b.Velocity != (nbody.Velocity{X: 3, Y: 4}) || b.Mass.Value != 5 {
		t.Errorf("unexpected body %+v", b)
	}
}
