package store

import "testing"

func TestMigrations_OrderedByVersion(t *testing.T) {
	migs := Migrations()
	if len(migs) == 0 {
		t.Fatal("Migrations() returned none")
	}
	for i := 1; i < len(migs); i++ {
		if migs[i].Version <= migs[i-1].Version {
			t.Errorf("migration %d (version %d) is not strictly after migration %d (version %d)",
				i, migs[i].Version, i-1, migs[i-1].Version)
		}
	}
}

func TestMigrations_EveryEntryHasUpAndDown(t *testing.T) {
	for _, m := range Migrations() {
		if m.Name == "" {
			t.Errorf("migration %d has no name", m.Version)
		}
		if m.Up == "" {
			t.Errorf("migration %d (%s) has no Up statement", m.Version, m.Name)
		}
		if m.Down == "" {
			t.Errorf("migration %d (%s) has no Down statement", m.Version, m.Name)
		}
	}
}
