package gallery

import "testing"

func TestDisplayItemsEmpty(t *testing.T) {
	items := DisplayItems(nil)
	if len(items) != PlaceholderCount {
		t.Fatalf("expected %d placeholders, got %d", PlaceholderCount, len(items))
	}
	for i, it := range items {
		if !it.Placeholder {
			t.Errorf("item %d: expected placeholder", i)
		}
		if it.Project != nil {
			t.Errorf("item %d: placeholder must not carry a project", i)
		}
	}
	if items[5].ID != "p-5" {
		t.Errorf("expected id p-5, got %s", items[5].ID)
	}
}

func TestDisplayItemsProjects(t *testing.T) {
	projects := []Project{
		{ID: "1", Description: "A", ImageURL: "u1"},
		{ID: "2", Description: "B", ImageURL: "u2"},
	}
	items := DisplayItems(projects)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for i, it := range items {
		if it.Placeholder || it.Project == nil {
			t.Fatalf("item %d: expected real project", i)
		}
		if it.Project.ID != projects[i].ID {
			t.Errorf("item %d: expected id %s, got %s", i, projects[i].ID, it.Project.ID)
		}
	}

	items[0].Project.Description = "changed"
	if projects[0].Description != "A" {
		t.Error("display items must not alias the project list")
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"1734567890123", "0123"},
		{"12", "12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (Project{ID: tt.id}).ShortID(); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
