package gallery

import "fmt"

// PlaceholderCount is the number of placeholder items shown when the
// gallery has no projects.
const PlaceholderCount = 6

// Project is a single memory in the gallery. Projects are immutable once
// created and the owning list is append-only.
type Project struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Item is what a scene node displays: either a real project or a
// placeholder. Project is nil for placeholders.
type Item struct {
	ID          string
	Project     *Project
	Placeholder bool
}

// DisplayItems maps the project list to display items, substituting
// PlaceholderCount placeholders when the list is empty.
func DisplayItems(projects []Project) []Item {
	if len(projects) == 0 {
		return Placeholders(PlaceholderCount)
	}
	items := make([]Item, len(projects))
	for i := range projects {
		p := projects[i]
		items[i] = Item{ID: p.ID, Project: &p}
	}
	return items
}

// Placeholders returns n placeholder items with ids p-0..p-(n-1).
func Placeholders(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: fmt.Sprintf("p-%d", i), Placeholder: true}
	}
	return items
}

// ShortID returns the last four characters of the id, used as a badge.
func (p Project) ShortID() string {
	if len(p.ID) <= 4 {
		return p.ID
	}
	return p.ID[len(p.ID)-4:]
}
