package window

// Samples returns the placeholder set shown before any real data is known.
func Samples() []Record {
	return []Record{
		{ID: "1", Title: "Mock Window — code editor", AppName: "VS Code"},
		{ID: "2", Title: "Mock Window — product specs", AppName: "Notion"},
		{ID: "3", Title: "Mock Window — design board", AppName: "Figma"},
		{ID: "4", Title: "Mock Window — browser", AppName: "Arc"},
	}
}
