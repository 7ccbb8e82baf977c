package reading

// Theme is a named (background, text-color) preset for the reading surface.
type Theme struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Background  string `json:"background"`
	TextColor   string `json:"text_color"`
	Description string `json:"description"`
}

// Themes is the fixed catalog of reading themes, compiled into the binary.
var Themes = []Theme{
	{Key: "light", Name: "Light", Background: "#ffffff", TextColor: "#1f2937", Description: "Classic black text on white"},
	{Key: "dark", Name: "Dark", Background: "#1f2937", TextColor: "#f9fafb", Description: "White text on dark gray"},
	{Key: "sepia", Name: "Sepia", Background: "#f7f3e9", TextColor: "#8b4513", Description: "Warm old-paper tones"},
	{Key: "night", Name: "Night Blue", Background: "#0f172a", TextColor: "#e2e8f0", Description: "Easy on the eyes at night"},
	{Key: "mint", Name: "Mint", Background: "#f0fdf4", TextColor: "#166534", Description: "Soft light green"},
	{Key: "lavender", Name: "Lavender", Background: "#faf5ff", TextColor: "#581c87", Description: "Gentle pastel purple"},
	{Key: "warm", Name: "Warm Orange", Background: "#fff7ed", TextColor: "#c2410c", Description: "Cozy orange tint"},
	{Key: "elegant", Name: "Elegant Gray", Background: "#f8fafc", TextColor: "#334155", Description: "Modern neutral gray"},
	{Key: "carbon", Name: "Carbon", Background: "#18181b", TextColor: "#a1a1aa", Description: "Smooth black with gray text"},
	{Key: "blue", Name: "Blue", Background: "#eff6ff", TextColor: "#1e40af", Description: "Light blue tint"},
	{Key: "pink", Name: "Pastel Pink", Background: "#fdf2f8", TextColor: "#be185d", Description: "Soft pink"},
	{Key: "cream", Name: "Cream", Background: "#fffbeb", TextColor: "#92400e", Description: "Mellow cream yellow"},
	{Key: "emerald", Name: "Emerald", Background: "#ecfdf5", TextColor: "#047857", Description: "Fresh emerald green"},
	{Key: "slate", Name: "Slate", Background: "#f1f5f9", TextColor: "#475569", Description: "Light slate gray"},
	{Key: "burgundy", Name: "Burgundy", Background: "#fef2f2", TextColor: "#991b1b", Description: "Deep classic red"},
	{Key: "chocolate", Name: "Chocolate", Background: "#fdf6e3", TextColor: "#8b4513", Description: "Warm chocolate brown"},
	{Key: "navy", Name: "Navy", Background: "#f8fafc", TextColor: "#1e3a8a", Description: "Formal navy blue"},
	{Key: "oled", Name: "OLED Dark", Background: "#000000", TextColor: "#ffffff", Description: "Pure black for OLED screens"},
}

var themesByKey = func() map[string]Theme {
	m := make(map[string]Theme, len(Themes))
	for _, t := range Themes {
		m[t.Key] = t
	}
	return m
}()

// ResolveTheme maps a theme key to its catalog entry. The second return is
// false when the key is not in the catalog; the caller decides what to do
// with the miss.
func ResolveTheme(key string) (Theme, bool) {
	t, ok := themesByKey[key]
	return t, ok
}
