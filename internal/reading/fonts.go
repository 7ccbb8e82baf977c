package reading

// Font is one entry of the fixed reading-font catalog.
type Font struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Fonts is the fixed catalog of reading fonts, compiled into the binary.
var Fonts = []Font{
	{Name: "Times New Roman", Value: "Times New Roman, serif", Description: "Classic serif, comfortable for fiction"},
	{Name: "Arial", Value: "Arial, sans-serif", Description: "Clear, legible sans-serif"},
	{Name: "Georgia", Value: "Georgia, serif", Description: "Screen-optimized serif"},
	{Name: "Verdana", Value: "Verdana, sans-serif", Description: "Readable at every size"},
	{Name: "Roboto", Value: "Roboto, sans-serif", Description: "Modern, clean Google font"},
	{Name: "Open Sans", Value: "Open Sans, sans-serif", Description: "Pleasant for long-form text"},
	{Name: "Noto Sans", Value: "Noto Sans, sans-serif", Description: "Broad Unicode coverage"},
	{Name: "Inter", Value: "Inter, sans-serif", Description: "Modern interface font"},
	{Name: "Source Sans Pro", Value: "Source Sans Pro, sans-serif", Description: "Professional Adobe sans"},
	{Name: "Lora", Value: "Lora, serif", Description: "Graceful serif for long reads"},
	{Name: "Playfair Display", Value: "Playfair Display, serif", Description: "Elegant display serif"},
	{Name: "Merriweather", Value: "Merriweather, serif", Description: "Comfortable for extended reading"},
	{Name: "Source Serif Pro", Value: "Source Serif Pro, serif", Description: "Adobe serif for body text"},
	{Name: "Crimson Text", Value: "Crimson Text, serif", Description: "Old-style book serif"},
	{Name: "Libre Baskerville", Value: "Libre Baskerville, serif", Description: "Refined transitional serif"},
	{Name: "Nunito", Value: "Nunito, sans-serif", Description: "Rounded, friendly sans"},
	{Name: "Poppins", Value: "Poppins, sans-serif", Description: "Geometric modern sans"},
	{Name: "Raleway", Value: "Raleway, sans-serif", Description: "Thin and delicate sans"},
}

var fontValues = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Fonts))
	for _, f := range Fonts {
		m[f.Value] = struct{}{}
	}
	return m
}()

// KnownFont reports whether value is in the font catalog.
func KnownFont(value string) bool {
	_, ok := fontValues[value]
	return ok
}
