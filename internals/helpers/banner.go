package helper

// Banner adalah status banner halaman (hasil satu siklus
// Validating → Success|Error → Rendered).
type Banner struct {
	Kind    string // "success" | "error"
	Message string
}

func SuccessBanner(msg string) *Banner { return &Banner{Kind: "success", Message: msg} }
func ErrorBanner(msg string) *Banner   { return &Banner{Kind: "error", Message: msg} }
