package model

// Result is the payload contract every calculator returns. Downstream
// composers rely on these three field names being present and stable.
type Result struct {
	Features    []string
	Evidence    []Evidence
	Diagnostics map[string]any
}
