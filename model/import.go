package model

// Import is an `import "path" as ns` directive. Resolution (package
// resolve) loads the target file, prefixes every id/style-name/use_styles
// ref it defines with "ns.", and splices the result into the importing
// graph's namespace.
type Import struct {
	Path      string
	Namespace string
}
