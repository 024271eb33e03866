package lst

import sitter "github.com/smacker/go-tree-sitter"

// Language defines the per-language knowledge the builders need.
type Language interface {
	// Name returns the language identifier (e.g., "cpp", "kotlin").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".cpp"]).
	Extensions() []string

	// Rules returns the heuristic recognizers for the regex builder.
	Rules() Rules

	// TreeSitterLang returns the tree-sitter grammar for the sitter engine.
	TreeSitterLang() *sitter.Language

	// KindMap maps tree-sitter node types to structural kinds. Node types
	// absent from the map degrade to gap coverage.
	KindMap() map[string]Kind

	// NameNodeTypes lists tree-sitter node types that carry an identifier,
	// used as a fallback when a node has no "name" field.
	NameNodeTypes() []string
}

// registry holds all registered languages.
var registry = make(map[string]Language)

// Register adds a language to the registry.
// This is typically called from init() functions in language files.
func Register(lang Language) {
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	return registry[name]
}

// List returns all registered language names.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// ByExtension finds a language by file extension (including the dot).
func ByExtension(ext string) Language {
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}
