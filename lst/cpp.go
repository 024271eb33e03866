package lst

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

var (
	cppInclude   = regexp.MustCompile(`(^|\n)[ \t]*#[ \t]*include[ \t]+[^\n]+`)
	cppNamespace = regexp.MustCompile(`(^|\n)[ \t]*namespace[ \t]+([A-Za-z_][\w:]*)\s*\{`)
	cppContainer = regexp.MustCompile(`(^|\n)[ \t]*(class|struct)[ \t]+([A-Za-z_][\w:]*)[^;{]*\{`)
	cppFunction  = regexp.MustCompile(`(^|\n)[ \t]*(?:static\s+)?(?:inline\s+)?(?:const\s+)?[A-Za-z_][\w:<>\s*&]*\s+([A-Za-z_][\w:]*)\s*\(([^;{}]*)\)\s*(?:const\s*)?(?:->\s*[\w:<>]+\s*)?\{`)
	cppUsing     = regexp.MustCompile(`(^|\n)[ \t]*using[ \t]+[\w:<>\s=,]+;`)
	cppDirective = regexp.MustCompile(`(^|\n)[ \t]*#[^\n]*`)
)

// Cpp implements the Language interface for C++ source code.
type Cpp struct{}

func init() {
	Register(&Cpp{})
}

func (c *Cpp) Name() string {
	return "cpp"
}

func (c *Cpp) Extensions() []string {
	return []string{".cpp", ".cc", ".cxx", ".h", ".hpp", ".hh"}
}

func (c *Cpp) Rules() Rules {
	return Rules{
		Include:        cppInclude,
		Namespace:      cppNamespace,
		Container:      cppContainer,
		StructKeywords: map[string]bool{"struct": true},
		Function:       cppFunction,
		Using:          cppUsing,
		Directive:      cppDirective,
	}
}

func (c *Cpp) TreeSitterLang() *sitter.Language {
	return cpp.GetLanguage()
}

func (c *Cpp) KindMap() map[string]Kind {
	return map[string]Kind{
		"preproc_include":            KindInclude,
		"preproc_def":                KindMacro,
		"preproc_function_def":       KindMacro,
		"preproc_ifdef":              KindMacro,
		"preproc_if":                 KindMacro,
		"preproc_call":               KindMacro,
		"namespace_definition":       KindNamespace,
		"class_specifier":            KindClass,
		"struct_specifier":           KindStruct,
		"function_definition":        KindFunction,
		"using_declaration":          KindUsing,
		"alias_declaration":          KindUsing,
		"namespace_alias_definition": KindUsing,
	}
}

func (c *Cpp) NameNodeTypes() []string {
	return []string{
		"identifier",
		"type_identifier",
		"namespace_identifier",
		"qualified_identifier",
		"field_identifier",
	}
}
