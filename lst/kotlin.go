package lst

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
)

var (
	ktImport    = regexp.MustCompile(`(^|\n)[ \t]*import[ \t]+[^\n]+`)
	ktPackage   = regexp.MustCompile(`(^|\n)[ \t]*package[ \t]+([A-Za-z_][\w.]*)`)
	ktContainer = regexp.MustCompile(`(^|\n)[ \t]*(?:(?:public|private|internal|protected|abstract|final|open|sealed|inner|data|enum|annotation|companion)[ \t]+)*(class|interface|object)[ \t]+([A-Za-z_]\w*)[^{\n]*\{`)
	ktFunction  = regexp.MustCompile(`(^|\n)[ \t]*(?:(?:public|private|internal|protected|override|open|inline|suspend|operator|infix|tailrec|external|actual|expect)[ \t]+)*fun[ \t]+(?:<[^>\n]*>[ \t]*)?(?:[\w.<>?]+\.)?([A-Za-z_]\w*)[ \t]*\([^)]*\)[^{\n]*\{`)
	ktTypealias = regexp.MustCompile(`(^|\n)[ \t]*typealias[ \t]+[^\n]+`)
	ktDirective = regexp.MustCompile(`(^|\n)[ \t]*@[A-Za-z][\w.]*(?:\([^)\n]*\))?[ \t]*(?:\n|$)`)
)

// Kotlin implements the Language interface for Kotlin source code.
type Kotlin struct{}

func init() {
	Register(&Kotlin{})
}

func (k *Kotlin) Name() string {
	return "kotlin"
}

func (k *Kotlin) Extensions() []string {
	return []string{".kt", ".kts"}
}

func (k *Kotlin) Rules() Rules {
	return Rules{
		Include:   ktImport,
		Package:   ktPackage,
		Container: ktContainer,
		Function:  ktFunction,
		Using:     ktTypealias,
		Directive: ktDirective,
	}
}

func (k *Kotlin) TreeSitterLang() *sitter.Language {
	return kotlin.GetLanguage()
}

func (k *Kotlin) KindMap() map[string]Kind {
	return map[string]Kind{
		"package_header":       KindNamespace,
		"import_header":        KindInclude,
		"import_list":          KindInclude,
		"class_declaration":    KindClass,
		"object_declaration":   KindClass,
		"function_declaration": KindFunction,
		"type_alias":           KindUsing,
	}
}

func (k *Kotlin) NameNodeTypes() []string {
	return []string{"simple_identifier", "type_identifier", "identifier"}
}
