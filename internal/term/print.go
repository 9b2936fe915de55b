package term

import (
	"fmt"

	"github.com/asm-nop/proost-go/internal/level"
)

// String renders t in a fixed, unambiguous prefix-ish notation used for
// diagnostics and golden-output tests. It does not attempt to recover
// surface-level binder names (the kernel never sees any).
func (t *Term) String() string {
	switch t.Kind {
	case KindVar:
		return fmt.Sprintf("#%d", t.Index)
	case KindSort:
		return fmt.Sprintf("Sort %s", t.Level.String())
	case KindApp:
		return fmt.Sprintf("(%s %s)", t.Fun.String(), t.Arg.String())
	case KindAbs:
		return fmt.Sprintf("(fun _: %s => %s)", t.Domain.String(), t.Body.String())
	case KindProd:
		return fmt.Sprintf("((_: %s) -> %s)", t.Domain.String(), t.Body.String())
	case KindDecl:
		if len(t.Instance) == 0 {
			return t.Name
		}
		return fmt.Sprintf("%s.{%s}", t.Name, level.VarNames(t.Instance))
	default:
		return "<?term>"
	}
}
