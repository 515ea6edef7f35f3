package bootstrap

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ashn-dot-dev/mellifera/value"
)

var stdin = bufio.NewReader(os.Stdin)

// hostBuiltins returns the top-level builtins bound directly in the
// base environment (spec §4.7 catalog; §6 "Printing surface"),
// grounded on original_source/mf.py's print/println/eprint/eprintln/
// input/inputln/dump/dumpln/typeof/typename/repr/exit family. Every
// stringifying builtin here uses value.Display/value.Inspect — the
// same universal stringifier spec §6 defines — rather than re-deriving
// formatting rules locally.
func hostBuiltins() map[string]value.Value {
	return map[string]value.Value{
		"print":     value.Builtin{Name: "print", Fn: builtinPrint},
		"println":   value.Builtin{Name: "println", Fn: builtinPrintln},
		"eprint":    value.Builtin{Name: "eprint", Fn: builtinEprint},
		"eprintln":  value.Builtin{Name: "eprintln", Fn: builtinEprintln},
		"dump":      value.Builtin{Name: "dump", Fn: builtinDump},
		"dumpln":    value.Builtin{Name: "dumpln", Fn: builtinDumpln},
		"input":     value.Builtin{Name: "input", Fn: builtinInput},
		"inputln":   value.Builtin{Name: "inputln", Fn: builtinInputln},
		"repr":      value.Builtin{Name: "repr", Fn: builtinRepr},
		"typeof":    value.Builtin{Name: "typeof", Fn: builtinTypeof},
		"typename":  value.Builtin{Name: "typename", Fn: builtinTypename},
		"to_string": value.Builtin{Name: "to_string", Fn: builtinToString},
		"to_number": value.Builtin{Name: "to_number", Fn: builtinToNumber},
		"length":    value.Builtin{Name: "length", Fn: builtinLength},
		"exit":      value.Builtin{Name: "exit", Fn: builtinExit},
	}
}

func builtinPrint(args []value.Value) value.Value {
	for _, a := range args {
		fmt.Print(value.Display(a))
	}
	return value.Null{}
}

func builtinPrintln(args []value.Value) value.Value {
	builtinPrint(args)
	fmt.Println()
	return value.Null{}
}

func builtinEprint(args []value.Value) value.Value {
	for _, a := range args {
		fmt.Fprint(os.Stderr, value.Display(a))
	}
	return value.Null{}
}

func builtinEprintln(args []value.Value) value.Value {
	builtinEprint(args)
	fmt.Fprintln(os.Stderr)
	return value.Null{}
}

func builtinDump(args []value.Value) value.Value {
	if errv := checkArity("dump", args, 1); errv != nil {
		return errv
	}
	fmt.Print(value.Inspect(args[0]))
	return value.Null{}
}

func builtinDumpln(args []value.Value) value.Value {
	if errv := checkArity("dumpln", args, 1); errv != nil {
		return errv
	}
	fmt.Println(value.Inspect(args[0]))
	return value.Null{}
}

func builtinInput(args []value.Value) value.Value {
	if errv := checkArity("input", args, 0); errv != nil {
		return errv
	}
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return value.Null{}
	}
	return value.String{Value: trimNewline(line)}
}

func builtinInputln(args []value.Value) value.Value {
	if errv := checkArityRange("inputln", args, 0, 1); errv != nil {
		return errv
	}
	if len(args) == 1 {
		prompt, errv := wantString("inputln", args[0])
		if errv != nil {
			return errv
		}
		fmt.Print(prompt.Value)
	}
	return builtinInput(nil)
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

func builtinRepr(args []value.Value) value.Value {
	if errv := checkArity("repr", args, 1); errv != nil {
		return errv
	}
	return value.String{Value: value.Inspect(args[0])}
}

func builtinTypeof(args []value.Value) value.Value {
	if errv := checkArity("typeof", args, 1); errv != nil {
		return errv
	}
	if m := args[0].Meta(); m != nil {
		return *m
	}
	return value.Null{}
}

func builtinTypename(args []value.Value) value.Value {
	if errv := checkArity("typename", args, 1); errv != nil {
		return errv
	}
	if m := args[0].Meta(); m != nil && m.TypeName() != "" {
		return value.String{Value: m.TypeName()}
	}
	return value.String{Value: string(args[0].Kind())}
}

func builtinToString(args []value.Value) value.Value {
	if errv := checkArity("to_string", args, 1); errv != nil {
		return errv
	}
	return value.String{Value: value.Display(args[0])}
}

func builtinToNumber(args []value.Value) value.Value {
	if errv := checkArity("to_number", args, 1); errv != nil {
		return errv
	}
	s, errv := wantString("to_number", args[0])
	if errv != nil {
		return errv
	}
	var f float64
	if _, err := fmt.Sscanf(s.Value, "%g", &f); err != nil {
		return errf("cannot convert %s to a number", value.Inspect(args[0]))
	}
	return value.Number{Value: f}
}

func builtinLength(args []value.Value) value.Value {
	if errv := checkArity("length", args, 1); errv != nil {
		return errv
	}
	switch v := args[0].(type) {
	case value.String:
		return value.Number{Value: float64(len(v.Value))}
	case value.Vector:
		return value.Number{Value: float64(v.Len())}
	case value.Map:
		return value.Number{Value: float64(v.Len())}
	case value.Set:
		return value.Number{Value: float64(v.Len())}
	default:
		return errf("length expects a string, vector, map, or set, found %s", v.Kind())
	}
}

func builtinExit(args []value.Value) value.Value {
	if errv := checkArityRange("exit", args, 0, 1); errv != nil {
		return errv
	}
	code := 0
	if len(args) == 1 {
		n, errv := wantNumber("exit", args[0])
		if errv != nil {
			return errv
		}
		code = int(n.Value)
	}
	os.Exit(code)
	return value.Null{}
}
