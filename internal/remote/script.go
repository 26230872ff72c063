package remote

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// buildScript synthesizes the self-contained runner script: it embeds
// the task source (decorators stripped), invokes the function with the
// supplied arguments, and records the outcome at the artifact path. The
// script needs no input beyond what is embedded here; exit code 0 means
// the success branch was written.
func buildScript(task Task, args []any, kwargs map[string]any) (string, error) {
	source, err := stripDecorators(task.Source)
	if err != nil {
		return "", err
	}

	argsLit, err := pyTupleLiteral(args)
	if err != nil {
		return "", fmt.Errorf("encoding positional arguments: %w", err)
	}
	kwargsLit, err := pyLiteral(kwargsValue(kwargs))
	if err != nil {
		return "", fmt.Errorf("encoding keyword arguments: %w", err)
	}

	var b strings.Builder
	b.WriteString("#!/usr/bin/env python3\n")
	b.WriteString("import sys\n")
	b.WriteString("import traceback\n")
	b.WriteString("import json\n\n")
	b.WriteString(source)
	b.WriteString("\n\ntry:\n")
	fmt.Fprintf(&b, "    args = %s\n", argsLit)
	fmt.Fprintf(&b, "    kwargs = %s\n\n", kwargsLit)
	fmt.Fprintf(&b, "    result = %s(*args, **kwargs)\n\n", task.Name)
	fmt.Fprintf(&b, "    with open(%s, 'w') as f:\n", pyString(remoteArtifactPath))
	b.WriteString("        json.dump({'success': True, 'result': result}, f)\n\n")
	b.WriteString("except Exception as e:\n")
	fmt.Fprintf(&b, "    with open(%s, 'w') as f:\n", pyString(remoteArtifactPath))
	b.WriteString("        json.dump({\n")
	b.WriteString("            'success': False,\n")
	b.WriteString("            'error': str(e),\n")
	b.WriteString("            'traceback': traceback.format_exc()\n")
	b.WriteString("        }, f)\n")
	b.WriteString("    sys.exit(1)\n")
	return b.String(), nil
}

// writeScript writes the runner to a local temp file and returns its
// path. The caller owns removal.
func writeScript(script string) (string, error) {
	f, err := os.CreateTemp("", "volt_runner_*.py")
	if err != nil {
		return "", fmt.Errorf("creating runner file: %w", err)
	}
	if _, err := f.WriteString(script); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing runner file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing runner file: %w", err)
	}
	return f.Name(), nil
}

// stripDecorators drops any decorator lines preceding the function
// definition, keeping everything from the first line containing the
// def keyword onward.
func stripDecorators(source string) (string, error) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if strings.Contains(line, "def ") {
			return strings.Join(lines[i:], "\n"), nil
		}
	}
	return "", fmt.Errorf("task source contains no function definition")
}

// kwargsValue normalizes a nil kwargs map so it encodes as {}.
func kwargsValue(kwargs map[string]any) any {
	if kwargs == nil {
		return map[string]any{}
	}
	return kwargs
}

// pyTupleLiteral encodes positional arguments as a Python tuple.
func pyTupleLiteral(args []any) (string, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		lit, err := pyLiteral(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, lit)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)", nil
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

// pyLiteral renders a Go value as a re-parsable Python literal. Only
// nil, booleans, numbers, strings, slices/arrays and string-keyed maps
// are representable; anything carrying identity or state is rejected
// rather than silently approximated.
func pyLiteral(v any) (string, error) {
	if v == nil {
		return "None", nil
	}
	switch val := v.(type) {
	case bool:
		if val {
			return "True", nil
		}
		return "False", nil
	case string:
		return pyString(val), nil
	case float32:
		return pyFloat(float64(val), 32)
	case float64:
		return pyFloat(val, 64)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			lit, err := pyLiteral(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts = append(parts, lit)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return "", fmt.Errorf("map keys must be strings, got %s", rv.Type().Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		// Deterministic output so generated scripts are reproducible.
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			lit, err := pyLiteral(rv.MapIndex(reflect.ValueOf(k)).Interface())
			if err != nil {
				return "", err
			}
			parts = append(parts, pyString(k)+": "+lit)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	}
	return "", fmt.Errorf("value of type %T is not literal-representable", v)
}

// pyFloat renders a finite float. NaN and the infinities have no
// Python literal spelling and are rejected.
func pyFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("non-finite float %v is not literal-representable", f)
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

// pyString renders a single-quoted Python string literal. Control
// characters are escaped so the generated source stays parsable.
func pyString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\'':
			b.WriteString(`\'`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
