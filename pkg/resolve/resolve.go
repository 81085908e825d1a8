package bpresolve

import (
	"github.com/bpatch/bpatch-go/pkg/core"
	"github.com/drone/envsubst"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"os"
	"os/user"
	"regexp"
	"strconv"
	"strings"
)

// ExpandPath performs shell-style expansion of a file argument: environment
// variables, then a leading tilde, then wildcards. When the expanded string
// contains glob metacharacters the first match in lexical order is taken,
// and matching nothing is an error. A plain path that simply does not exist
// is returned untouched so the open step can report it.
func ExpandPath(fs afero.Fs, path string) (string, error) {
	expanded, err := envsubst.EvalEnv(braceVars(path))
	if err != nil {
		return "", errors.Wrapf(err, "expanding variables in %q", path)
	}

	expanded, err = expandTilde(expanded)
	if err != nil {
		return "", err
	}
	if expanded == "" {
		return "", errors.Errorf("path %q expanded to nothing", path)
	}

	if !strings.ContainsAny(expanded, "*?[") {
		return expanded, nil
	}
	matches, err := afero.Glob(fs, expanded)
	if err != nil {
		return "", errors.Wrapf(err, "bad pattern %q", expanded)
	}
	if len(matches) == 0 {
		return "", errors.Errorf("pattern %q matched no files", expanded)
	}
	return matches[0], nil
}

var bareVar = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

// envsubst only substitutes the braced ${VAR} spelling, so bare $VAR
// references are rewritten to it before evaluation. Already braced forms
// are left alone since the pattern requires a name character after the $.
func braceVars(s string) string {
	if !strings.ContainsRune(s, '$') {
		return s
	}
	return bareVar.ReplaceAllStringFunc(s, func(m string) string {
		return "${" + m[1:] + "}"
	})
}

func expandTilde(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	rest := path[1:]
	if rest == "" || rest[0] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "expanding ~")
		}
		return home + rest, nil
	}

	name, tail := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		name, tail = rest[:i], rest[i:]
	}
	u, err := user.Lookup(name)
	if err != nil {
		return "", errors.Wrapf(err, "expanding ~%s", name)
	}
	return u.HomeDir + tail, nil
}

// Escape rewrites the two supported escape sequences, \r and \n, into their
// control characters. The scan is a single left-to-right pass: a backslash
// followed by anything else is kept verbatim, and characters produced by a
// rewrite are never rescanned.
func Escape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'r':
				b.WriteByte(0x0d)
				i++
				continue
			case 'n':
				b.WriteByte(0x0a)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// DataTypeFor maps a type tag from the command line to its data type.
// Unrecognized tags, including the empty string, mean a single byte.
func DataTypeFor(tag string) bpatch.DataType {
	switch tag {
	case "dw":
		return bpatch.Word
	case "dd":
		return bpatch.DWord
	case "dq":
		return bpatch.QWord
	case "str":
		return bpatch.String
	default:
		return bpatch.Byte
	}
}

// PadByte parses a pad argument. A 0x prefix selects hexadecimal, anything
// else goes through the permissive base-10 conversion. Only the low 8 bits
// of the value are kept.
func PadByte(s string) byte {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		v, err := strconv.ParseUint(t[2:], 16, 64)
		if err != nil {
			return 0
		}
		return byte(v)
	}
	return byte(bpatch.Integer(s))
}
