package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadSignature is returned for malformed signature strings.
var ErrBadSignature = errors.New("malformed signature")

// ParseSignature разбирает сигнатуру экспорта модуля:
//
//	"(float, int) -> float"   функция
//	"(any...) -> void"        variadic-функция
//	"float"                   константа
func (in *Interner) ParseSignature(sig string) (TypeID, error) {
	sig = strings.TrimSpace(sig)
	if !strings.HasPrefix(sig, "(") {
		return in.parseTypeName(sig)
	}

	params, result, ok := strings.Cut(sig[1:], ")")
	if !ok {
		return NoTypeID, fmt.Errorf("%w %q: missing ')'", ErrBadSignature, sig)
	}
	result, ok = strings.CutPrefix(strings.TrimSpace(result), "->")
	if !ok {
		return NoTypeID, fmt.Errorf("%w %q: missing '->'", ErrBadSignature, sig)
	}
	resultID, err := in.parseTypeName(result)
	if err != nil {
		return NoTypeID, fmt.Errorf("%w %q: result: %w", ErrBadSignature, sig, err)
	}

	var paramIDs []TypeID
	variadic := false
	if strings.TrimSpace(params) != "" {
		parts := strings.Split(params, ",")
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if rest, ok := strings.CutSuffix(part, "..."); ok {
				if i != len(parts)-1 {
					return NoTypeID, fmt.Errorf("%w %q: only the last parameter may be variadic", ErrBadSignature, sig)
				}
				variadic = true
				part = rest
			}
			id, err := in.parseTypeName(part)
			if err != nil {
				return NoTypeID, fmt.Errorf("%w %q: parameter %d: %w", ErrBadSignature, sig, i+1, err)
			}
			if in.KindOf(id) == KindVoid {
				return NoTypeID, fmt.Errorf("%w %q: parameter %d cannot be void", ErrBadSignature, sig, i+1)
			}
			paramIDs = append(paramIDs, id)
		}
	}
	return in.RegisterFn(paramIDs, resultID, variadic), nil
}

func (in *Interner) parseTypeName(name string) (TypeID, error) {
	switch strings.TrimSpace(name) {
	case "int":
		return in.builtins.Int, nil
	case "float":
		return in.builtins.Float, nil
	case "string":
		return in.builtins.String, nil
	case "bool":
		return in.builtins.Bool, nil
	case "void":
		return in.builtins.Void, nil
	case "any":
		return in.builtins.Any, nil
	default:
		return NoTypeID, fmt.Errorf("%w: unknown type %q", ErrBadSignature, strings.TrimSpace(name))
	}
}
