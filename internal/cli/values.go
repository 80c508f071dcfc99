package cli

import (
	"strings"
)

// stringList is a repeatable flag. Each occurrence may carry several
// comma-separated values.
type stringList []string

func (s *stringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*s = append(*s, v)
		}
	}
	return nil
}

// expandModels rewrites `-m A B` into `-m A -m B`: the models flag takes
// every following argument up to the next flag.
func expandModels(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		out = append(out, arg)
		if !isModelsFlag(arg) {
			continue
		}
		first := true
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			if !first {
				out = append(out, arg)
			}
			out = append(out, args[i+1])
			first = false
			i++
		}
	}
	return out
}

func isModelsFlag(arg string) bool {
	switch arg {
	case "-m", "--m", "-models", "--models":
		return true
	}
	return false
}
