package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// SplitArgs separates known long flags from positional arguments for
// commands that parse their own flags. Anything else, including "-1" or an
// unknown "--x", stays positional. "--" ends flag recognition; "-h" and
// "--help" return pflag.ErrHelp.
func SplitArgs(flags *pflag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(positional, args[i+1:]...), nil
		case arg == "-h" || arg == "--help":
			return nil, pflag.ErrHelp
		case !strings.HasPrefix(arg, "--"):
			positional = append(positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		flag := flags.Lookup(name)
		if flag == nil {
			positional = append(positional, arg)
			continue
		}
		if !hasValue {
			if flag.NoOptDefVal != "" {
				value = flag.NoOptDefVal
			} else if i+1 < len(args) {
				i++
				value = args[i]
			} else {
				return nil, usageError(len(positional))
			}
		}
		if err := flags.Set(name, value); err != nil {
			return nil, err
		}
	}
	return positional, nil
}
