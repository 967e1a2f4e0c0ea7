package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	strictjson "github.com/reoring/strictjson"
	"github.com/reoring/strictjson/i18n"
	yamlsrc "github.com/reoring/strictjson/source/yaml"
)

// CLI checks a JSON or YAML document against a set of path requirements and
// reports everything at once: every missing or mistyped path as an error,
// every part of the document nothing looked at as a warning.
var CLI struct {
	Input   string   `help:"Input file. Reads stdin when omitted." arg:"" optional:"" type:"path"`
	Format  string   `help:"Input format." enum:"auto,json,yaml" default:"auto"`
	Require []string `help:"Requirement as pointer:kind, e.g. /user/id:int. Kinds: string,int,float,bool,null,any. Numeric segments address array indices." short:"r"`
	Strict  bool     `help:"Treat unused input as an error." short:"s"`
	Strip   bool     `help:"Print the minimal document that still satisfies the requirements."`
	Lang    string   `help:"Report language." enum:"en,ja" default:"en"`

	MaxDepth int    `help:"Reject documents nested deeper than this." default:"0"`
	MaxBytes int64  `help:"Reject documents larger than this many bytes." default:"0"`
	DupKeys  string `help:"Duplicate object key policy." enum:"ignore,warn,error" default:"ignore"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("strictjson"),
		kong.Description("Validate JSON/YAML documents and report unused input."),
		kong.UsageOnError(),
	)

	i18n.SetLanguage(CLI.Lang)

	data, err := readInput()
	if err != nil {
		fatalf("read input: %v", err)
	}

	dec, err := requirementDecoder(CLI.Require)
	if err != nil {
		fatalf("bad requirement: %v", err)
	}

	opt := strictjson.DecodeOpt{
		MaxDepth:       CLI.MaxDepth,
		MaxBytes:       CLI.MaxBytes,
		OnDuplicateKey: dupPolicy(CLI.DupKeys),
	}

	var r strictjson.Result[struct{}]
	var doc strictjson.Value
	if useYAML() {
		doc, err = yamlsrc.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
			os.Exit(2)
		}
		r = strictjson.DecodeValue(dec, doc)
	} else {
		vr := strictjson.DecodeBytes(strictjson.AnyValue(), data, opt)
		if vr.Outcome == strictjson.OutcomeBadInput {
			fmt.Fprintf(os.Stderr, "invalid input: %v\n", vr.InputErr)
			os.Exit(2)
		}
		doc = vr.Value
		r = strictjson.DecodeValue(dec, doc)
	}

	if CLI.Strict {
		r = strictjson.Strict(r)
	}

	switch r.Outcome {
	case strictjson.OutcomeErrors:
		fmt.Fprint(os.Stderr, strictjson.ErrorsToString(r.Errors))
		os.Exit(1)
	case strictjson.OutcomeWithWarnings:
		fmt.Fprint(os.Stderr, strictjson.WarningsToString(r.Warnings))
	}

	if CLI.Strip {
		out, err := strictjson.Strip(dec, doc).MarshalJSON()
		if err != nil {
			fatalf("render: %v", err)
		}
		fmt.Println(string(out))
	}
}

func readInput() ([]byte, error) {
	if CLI.Input == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(CLI.Input)
}

func useYAML() bool {
	switch CLI.Format {
	case "yaml":
		return true
	case "json":
		return false
	default:
		return strings.HasSuffix(CLI.Input, ".yaml") || strings.HasSuffix(CLI.Input, ".yml")
	}
}

func dupPolicy(s string) strictjson.DupPolicy {
	switch s {
	case "warn":
		return strictjson.DupWarn
	case "error":
		return strictjson.DupError
	default:
		return strictjson.DupIgnore
	}
}

// requirementDecoder combines every pointer:kind requirement into a single
// decoder; Map2's error merging reports all violations in one pass.
func requirementDecoder(reqs []string) (strictjson.Decoder[struct{}], error) {
	all := strictjson.Succeed(struct{}{})
	for _, req := range reqs {
		d, err := parseRequirement(req)
		if err != nil {
			return all, err
		}
		all = strictjson.Map2(keepFirst, all, d)
	}
	return all, nil
}

func keepFirst(a, _ struct{}) struct{} { return a }

func parseRequirement(req string) (strictjson.Decoder[struct{}], error) {
	i := strings.LastIndex(req, ":")
	if i < 0 {
		return strictjson.Succeed(struct{}{}), fmt.Errorf("%q: want pointer:kind", req)
	}
	pointer, kind := req[:i], req[i+1:]

	d, err := kindDecoder(kind)
	if err != nil {
		return d, err
	}

	if pointer == "" || pointer == "/" {
		return d, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return d, fmt.Errorf("%q: pointer must start with /", req)
	}
	segments := strings.Split(pointer[1:], "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := unescapePointer(segments[i])
		if n, err := strconv.Atoi(seg); err == nil {
			d = strictjson.Index(n, d)
		} else {
			d = strictjson.Field(seg, d)
		}
	}
	return d, nil
}

func kindDecoder(kind string) (strictjson.Decoder[struct{}], error) {
	switch kind {
	case "string":
		return unit(strictjson.String()), nil
	case "int":
		return unit(strictjson.Int()), nil
	case "float":
		return unit(strictjson.Float()), nil
	case "bool":
		return unit(strictjson.Bool()), nil
	case "null":
		return strictjson.Null(struct{}{}), nil
	case "any":
		return unit(strictjson.AnyValue()), nil
	default:
		return strictjson.Succeed(struct{}{}), fmt.Errorf("unknown kind %q", kind)
	}
}

func unit[T any](d strictjson.Decoder[T]) strictjson.Decoder[struct{}] {
	return strictjson.Map(func(T) struct{} { return struct{}{} }, d)
}

func unescapePointer(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
