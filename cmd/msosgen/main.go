package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/usbforge/msos/internal/cmd"
	"github.com/usbforge/msos/internal/log"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configCandidates(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("msosgen"),
		kong.Description("Microsoft OS 2.0 descriptor generator"),
		kong.UsageOnError(),
		// Load tool configuration from JSON/YAML/TOML in priority order;
		// flags and env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closer, err := log.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// configCandidates returns tool config paths per format; an explicit user
// path is sorted into the matching format bucket.
func configCandidates(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	jsonPaths = []string{"msosgen.json"}
	yamlPaths = []string{"msosgen.yaml", "msosgen.yml"}
	tomlPaths = []string{"msosgen.toml"}
	switch {
	case strings.HasSuffix(userCfg, ".json"):
		jsonPaths = append([]string{userCfg}, jsonPaths...)
	case strings.HasSuffix(userCfg, ".yaml"), strings.HasSuffix(userCfg, ".yml"):
		yamlPaths = append([]string{userCfg}, yamlPaths...)
	case strings.HasSuffix(userCfg, ".toml"):
		tomlPaths = append([]string{userCfg}, tomlPaths...)
	}
	return jsonPaths, yamlPaths, tomlPaths
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("MSOSGEN_CONFIG")
}
